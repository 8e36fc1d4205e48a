// gantt renders Gantt charts from sectioned CSV schedule files.
package main

import (
	"os"

	"github.com/ihincks/gantt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
