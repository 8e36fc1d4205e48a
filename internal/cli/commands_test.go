package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSchedule = `# project plan
*Design
0, 3, Sketch the layout
3, 5, Review

*Build
start, 9, Implement, with commas
`

// writeScheduleFile drops a schedule file into a temp dir and returns
// its path.
func writeScheduleFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}
