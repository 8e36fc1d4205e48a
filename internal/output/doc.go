// Package output routes rendered bytes to their destination.
//
// It provides the [Writer] interface with [StdoutWriter] and
// [FileWriter] implementations, used for both rendered PNG images and
// exported schedules, plus a [Registry] of export formats so the export
// command can resolve a writer per format name.
package output
