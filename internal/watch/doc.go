// Package watch detects changes to the schedule file and drives
// re-rendering. It offers an fsnotify-based event loop with debouncing
// for interactive use, and plain polling watchers (content-based and
// modification-time-based) for filesystems where inotify is unreliable.
// Between renders it reports what changed in the schedule.
package watch
