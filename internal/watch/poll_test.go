package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// ---------------------------------------------------------------------------
// ContentWatcher
// ---------------------------------------------------------------------------

func TestContentWatcher_FirstReadIsChange(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.csv")
	writeFile(t, p, "*Phase 1\n0,3,Design\n")

	w := NewContentWatcher(p)

	changed, err := w.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestContentWatcher_UnchangedContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.csv")
	writeFile(t, p, "*Phase 1\n0,3,Design\n")

	w := NewContentWatcher(p)

	_, err := w.HasChanged()
	require.NoError(t, err)

	changed, err := w.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestContentWatcher_ChangeReportedExactlyOnce(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.csv")
	writeFile(t, p, "v1")

	w := NewContentWatcher(p)
	_, err := w.HasChanged()
	require.NoError(t, err)

	writeFile(t, p, "v2")

	changed, err := w.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = w.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed, "change must be reported exactly once")
}

func TestContentWatcher_MissingFilePropagatesAndKeepsBaseline(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "plan.csv")
	writeFile(t, p, "v1")

	w := NewContentWatcher(p)
	_, err := w.HasChanged()
	require.NoError(t, err)

	require.NoError(t, os.Remove(p))

	changed, err := w.HasChanged()
	assert.False(t, changed)

	var accessErr *FileAccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, p, accessErr.Path)

	// Re-creating the file with the old content is no change: the
	// baseline survived the failed read.
	writeFile(t, p, "v1")

	changed, err = w.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestContentWatcher_MissingOnFirstPoll(t *testing.T) {
	w := NewContentWatcher(filepath.Join(t.TempDir(), "absent.csv"))

	// Never reports changed on its very first observation of a
	// missing file.
	changed, err := w.HasChanged()
	assert.False(t, changed)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// MTimeWatcher
// ---------------------------------------------------------------------------

func TestMTimeWatcher_FirstPollIsChange(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.csv")
	writeFile(t, p, "v1")

	w := NewMTimeWatcher(p)

	changed, err := w.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestMTimeWatcher_UnchangedMTime(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.csv")
	writeFile(t, p, "v1")

	w := NewMTimeWatcher(p)
	_, err := w.HasChanged()
	require.NoError(t, err)

	changed, err := w.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMTimeWatcher_DetectsTouch(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.csv")
	writeFile(t, p, "v1")

	w := NewMTimeWatcher(p)
	_, err := w.HasChanged()
	require.NoError(t, err)

	// Force a distinct mtime; filesystem timestamp granularity can
	// swallow a quick rewrite.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(p, future, future))

	changed, err := w.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = w.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMTimeWatcher_AnyFileTriggers(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.csv")
	p2 := filepath.Join(dir, "b.yaml")
	writeFile(t, p1, "a")
	writeFile(t, p2, "b")

	w := NewMTimeWatcher(p1, p2)
	_, err := w.HasChanged()
	require.NoError(t, err)

	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(p2, future, future))

	changed, err := w.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed, "a change on any tracked file reports as changed")
}

func TestMTimeWatcher_StatFailurePropagates(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gone.csv")

	w := NewMTimeWatcher(p)

	changed, err := w.HasChanged()
	assert.False(t, changed)

	var accessErr *FileAccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, p, accessErr.Path)
}

// ---------------------------------------------------------------------------
// Poll loop
// ---------------------------------------------------------------------------

type fakeWatcher struct {
	results []bool
	errs    []error
	calls   int
}

func (f *fakeWatcher) HasChanged() (bool, error) {
	i := f.calls
	f.calls++

	if i >= len(f.results) {
		return false, nil
	}

	return f.results[i], f.errs[i]
}

func TestPoll_RunsOnChange(t *testing.T) {
	fw := &fakeWatcher{
		results: []bool{true, false, true},
		errs:    []error{nil, nil, nil},
	}

	ctx, cancel := context.WithCancel(context.Background())

	runs := 0
	runFn := func(context.Context) (*RunResult, error) {
		runs++
		if runs == 2 {
			cancel()
		}

		return &RunResult{Sections: 1, Tasks: 1, OutputPath: "gantt.png"}, nil
	}

	err := Poll(ctx, PollOptions{Interval: 5 * time.Millisecond, Out: io.Discard}, fw, runFn)
	require.NoError(t, err)
	assert.Equal(t, 2, runs)
}

func TestPoll_FirstPollErrorFatal(t *testing.T) {
	fw := &fakeWatcher{
		results: []bool{false},
		errs:    []error{&FileAccessError{Path: "plan.csv", Err: os.ErrNotExist}},
	}

	err := Poll(context.Background(), PollOptions{Interval: time.Millisecond}, fw,
		func(context.Context) (*RunResult, error) {
			t.Fatal("runFn must not be called")
			return nil, nil
		})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial poll")
}

func TestPoll_LaterErrorSkipsAndContinues(t *testing.T) {
	fw := &fakeWatcher{
		results: []bool{true, false, true},
		errs:    []error{nil, &FileAccessError{Path: "plan.csv", Err: os.ErrNotExist}, nil},
	}

	ctx, cancel := context.WithCancel(context.Background())

	runs := 0
	runFn := func(context.Context) (*RunResult, error) {
		runs++
		if runs == 2 {
			cancel()
		}

		return &RunResult{OutputPath: "gantt.png"}, nil
	}

	err := Poll(ctx, PollOptions{Interval: time.Millisecond}, fw, runFn)
	require.NoError(t, err)
	assert.Equal(t, 2, runs, "the errored poll is skipped, not fatal")
}
