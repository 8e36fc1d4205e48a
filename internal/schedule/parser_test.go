package schedule_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihincks/gantt/internal/schedule"
)

func parse(t *testing.T, input string) *schedule.Schedule {
	t.Helper()

	s, err := schedule.Parse(strings.NewReader(input))
	require.NoError(t, err)

	return s
}

func TestParse_SingleTask(t *testing.T) {
	s := parse(t, "*Phase 1\n0,3,Design\n")

	require.Len(t, s.Sections, 1)
	assert.Equal(t, "Phase 1", s.Sections[0].Name)
	require.Len(t, s.Sections[0].Tasks, 1)

	task := s.Sections[0].Tasks[0]
	assert.Equal(t, schedule.Number(0), task.Start)
	assert.Equal(t, schedule.Number(3), task.Finish)
	assert.Equal(t, "Design", task.Label)
}

func TestParse_PreservesOrder(t *testing.T) {
	input := `*Phase 1
0, 3, first
3, 6, second

*Phase 2
2, 9, third
1, 7, fourth
`
	s := parse(t, input)

	require.Len(t, s.Sections, 2)
	assert.Equal(t, "Phase 1", s.Sections[0].Name)
	assert.Equal(t, "Phase 2", s.Sections[1].Name)

	var labels []string
	for _, sec := range s.Sections {
		for _, task := range sec.Tasks {
			labels = append(labels, task.Label)
		}
	}

	assert.Equal(t, []string{"first", "second", "third", "fourth"}, labels)
	assert.Equal(t, 4, s.TaskCount())
}

func TestParse_LabelKeepsCommas(t *testing.T) {
	s := parse(t, "*Phase 1\n1,4,Write, then review\n")

	task := s.Sections[0].Tasks[0]
	assert.Equal(t, schedule.Number(1), task.Start)
	assert.Equal(t, schedule.Number(4), task.Finish)
	assert.Equal(t, "Write, then review", task.Label)
}

func TestParse_NonNumericEndpointsKeptAsTokens(t *testing.T) {
	s := parse(t, "*Week 1\nMon,Tue,Kickoff\n")

	task := s.Sections[0].Tasks[0]
	assert.Equal(t, schedule.Token("Mon"), task.Start)
	assert.Equal(t, schedule.Token("Tue"), task.Finish)
	assert.False(t, task.Start.IsNumber())
	assert.Equal(t, "Kickoff", task.Label)
}

func TestParse_TwoFieldLineHasEmptyLabel(t *testing.T) {
	s := parse(t, "*Phase 1\n0,3\n")

	task := s.Sections[0].Tasks[0]
	assert.Equal(t, schedule.Number(3), task.Finish)
	assert.Empty(t, task.Label)
}

func TestParse_CommentsAndBlanksIgnored(t *testing.T) {
	input := `# a comment about the plan
*Phase 1

# another comment
0,3,Design
`
	s := parse(t, input)

	require.Len(t, s.Sections, 1)
	assert.Equal(t, 1, s.TaskCount())
}

func TestParse_SingleCharacterLineIgnored(t *testing.T) {
	// Lines of length <= 1 are treated as blank.
	s := parse(t, "*Phase 1\nx\n0,3,Design\n")
	assert.Equal(t, 1, s.TaskCount())
}

func TestParse_EmptySectionRegistered(t *testing.T) {
	s := parse(t, "*Phase 1\n0,3,Design\n*Phase 2\n")

	require.Len(t, s.Sections, 2)
	assert.Equal(t, "Phase 2", s.Sections[1].Name)
	assert.Empty(t, s.Sections[1].Tasks)
}

func TestParse_DuplicateSectionNameAppendsNewSection(t *testing.T) {
	// A repeated header opens a fresh section; earlier tasks under the
	// same name are kept, not reset.
	s := parse(t, "*Phase 1\n0,3,Design\n*Phase 2\n3,5,Build\n*Phase 1\n5,6,Polish\n")

	require.Len(t, s.Sections, 3)
	assert.Equal(t, "Phase 1", s.Sections[0].Name)
	assert.Equal(t, "Phase 1", s.Sections[2].Name)
	assert.Equal(t, "Design", s.Sections[0].Tasks[0].Label)
	assert.Equal(t, "Polish", s.Sections[2].Tasks[0].Label)
	assert.Equal(t, 3, s.TaskCount())
}

func TestParse_SectionNameTrimmed(t *testing.T) {
	s := parse(t, "*   Phase 1  \n")
	assert.Equal(t, "Phase 1", s.Sections[0].Name)
}

func TestParse_MalformedLine(t *testing.T) {
	_, err := schedule.Parse(strings.NewReader("*Phase 1\nDesign\n"))

	var malformed *schedule.MalformedLineError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
	assert.Contains(t, err.Error(), "malformed task line")
}

func TestParse_TaskBeforeSection(t *testing.T) {
	_, err := schedule.Parse(strings.NewReader("0,3,Design\n"))

	var missing *schedule.MissingSectionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 1, missing.Line)
}

func TestParseFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.csv")
	require.NoError(t, os.WriteFile(p, []byte("*Phase 1\n0,3,Design\n"), 0o600))

	s, err := schedule.ParseFile(p)
	require.NoError(t, err)
	assert.Equal(t, 1, s.TaskCount())
}

func TestParseFile_Missing(t *testing.T) {
	_, err := schedule.ParseFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "opening schedule file")
}

func TestSchedule_SectionLookup(t *testing.T) {
	s := parse(t, "*Phase 1\n0,3,Design\n*Phase 2\n")

	sec := s.Section("Phase 2")
	require.NotNil(t, sec)
	assert.Equal(t, "Phase 2", sec.Name)
	assert.Nil(t, s.Section("Phase 3"))
}
