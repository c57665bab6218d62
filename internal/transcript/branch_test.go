package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asparagusbeef/cchat/internal/testjsonl"
)

func TestBranchPointsSimpleNone(t *testing.T) {
	s := simpleSession(t)
	path := activePath(t, s, PathOptions{})
	assert.Empty(t, s.BranchPoints(path))
}

func TestBranchPointsToolForkIsMechanical(t *testing.T) {
	s := toolSession(t)
	path := activePath(t, s, PathOptions{})
	// uuid-1002b forks into progress + tool_result, which is tool
	// mechanics, not user choice.
	assert.Empty(t, s.BranchPoints(path))
}

func TestBranchPointsProgressForkIsMechanical(t *testing.T) {
	content := testjsonl.NewBuilder().
		AddAssistant("p1", "", "Hi").
		AddProgress("c1", "p1").
		AddUser("c2", "p1", "Next").
		AddAssistant("c3", "c2", "Sure").
		String()
	s := loadTranscript(t, "progfork.jsonl", content)

	path := activePath(t, s, PathOptions{})
	assert.Empty(t, s.BranchPoints(path))
}

func TestBranchPointsRealBranch(t *testing.T) {
	s := branchedSession(t)
	path := activePath(t, s, PathOptions{})

	points := s.BranchPoints(path)
	require.Len(t, points, 1)

	point := points[0]
	assert.Equal(t, "uuid-2002", point.ParentUUID)
	require.Len(t, point.Children, 2)

	first, second := point.Children[0], point.Children[1]
	assert.Equal(t, "uuid-2003", first.UUID)
	assert.False(t, first.IsActive)
	assert.Contains(t, first.Preview, "option A")

	assert.Equal(t, "uuid-2005", second.UUID)
	assert.True(t, second.IsActive)
	assert.Contains(t, second.Preview, "option B")
	assert.Greater(t, second.Position, first.Position)

	assert.Equal(t, []string{"uuid-2003"}, point.AlternativeUUIDs())
}

func TestBranchPointsPreviewTruncated(t *testing.T) {
	long := strings.Repeat("word ", 40)
	content := testjsonl.NewBuilder().
		AddUser("p1", "", "Q").
		AddAssistant("c1", "p1", long).
		AddAssistant("c2", "p1", "short answer").
		AddUser("c3", "c2", "go on").
		String()
	s := loadTranscript(t, "longpreview.jsonl", content)

	path := activePath(t, s, PathOptions{})
	points := s.BranchPoints(path)
	require.Len(t, points, 1)

	preview := points[0].Children[0].Preview
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.LessOrEqual(t, len([]rune(preview)), previewLen+3)
}

func TestBranchPointsPreviewFromStringContent(t *testing.T) {
	// A user resends an edited prompt: two user children under one
	// assistant, both with plain string content.
	content := testjsonl.NewBuilder().
		AddUser("p1", "", "Q").
		AddAssistant("p2", "p1", "A").
		AddUser("c1", "p2", "first wording").
		AddAssistant("c2", "c1", "old reply").
		AddUser("c3", "p2", "second wording").
		AddAssistant("c4", "c3", "new reply").
		String()
	s := loadTranscript(t, "resent.jsonl", content)

	path := activePath(t, s, PathOptions{})
	points := s.BranchPoints(path)
	require.Len(t, points, 1)
	assert.Equal(t, "p2", points[0].ParentUUID)
	assert.Equal(t, "first wording", points[0].Children[0].Preview)
	assert.Equal(t, "second wording", points[0].Children[1].Preview)
}

func TestIsMechanicalForkRules(t *testing.T) {
	s := toolSession(t)
	parent, ok := s.ByUUID("uuid-1002b")
	require.True(t, ok)
	assert.True(t, s.isMechanicalFork(parent, s.ChildrenOf("uuid-1002b")))

	b := branchedSession(t)
	realParent, ok := b.ByUUID("uuid-2002")
	require.True(t, ok)
	assert.False(t, b.isMechanicalFork(realParent, b.ChildrenOf("uuid-2002")))
}

func TestBranchPointsEmptyPath(t *testing.T) {
	s := simpleSession(t)
	assert.Empty(t, s.BranchPoints(nil))
}
