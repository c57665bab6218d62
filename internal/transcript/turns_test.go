package transcript

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asparagusbeef/cchat/internal/testjsonl"
)

func TestGroupTurnsSimple(t *testing.T) {
	s := simpleSession(t)
	path := activePath(t, s, PathOptions{})

	turns := GroupTurns(path, TurnOptions{Mode: ModeText})
	require.Len(t, turns, 3)

	assert.Equal(t, "Hello", turns[0].UserText)
	assert.Equal(t, "Hi there", turns[0].AssistantText)
	assert.Equal(t, "How are you?", turns[1].UserText)
	assert.Equal(t, "I am fine", turns[1].AssistantText)
	assert.Equal(t, "See you later", turns[2].AssistantText)
}

func TestGroupTurnsTimestampsAndUUIDs(t *testing.T) {
	s := simpleSession(t)
	path := activePath(t, s, PathOptions{})

	turns := GroupTurns(path, TurnOptions{})
	require.Len(t, turns, 3)
	assert.Equal(t, ts0, turns[0].Timestamp)
	assert.Equal(t, "uuid-0001", turns[0].UUID)
	assert.Equal(t, "uuid-0005", turns[2].UUID)
}

func TestGroupTurnsIdempotent(t *testing.T) {
	s := toolSession(t)
	path := activePath(t, s, PathOptions{})

	first := GroupTurns(path, TurnOptions{Mode: ModeTools})
	second := GroupTurns(path, TurnOptions{Mode: ModeTools})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("grouping not idempotent (-first +second):\n%s", diff)
	}
}

func TestGroupTurnsToolMode(t *testing.T) {
	s := toolSession(t)
	path := activePath(t, s, PathOptions{})

	turns := GroupTurns(path, TurnOptions{Mode: ModeTools})
	require.Len(t, turns, 2)
	require.NotEmpty(t, turns[0].ToolCalls)
	assert.Equal(t, "Bash", turns[0].ToolCalls[0].Name)
	assert.Equal(t, "ls", turns[0].ToolCalls[0].InputData["command"])
	assert.Empty(t, turns[1].ToolCalls)
}

func TestGroupTurnsTextModeNoTools(t *testing.T) {
	s := toolSession(t)
	path := activePath(t, s, PathOptions{})

	for _, turn := range GroupTurns(path, TurnOptions{Mode: ModeText}) {
		assert.Empty(t, turn.ToolCalls)
	}
}

func TestGroupTurnsToolResultNotATurnStart(t *testing.T) {
	s := toolSession(t)
	path := activePath(t, s, PathOptions{})

	turns := GroupTurns(path, TurnOptions{Mode: ModeText})
	require.Len(t, turns, 2)
	assert.Equal(t, "List the files", turns[0].UserText)
	// The follow-up text after the tool result belongs to turn 1.
	assert.Contains(t, turns[0].AssistantText, "two files")
	assert.Equal(t, "Thanks", turns[1].UserText)
}

func TestGroupTurnsAssistantSegmentsConcatenated(t *testing.T) {
	s := toolSession(t)
	path := activePath(t, s, PathOptions{})

	turns := GroupTurns(path, TurnOptions{})
	require.Len(t, turns, 2)
	assert.Equal(t, "Sure, listing now.\nThere are two files.",
		turns[0].AssistantText)
}

func TestGroupTurnsSkipsNonConversational(t *testing.T) {
	content := testjsonl.NewBuilder().
		AddSummary("headline").
		AddRaw(testjsonl.CustomTitleJSON("ct1", "My Title")).
		AddUser("u1", "", "Hello").
		AddAssistant("u2", "u1", "Hi").
		String()
	s := loadTranscript(t, "skips.jsonl", content)

	// Feed the whole entry list to exercise skipping directly.
	turns := GroupTurns(s.Entries(), TurnOptions{})
	require.Len(t, turns, 1)
	assert.Equal(t, "Hello", turns[0].UserText)
}

func TestGroupTurnsSkipsCompactBoundary(t *testing.T) {
	s := compactedSession(t)
	path := activePath(t, s, PathOptions{})

	for _, turn := range GroupTurns(path, TurnOptions{}) {
		assert.NotContains(t, turn.UserText, CompactBoundaryText)
	}
}

func TestGroupTurnsSkipsSidechainEntries(t *testing.T) {
	content := testjsonl.NewBuilder().
		AddUser("u1", "", "Hello").
		AddAssistant("u2", "u1", "Hi").
		AddUser("u3", "u2", "side prompt", testjsonl.Sidechain()).
		AddUser("u4", "u2", "Next").
		AddAssistant("u5", "u4", "Sure").
		String()
	s := loadTranscript(t, "sideturns.jsonl", content)

	turns := GroupTurns(s.Entries(), TurnOptions{})
	require.Len(t, turns, 2)
	assert.Equal(t, "Next", turns[1].UserText)
}

func TestGroupTurnsCompactSummaryExcludedByDefault(t *testing.T) {
	s := compactedSession(t)
	path := activePath(t, s, PathOptions{})

	turns := GroupTurns(path, TurnOptions{})
	for _, turn := range turns {
		assert.False(t, turn.IsCompactSummary)
		assert.NotContains(t, turn.UserText, "Summary of the earlier")
	}
}

func TestGroupTurnsCompactSummaryIncluded(t *testing.T) {
	s := compactedSession(t)
	path := activePath(t, s, PathOptions{})

	turns := GroupTurns(path, TurnOptions{IncludeCompactSummaries: true})
	var compact []Turn
	for _, turn := range turns {
		if turn.IsCompactSummary {
			compact = append(compact, turn)
		}
	}
	require.Len(t, compact, 1)
	assert.Contains(t, compact[0].UserText, "Summary of the earlier")
}

func TestGroupTurnsUserContinuation(t *testing.T) {
	// Two user entries with no assistant between them merge into
	// one turn.
	content := testjsonl.NewBuilder().
		AddUser("u1", "", "First part").
		AddUser("u2", "u1", "Second part").
		AddAssistant("u3", "u2", "Reply").
		String()
	s := loadTranscript(t, "contin.jsonl", content)

	turns := GroupTurns(s.Entries(), TurnOptions{})
	require.Len(t, turns, 1)
	assert.Equal(t, "First part\nSecond part", turns[0].UserText)
	assert.Equal(t, "Reply", turns[0].AssistantText)
}

func TestGroupTurnsAssistantOnly(t *testing.T) {
	content := testjsonl.NewBuilder().
		AddAssistant("a1", "", "Unprompted").
		String()
	s := loadTranscript(t, "asst.jsonl", content)

	turns := GroupTurns(s.Entries(), TurnOptions{})
	require.Len(t, turns, 1)
	assert.Empty(t, turns[0].UserText)
	assert.Equal(t, "Unprompted", turns[0].AssistantText)
	assert.Equal(t, "a1", turns[0].UUID)
}

func TestGroupTurnsANSIStripped(t *testing.T) {
	content := testjsonl.NewBuilder().
		AddUser("u1", "", "\x1b[31mRed prompt\x1b[0m").
		AddAssistantBlocks("u2", "u1", []map[string]any{
			testjsonl.TextBlock("\x1b[1mBold reply\x1b[0m"),
		}).
		String()
	s := loadTranscript(t, "ansi.jsonl", content)

	turns := GroupTurns(s.Entries(), TurnOptions{})
	require.Len(t, turns, 1)
	assert.Equal(t, "Red prompt", turns[0].UserText)
	assert.Equal(t, "Bold reply", turns[0].AssistantText)
	assert.NotContains(t, turns[0].UserText, "\x1b")
}

func TestGroupTurnsUserListContentWithText(t *testing.T) {
	content := testjsonl.NewBuilder().
		AddUserBlocks("u1", "", []map[string]any{
			testjsonl.TextBlock("Hello from text block"),
		}).
		AddAssistant("u2", "u1", "Response").
		String()
	s := loadTranscript(t, "listuser.jsonl", content)

	turns := GroupTurns(s.Entries(), TurnOptions{})
	require.Len(t, turns, 1)
	assert.Equal(t, "Hello from text block", turns[0].UserText)
}

func TestGroupTurnsNonObjectBlockSkipped(t *testing.T) {
	content := testjsonl.UserJSON("u1", "", "Hello") + "\n" +
		`{"type":"assistant","uuid":"u2","parentUuid":"u1",` +
		`"message":{"role":"assistant","content":["string block",{"type":"text","text":"Real"}]}}` + "\n"
	s := loadTranscript(t, "nondict.jsonl", content)

	turns := GroupTurns(s.Entries(), TurnOptions{})
	require.Len(t, turns, 1)
	assert.Equal(t, "Real", turns[0].AssistantText)
}

func TestGroupTurnsEmptyPath(t *testing.T) {
	assert.Empty(t, GroupTurns(nil, TurnOptions{}))
}

func TestGroupTurnsNoANSIAnywhere(t *testing.T) {
	content := testjsonl.NewBuilder().
		AddUser("u1", "", "plain \x1b[32mgreen\x1b[0m").
		AddAssistant("u2", "u1", "ok \x1b[1;31mloud\x1b[0m").
		AddUser("u3", "u2", "more").
		AddAssistant("u4", "u3", "done").
		String()
	s := loadTranscript(t, "ansifull.jsonl", content)

	for _, turn := range GroupTurns(s.Entries(), TurnOptions{}) {
		assert.False(t, strings.Contains(turn.UserText, "\x1b"))
		assert.False(t, strings.Contains(turn.AssistantText, "\x1b"))
	}
}
