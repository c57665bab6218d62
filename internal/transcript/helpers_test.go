package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asparagusbeef/cchat/internal/testjsonl"
)

// Timestamp constants for fixture data.
const (
	ts0 = "2025-01-15T10:00:00.000Z"
	ts1 = "2025-01-15T10:00:10.000Z"
	ts2 = "2025-01-15T10:00:20.000Z"
	ts3 = "2025-01-15T10:00:30.000Z"
	ts4 = "2025-01-15T10:00:40.000Z"
	ts5 = "2025-01-15T10:00:50.000Z"
)

func writeTranscript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func loadTranscript(t *testing.T, name, content string) *Store {
	t.Helper()
	s, err := Load(writeTranscript(t, name, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

// simpleSession is three chained user/assistant pairs under a
// headline summary.
func simpleSession(t *testing.T) *Store {
	t.Helper()
	content := testjsonl.NewBuilder().
		AddSummary("Simple test conversation").
		AddUser("uuid-0001", "", "Hello", testjsonl.Timestamp(ts0)).
		AddAssistant("uuid-0002", "uuid-0001", "Hi there", testjsonl.Timestamp(ts1)).
		AddUser("uuid-0003", "uuid-0002", "How are you?", testjsonl.Timestamp(ts2)).
		AddAssistant("uuid-0004", "uuid-0003", "I am fine", testjsonl.Timestamp(ts3)).
		AddUser("uuid-0005", "uuid-0004", "Goodbye", testjsonl.Timestamp(ts4)).
		AddAssistant("uuid-0006", "uuid-0005", "See you later", testjsonl.Timestamp(ts5)).
		String()
	return loadTranscript(t, "simple.jsonl", content)
}

// toolSession is a conversation whose first reply runs a Bash
// tool: the tool_use entry forks into a progress ping and the
// tool_result, then the assistant continues, then a second plain
// turn follows.
func toolSession(t *testing.T) *Store {
	t.Helper()
	content := testjsonl.NewBuilder().
		AddSummary("Tool test conversation").
		AddUser("uuid-1001", "", "List the files", testjsonl.Timestamp(ts0)).
		AddAssistant("uuid-1002a", "uuid-1001", "Sure, listing now.", testjsonl.Timestamp(ts1)).
		AddAssistantBlocks("uuid-1002b", "uuid-1002a", []map[string]any{
			testjsonl.ToolUseBlock("tool-1", "Bash", map[string]any{
				"command": "ls", "description": "List files",
			}),
		}, testjsonl.Timestamp(ts1)).
		AddProgress("uuid-1003", "uuid-1002b").
		AddUserBlocks("uuid-1004", "uuid-1002b", []map[string]any{
			testjsonl.ToolResultBlock("tool-1", "file1.txt\nfile2.txt", false),
		}, testjsonl.Timestamp(ts2)).
		AddAssistant("uuid-1005", "uuid-1004", "There are two files.", testjsonl.Timestamp(ts3)).
		AddUser("uuid-1006", "uuid-1005", "Thanks", testjsonl.Timestamp(ts4)).
		AddAssistant("uuid-1007", "uuid-1006", "You're welcome", testjsonl.Timestamp(ts5)).
		String()
	return loadTranscript(t, "tool.jsonl", content)
}

// branchedSession has a real fork: the assistant entry uuid-2002
// has two alternative assistant children, each with its own user
// continuation. The later child (uuid-2005) is the active branch.
func branchedSession(t *testing.T) *Store {
	t.Helper()
	content := testjsonl.NewBuilder().
		AddUser("uuid-2001", "", "Pick one", testjsonl.Timestamp(ts0)).
		AddAssistant("uuid-2002", "uuid-2001", "Let me offer alternatives", testjsonl.Timestamp(ts1)).
		AddAssistant("uuid-2003", "uuid-2002", "option A", testjsonl.Timestamp(ts2)).
		AddUser("uuid-2004", "uuid-2003", "Tell me more about A", testjsonl.Timestamp(ts3)).
		AddAssistant("uuid-2005", "uuid-2002", "option B", testjsonl.Timestamp(ts4)).
		AddUser("uuid-2006", "uuid-2005", "Tell me more about B", testjsonl.Timestamp(ts5)).
		String()
	return loadTranscript(t, "branched.jsonl", content)
}

// compactedSession has a pre-compaction prefix severed by a
// compact_boundary entry that carries a logicalParentUuid back
// into it, followed by a compaction summary and a live turn.
func compactedSession(t *testing.T) *Store {
	t.Helper()
	content := testjsonl.NewBuilder().
		AddUser("uuid-3001", "", "First question", testjsonl.Timestamp(ts0)).
		AddAssistant("uuid-3002", "uuid-3001", "First answer", testjsonl.Timestamp(ts1)).
		AddAssistant("uuid-3003", "uuid-3002", "Anything else?", testjsonl.Timestamp(ts2)).
		AddCompactBoundary("uuid-3004", "uuid-3003", testjsonl.Timestamp(ts3)).
		AddUser("uuid-3005", "uuid-3004",
			"Summary of the earlier conversation",
			testjsonl.Timestamp(ts3), testjsonl.CompactSummary()).
		AddAssistant("uuid-3006", "uuid-3005", "Understood, continuing.", testjsonl.Timestamp(ts4)).
		AddUser("uuid-3007", "uuid-3006", "Third question", testjsonl.Timestamp(ts4)).
		AddAssistant("uuid-3008", "uuid-3007", "Third answer", testjsonl.Timestamp(ts5)).
		String()
	return loadTranscript(t, "compacted.jsonl", content)
}

func pathUUIDs(path []Entry) []string {
	uuids := make([]string, len(path))
	for i, e := range path {
		uuids[i] = e.UUID
	}
	return uuids
}

func activePath(t *testing.T, s *Store, opts PathOptions) []Entry {
	t.Helper()
	path, err := s.ActivePath(opts)
	if err != nil {
		t.Fatalf("ActivePath: %v", err)
	}
	return path
}
