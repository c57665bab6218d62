// mkfixture writes demo transcript files covering the shapes the
// reader has to handle: a linear chat, a tool run with its
// mechanical fork, a real user branch, and a compacted session.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/asparagusbeef/cchat/internal/testjsonl"
)

func main() {
	log.SetFlags(0)

	out := flag.String("out", "", "output directory")
	flag.Parse()
	if *out == "" {
		fmt.Fprintln(os.Stderr, "usage: mkfixture -out <dir>")
		os.Exit(1)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("creating %s: %v", *out, err)
	}

	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	fixtures := map[string]string{
		"sess-linear.jsonl":    linearSession(base),
		"sess-tool.jsonl":      toolSession(base),
		"sess-branched.jsonl":  branchedSession(base),
		"sess-compacted.jsonl": compactedSession(base),
	}

	for name, content := range fixtures {
		path := filepath.Join(*out, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
		fmt.Printf("  %s\n", path)
	}
	fmt.Printf("fixtures written to %s\n", *out)
}

// stamper yields strictly increasing ISO timestamps.
func stamper(base time.Time) func() string {
	n := 0
	return func() string {
		ts := base.Add(time.Duration(n) * 10 * time.Second)
		n++
		return ts.UTC().Format("2006-01-02T15:04:05.000Z")
	}
}

func linearSession(base time.Time) string {
	ts := stamper(base)
	u1, a1 := uuid.NewString(), uuid.NewString()
	u2, a2 := uuid.NewString(), uuid.NewString()

	return testjsonl.NewBuilder().
		AddSummary("Demo: a short linear conversation").
		AddUser(u1, "", "What does this project do?", testjsonl.Timestamp(ts())).
		AddAssistant(a1, u1, "It reads agent transcripts and rebuilds the conversation.", testjsonl.Timestamp(ts())).
		AddUser(u2, a1, "How do I list sessions?", testjsonl.Timestamp(ts())).
		AddAssistant(a2, u2, "Run the list command inside a project directory.", testjsonl.Timestamp(ts())).
		String()
}

func toolSession(base time.Time) string {
	ts := stamper(base)
	u1 := uuid.NewString()
	asstText, asstTool := uuid.NewString(), uuid.NewString()
	progress, result := uuid.NewString(), uuid.NewString()
	followUp := uuid.NewString()
	toolID := "toolu_" + uuid.NewString()

	return testjsonl.NewBuilder().
		AddSummary("Demo: a tool invocation").
		AddUser(u1, "", "How many Go files are there?", testjsonl.Timestamp(ts())).
		AddAssistant(asstText, u1, "Let me count.", testjsonl.Timestamp(ts())).
		AddAssistantBlocks(asstTool, asstText, []map[string]any{
			testjsonl.ToolUseBlock(toolID, "Bash", map[string]any{
				"command":     "find . -name '*.go' | wc -l",
				"description": "Count Go files",
			}),
		}, testjsonl.Timestamp(ts())).
		AddProgress(progress, asstTool).
		AddUserBlocks(result, asstTool, []map[string]any{
			testjsonl.ToolResultBlock(toolID, "42\n", false),
		}, testjsonl.Timestamp(ts())).
		AddAssistant(followUp, result, "There are 42 Go files.", testjsonl.Timestamp(ts())).
		String()
}

func branchedSession(base time.Time) string {
	ts := stamper(base)
	u1, fork := uuid.NewString(), uuid.NewString()
	oldChild, oldUser := uuid.NewString(), uuid.NewString()
	newChild, newUser := uuid.NewString(), uuid.NewString()

	return testjsonl.NewBuilder().
		AddSummary("Demo: a regenerated reply").
		AddUser(u1, "", "Suggest a name for the tool", testjsonl.Timestamp(ts())).
		AddAssistant(fork, u1, "A few directions come to mind.", testjsonl.Timestamp(ts())).
		AddAssistant(oldChild, fork, "How about 'logview'?", testjsonl.Timestamp(ts())).
		AddUser(oldUser, oldChild, "Too generic", testjsonl.Timestamp(ts())).
		AddAssistant(newChild, fork, "How about 'cchat'?", testjsonl.Timestamp(ts())).
		AddUser(newUser, newChild, "That works", testjsonl.Timestamp(ts())).
		String()
}

func compactedSession(base time.Time) string {
	ts := stamper(base)
	u1, a1, a2 := uuid.NewString(), uuid.NewString(), uuid.NewString()
	boundary, summary, ack := uuid.NewString(), uuid.NewString(), uuid.NewString()
	after, reply := uuid.NewString(), uuid.NewString()

	return testjsonl.NewBuilder().
		AddSummary("Demo: a compacted conversation").
		AddUser(u1, "", "Walk me through the loader", testjsonl.Timestamp(ts())).
		AddAssistant(a1, u1, "It reads the file line by line.", testjsonl.Timestamp(ts())).
		AddAssistant(a2, a1, "Malformed lines are skipped.", testjsonl.Timestamp(ts())).
		AddCompactBoundary(boundary, a2, testjsonl.Timestamp(ts())).
		AddUser(summary, boundary,
			"Earlier discussion covered the loader design.",
			testjsonl.Timestamp(ts()), testjsonl.CompactSummary()).
		AddAssistant(ack, summary, "Context restored.", testjsonl.Timestamp(ts())).
		AddUser(after, ack, "And the path selector?", testjsonl.Timestamp(ts())).
		AddAssistant(reply, after, "It walks parent links back from the newest entry.", testjsonl.Timestamp(ts())).
		String()
}
