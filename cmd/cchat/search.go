package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/asparagusbeef/cchat/internal/project"
	"github.com/asparagusbeef/cchat/internal/transcript"
)

func runSearch(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	projectFlag := fs.String("p", "", "project name, substring, or path")
	limit := fs.Int("limit", 20, "stop after this many matches")
	fs.Parse(args)

	pattern := fs.Arg(0)
	if pattern == "" {
		fatalf("usage: cchat search <pattern> [flags]")
	}
	needle := strings.ToLower(pattern)

	projectDir := resolveProjectDir(cfg, *projectFlag)
	files, err := project.SessionFiles(projectDir)
	if err != nil {
		fatalf("%v", err)
	}

	matches := 0
	for _, path := range files {
		if matches >= *limit {
			break
		}
		store, err := transcript.Load(path)
		if err != nil {
			continue
		}
		active, err := store.ActivePath(transcript.PathOptions{})
		if err != nil {
			continue
		}
		turns := transcript.GroupTurns(active, transcript.TurnOptions{})

		sessionID := sessionIDFromPath(path)
		for i, turn := range turns {
			if matches >= *limit {
				break
			}
			text := turn.UserText + "\n" + turn.AssistantText
			idx := strings.Index(strings.ToLower(text), needle)
			if idx < 0 {
				continue
			}
			matches++
			fmt.Printf("%s [turn %d/%d] %s\n",
				sessionID, i+1, len(turns), matchContext(text, idx, len(pattern)))
		}
	}

	if matches == 0 {
		fmt.Printf("no matches for %q\n", pattern)
	}
}

// matchContext returns a single-line window around a match.
func matchContext(text string, idx, matchLen int) string {
	const margin = 30
	start := idx - margin
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + margin
	if end > len(text) {
		end = len(text)
	}
	window := strings.Join(strings.Fields(text[start:end]), " ")
	if start > 0 {
		window = "..." + window
	}
	if end < len(text) {
		window += "..."
	}
	return window
}
