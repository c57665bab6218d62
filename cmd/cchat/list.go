package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/asparagusbeef/cchat/internal/transcript"
)

func runList(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("list", flag.ExitOnError)
	projectFlag := fs.String("p", "", "project name, substring, or path")
	count := fs.Int("n", 10, "how many sessions to list")
	fs.Parse(args)

	projectDir := resolveProjectDir(cfg, *projectFlag)
	ix := openIndex(cfg, projectDir)

	metas, err := ix.ListSessions(*count)
	if err != nil {
		fatalf("%v", err)
	}
	if len(metas) == 0 {
		fmt.Println("no sessions found")
		return
	}

	for i, m := range metas {
		headline := m.Summary
		if headline == "" {
			headline = m.FirstPrompt
		}
		headline = transcript.Truncate(headline, 70)

		age := ""
		if info, err := os.Stat(m.Path); err == nil {
			age = humanize.Time(info.ModTime())
		}

		fmt.Printf("%2d. %-38s %s\n", i+1, m.SessionID, headline)
		fmt.Printf("    %d messages, %s\n", m.MessageCount, age)
	}
}
