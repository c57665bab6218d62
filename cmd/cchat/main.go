// ABOUTME: CLI entry point for cchat, a terminal reader for Claude Code transcripts.
// ABOUTME: Dispatches subcommands that list, view, copy, search, and export sessions.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/asparagusbeef/cchat/internal/config"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = ""
)

func main() {
	log.SetFlags(0)

	cmd, args := "view", []string(nil)
	if len(os.Args) > 1 {
		cmd, args = os.Args[1], os.Args[2:]
	}

	switch cmd {
	case "list", "ls":
		runList(args)
	case "view", "v":
		runView(args)
	case "copy", "cp":
		runCopy(args)
	case "search", "s":
		runSearch(args)
	case "tree":
		runTree(args)
	case "export":
		runExport(args)
	case "projects":
		runProjects(args)
	case "version", "--version":
		fmt.Printf("cchat %s (commit %s, built %s)\n", version, commit, buildDate)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Printf(`cchat %s - read Claude Code conversations from the terminal

Reconstructs the active conversation from a project's transcript
files: follows the latest branch through rewrites, stitches across
context compaction, and folds tool runs into their turns.

Usage:
  cchat view [session] [flags]     Show a conversation (runs when no command is given)
  cchat list [flags]               List sessions in the current project
  cchat copy [session] [flags]     Copy turns to the clipboard
  cchat search <pattern> [flags]   Search turn text across sessions
  cchat tree [session] [flags]     Show branch points of a session
  cchat export [session] [flags]   Export a whole conversation
  cchat projects                   List known projects
  cchat version                    Show version information

A session is picked by id prefix, by number from 'cchat list', or
defaults to the most recently modified one.

View flags:
  -p string      Project name, substring, or path (default: cwd project)
  -n int         Show the last N turns
  -r string      Turn range: 3-5, -3--1, or a single index
  -all           Show every turn
  -tools         Show tool calls within each turn
  -raw           Show raw messages (tool results, thinking) instead of turns
  -json          Emit JSON
  -branch int    Follow the N-th sibling at the first branch point
  -no-stitch     Stop at compaction boundaries
  -timestamps    Show clock times
  -compact-summaries  Include compaction summary turns
  -truncate int  Cap tool/thinking content in raw mode (0 disables)
  -follow        Keep the view open and re-render on changes

Environment variables:
  CCHAT_PROJECTS_DIR   Claude Code projects directory
  CCHAT_DATA_DIR       cchat data directory (metadata cache)
  CCHAT_CLIPBOARD_CMD  Clipboard command override
  CCHAT_TRUNCATE       Default truncation length

Configuration lives in ~/.cchat/config.json.
`, version)
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatalf("loading configuration: %v", err)
	}
	return cfg
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "cchat: "+format+"\n", args...)
	os.Exit(1)
}
