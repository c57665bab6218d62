package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/asparagusbeef/cchat/internal/render"
	"github.com/asparagusbeef/cchat/internal/transcript"
	"github.com/asparagusbeef/cchat/internal/watch"
)

const followDebounce = 500 * time.Millisecond

// viewFlags carries the flags shared by view, copy, and export.
type viewFlags struct {
	project    string
	n          int
	rangeStr   string
	all        bool
	tools      bool
	raw        bool
	jsonOut    bool
	noStitch   bool
	timestamps bool
	compact    bool
	truncate   int
	branch     int
	follow     bool
}

func (vf *viewFlags) register(fs *flag.FlagSet, truncateDefault int) {
	fs.StringVar(&vf.project, "p", "", "project name, substring, or path")
	fs.IntVar(&vf.n, "n", 0, "show the last N turns")
	fs.StringVar(&vf.rangeStr, "r", "", "turn range, e.g. 3-5 or -3--1")
	fs.BoolVar(&vf.all, "all", false, "show every turn")
	fs.BoolVar(&vf.tools, "tools", false, "show tool calls")
	fs.BoolVar(&vf.raw, "raw", false, "show raw messages instead of turns")
	fs.BoolVar(&vf.jsonOut, "json", false, "emit JSON")
	fs.BoolVar(&vf.noStitch, "no-stitch", false, "stop at compaction boundaries")
	fs.BoolVar(&vf.timestamps, "timestamps", false, "show clock times")
	fs.BoolVar(&vf.compact, "compact-summaries", false, "include compaction summary turns")
	fs.IntVar(&vf.truncate, "truncate", truncateDefault, "cap tool/thinking content (0 disables)")
	fs.IntVar(&vf.branch, "branch", 0, "follow the N-th sibling at the first branch point")
	fs.BoolVar(&vf.follow, "follow", false, "re-render when the transcript changes")
}

func (vf *viewFlags) pathOptions() transcript.PathOptions {
	return transcript.PathOptions{Branch: vf.branch, NoStitch: vf.noStitch}
}

func (vf *viewFlags) turnOptions() transcript.TurnOptions {
	mode := transcript.ModeText
	if vf.tools {
		mode = transcript.ModeTools
	}
	return transcript.TurnOptions{
		Mode:                    mode,
		IncludeCompactSummaries: vf.compact,
	}
}

func runView(args []string) {
	cfg := loadConfig()

	var vf viewFlags
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	vf.register(fs, cfg.TruncateLen)
	fs.Parse(preprocessArgv(args))

	sess := openSession(cfg, vf.project, fs.Arg(0))

	renderOnce := func() {
		out, err := renderSession(sess, &vf, cfg.DefaultTurns)
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Print(out)
	}
	renderOnce()

	if !vf.follow {
		return
	}

	w, err := watch.New(sess.path, followDebounce, func() {
		reloaded, err := transcript.Load(sess.path)
		if err != nil {
			return
		}
		sess.store = reloaded
		fmt.Print("\x1b[2J\x1b[H")
		renderOnce()
	})
	if err != nil {
		fatalf("watching %s: %v", sess.path, err)
	}
	w.Start()
	defer w.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
}

// renderSession produces the full view output for one session
// under the given flags.
func renderSession(sess session, vf *viewFlags, defaultTurns int) (string, error) {
	path, err := sess.store.ActivePath(vf.pathOptions())
	if err != nil {
		if errors.Is(err, transcript.ErrBranchOutOfRange) {
			return "", fmt.Errorf(
				"branch %d does not exist (try 'cchat tree %s')",
				vf.branch, sess.id,
			)
		}
		return "", err
	}

	if vf.raw {
		return renderRawMessages(sess, vf, path)
	}
	return renderTurns(sess, vf, path, defaultTurns)
}

func renderTurns(sess session, vf *viewFlags, path []transcript.Entry, defaultTurns int) (string, error) {
	turns := transcript.GroupTurns(path, vf.turnOptions())
	indices := computeIndices(len(turns), vf.n, vf.rangeStr, vf.all, defaultTurns)

	selected := make([]transcript.Turn, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, turns[i-1])
	}

	if vf.jsonOut {
		start := 1
		if len(indices) > 0 {
			start = indices[0]
		}
		out, err := render.TurnsJSON(selected, sess.id, len(turns), start)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	}

	if len(turns) == 0 {
		return fmt.Sprintf("no conversation turns in %s\n", sess.id), nil
	}

	opts := render.Options{ShowTimestamp: vf.timestamps, ShowTools: vf.tools}
	var b strings.Builder
	fmt.Fprintf(&b, "session %s (%d turns)\n\n", sess.id, len(turns))
	for j, turn := range selected {
		b.WriteString(render.FormatTurn(turn, indices[j], len(turns), opts))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func renderRawMessages(sess session, vf *viewFlags, path []transcript.Entry) (string, error) {
	msgs := transcript.ExtractRaw(path, vf.truncate)

	if vf.jsonOut {
		out, err := render.RawJSON(msgs, sess.id)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	}

	if len(msgs) == 0 {
		return fmt.Sprintf("no messages in %s\n", sess.id), nil
	}

	opts := render.Options{ShowTimestamp: vf.timestamps}
	var b strings.Builder
	fmt.Fprintf(&b, "session %s (%d messages)\n\n", sess.id, len(msgs))
	for i, m := range msgs {
		b.WriteString(render.FormatRawMessage(m, i+1, len(msgs), opts))
		b.WriteString("\n")
	}
	return b.String(), nil
}
