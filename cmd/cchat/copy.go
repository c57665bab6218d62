package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/asparagusbeef/cchat/internal/clipboard"
)

func runCopy(args []string) {
	cfg := loadConfig()

	var vf viewFlags
	fs := flag.NewFlagSet("copy", flag.ExitOnError)
	vf.register(fs, cfg.TruncateLen)
	fs.Parse(preprocessArgv(args))

	// Copy defaults to the most recent turn, not the view window.
	if vf.rangeStr == "" && vf.n == 0 && !vf.all {
		vf.rangeStr = "-1"
	}
	vf.timestamps = false
	vf.follow = false

	sess := openSession(cfg, vf.project, fs.Arg(0))
	out, err := renderSession(sess, &vf, cfg.DefaultTurns)
	if err != nil {
		fatalf("%v", err)
	}

	if err := clipboard.CopyWith(runtime.GOOS, cfg.ClipboardCmd, out); err != nil {
		fatalf("copying to clipboard: %v", err)
	}
	fmt.Printf("copied %d characters from %s\n", len(out), sess.id)
}
