package main

import (
	"flag"
	"fmt"
	"os"
)

func runExport(args []string) {
	cfg := loadConfig()

	var vf viewFlags
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	vf.register(fs, cfg.TruncateLen)
	outPath := fs.String("o", "", "write to a file instead of stdout")
	fs.Parse(preprocessArgv(args))

	// Exports cover the whole conversation unless a range or a count
	// is given.
	if vf.rangeStr == "" && vf.n == 0 {
		vf.all = true
	}
	vf.follow = false

	sess := openSession(cfg, vf.project, fs.Arg(0))
	out, err := renderSession(sess, &vf, cfg.DefaultTurns)
	if err != nil {
		fatalf("%v", err)
	}

	if *outPath == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(*outPath, []byte(out), 0o644); err != nil {
		fatalf("writing %s: %v", *outPath, err)
	}
	fmt.Printf("exported %s to %s\n", sess.id, *outPath)
}
