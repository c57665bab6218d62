package main

import (
	"flag"
	"fmt"

	"github.com/asparagusbeef/cchat/internal/transcript"
)

func runTree(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("tree", flag.ExitOnError)
	projectFlag := fs.String("p", "", "project name, substring, or path")
	noStitch := fs.Bool("no-stitch", false, "stop at compaction boundaries")
	fs.Parse(args)

	sess := openSession(cfg, *projectFlag, fs.Arg(0))

	path, err := sess.store.ActivePath(transcript.PathOptions{NoStitch: *noStitch})
	if err != nil {
		fatalf("%v", err)
	}
	points := sess.store.BranchPoints(path)

	fmt.Printf("session %s: %d entries on the active path\n",
		sess.id, len(path))
	if len(points) == 0 {
		fmt.Println("no branch points")
		return
	}

	for _, point := range points {
		fmt.Printf("\nbranch point at %s:\n", point.ParentUUID)
		for i, child := range point.Children {
			marker := " "
			if child.IsActive {
				marker = "*"
			}
			fmt.Printf("  %s %d. %s  %s\n", marker, i+1, child.UUID, child.Preview)
		}
	}
	fmt.Printf("\nuse 'cchat view %s -branch N' to read a sibling of the first point\n", sess.id)
}
