package main

import (
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/asparagusbeef/cchat/internal/project"
)

func runProjects(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("projects", flag.ExitOnError)
	fs.Parse(args)

	projects, err := project.List(cfg.ProjectsDir)
	if err != nil {
		fatalf("%v", err)
	}
	if len(projects) == 0 {
		fmt.Println("no projects found")
		return
	}
	for _, p := range projects {
		fmt.Printf("%-50s %3d sessions, %s\n",
			p.Name, p.SessionCount, humanize.Time(p.LastModified))
	}
}
