package main

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/asparagusbeef/cchat/internal/config"
	"github.com/asparagusbeef/cchat/internal/index"
	"github.com/asparagusbeef/cchat/internal/project"
	"github.com/asparagusbeef/cchat/internal/transcript"
)

// session bundles everything a subcommand needs about one
// resolved transcript.
type session struct {
	id    string
	path  string
	store *transcript.Store
}

// resolveProjectDir applies the -p override, or discovers the
// project for the working directory.
func resolveProjectDir(cfg config.Config, override string) string {
	dir, err := project.Resolve(cfg.ProjectsDir, override)
	if err != nil {
		fatalf("%v", err)
	}
	return dir
}

// openSession resolves a session selector within a project and
// loads its transcript.
func openSession(cfg config.Config, projectOverride, selector string) session {
	projectDir := resolveProjectDir(cfg, projectOverride)
	path, err := index.ResolveSession(projectDir, selector)
	if err != nil {
		fatalf("%v", err)
	}
	store, err := transcript.Load(path)
	if err != nil {
		fatalf("%v", err)
	}
	return session{
		id:    sessionIDFromPath(path),
		path:  path,
		store: store,
	}
}

func sessionIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

// openIndex returns a metadata index for a project, with the
// sqlite cache attached when it opens.
func openIndex(cfg config.Config, projectDir string) *index.Index {
	ix := index.New(projectDir)
	if cache, err := index.OpenCache(cfg.CachePath); err == nil {
		ix = ix.WithCache(cache)
	} else {
		log.Printf("metadata cache unavailable: %v", err)
	}
	return ix
}
