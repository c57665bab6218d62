// Package project discovers Claude Code project directories: the
// per-project transcript folders that live under ~/.claude/projects,
// named after the working directory with path separators flattened.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Info describes one project directory.
type Info struct {
	Name         string
	Dir          string
	SessionCount int
	LastModified time.Time
}

// Key converts a working-directory path to its project directory
// name: every path separator becomes a dash, so /home/u/proj maps
// to -home-u-proj.
func Key(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "/", "-")
}

// Find locates the project directory for a working directory,
// preferring an exact key match and falling back to a
// case-insensitive one. Returns "" when no directory matches.
func Find(projectsDir, workDir string) string {
	key := Key(workDir)

	exact := filepath.Join(projectsDir, key)
	if info, err := os.Stat(exact); err == nil && info.IsDir() {
		return exact
	}

	dirEntries, err := os.ReadDir(projectsDir)
	if err != nil {
		return ""
	}
	for _, de := range dirEntries {
		if de.IsDir() && strings.EqualFold(de.Name(), key) {
			return filepath.Join(projectsDir, de.Name())
		}
	}
	return ""
}

// List returns all project directories that contain at least one
// session transcript, most recently active first. Files named
// agent-*.jsonl are subagent transcripts, not sessions, and do
// not count.
func List(projectsDir string) ([]Info, error) {
	dirEntries, err := os.ReadDir(projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", projectsDir, err)
	}

	var projects []Info
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		dir := filepath.Join(projectsDir, de.Name())
		count, latest := countSessions(dir)
		if count == 0 {
			continue
		}
		projects = append(projects, Info{
			Name:         de.Name(),
			Dir:          dir,
			SessionCount: count,
			LastModified: latest,
		})
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].LastModified.After(projects[j].LastModified)
	})
	return projects, nil
}

// Resolve picks a project directory. An empty override resolves
// the current working directory; otherwise the override is tried
// as an exact directory name, a name substring, and finally a real
// path converted through Key.
func Resolve(projectsDir, override string) (string, error) {
	if override == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining working directory: %w", err)
		}
		dir := Find(projectsDir, cwd)
		if dir == "" {
			return "", fmt.Errorf("no project found for %s", cwd)
		}
		return dir, nil
	}

	candidate := filepath.Join(projectsDir, override)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return candidate, nil
	}

	dirEntries, err := os.ReadDir(projectsDir)
	if err == nil {
		for _, de := range dirEntries {
			if de.IsDir() && strings.Contains(
				strings.ToLower(de.Name()), strings.ToLower(override),
			) {
				return filepath.Join(projectsDir, de.Name()), nil
			}
		}
	}

	if dir := Find(projectsDir, override); dir != "" {
		return dir, nil
	}
	return "", fmt.Errorf("no project matches %q", override)
}

// SessionFiles returns the project's session transcript paths,
// newest first. Subagent transcripts (agent-*.jsonl) are skipped.
func SessionFiles(projectDir string) ([]string, error) {
	dirEntries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", projectDir, err)
	}

	type fileMtime struct {
		path  string
		mtime time.Time
	}
	var files []fileMtime
	for _, de := range dirEntries {
		if de.IsDir() || !isSessionFile(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		files = append(files, fileMtime{
			path:  filepath.Join(projectDir, de.Name()),
			mtime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].mtime.After(files[j].mtime)
	})
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

func isSessionFile(name string) bool {
	return strings.HasSuffix(name, ".jsonl") &&
		!strings.HasPrefix(name, "agent-")
}

func countSessions(dir string) (int, time.Time) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return 0, time.Time{}
	}
	count := 0
	var latest time.Time
	for _, de := range dirEntries {
		if de.IsDir() || !isSessionFile(de.Name()) {
			continue
		}
		count++
		if info, err := de.Info(); err == nil && info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return count, latest
}
