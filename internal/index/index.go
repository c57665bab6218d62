// Package index resolves session selectors and serves per-session
// metadata: from the sessions-index.json sidecar when one is
// present and compatible, from a sqlite cache when the caller
// wires one, and by scanning the transcript itself otherwise.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/mod/semver"

	"github.com/asparagusbeef/cchat/internal/project"
	"github.com/asparagusbeef/cchat/internal/transcript"
)

// indexSchemaMajor is the accepted major version of the
// sessions-index.json sidecar schema. An index written by an
// incompatible producer is ignored rather than misread.
const indexSchemaMajor = "v1"

// Meta is the displayable metadata of one session.
type Meta struct {
	SessionID    string
	Path         string
	Summary      string
	FirstPrompt  string
	MessageCount int
}

// sidecarFile mirrors the sessions-index.json layout.
type sidecarFile struct {
	Version  string                  `json:"version"`
	Sessions map[string]sidecarEntry `json:"sessions"`
}

type sidecarEntry struct {
	Summary      string `json:"summary"`
	FirstPrompt  string `json:"firstPrompt"`
	MessageCount int    `json:"messageCount"`
}

// Index serves session metadata for one project directory. The
// sidecar index is read once, lazily.
type Index struct {
	projectDir string
	cache      *Cache

	sidecar       map[string]sidecarEntry
	sidecarLoaded bool
}

// New returns an Index over a project directory.
func New(projectDir string) *Index {
	return &Index{projectDir: projectDir}
}

// WithCache attaches a sqlite metadata cache consulted between
// the sidecar fast path and the transcript slow path.
func (ix *Index) WithCache(c *Cache) *Index {
	ix.cache = c
	return ix
}

// Metadata returns the metadata for one session, cheapest source
// first: sidecar index, sqlite cache, then a full transcript scan
// whose result is written back to the cache.
func (ix *Index) Metadata(sessionID, path string) Meta {
	if entry, ok := ix.lookupSidecar(sessionID); ok {
		return Meta{
			SessionID:    sessionID,
			Path:         path,
			Summary:      entry.Summary,
			FirstPrompt:  entry.FirstPrompt,
			MessageCount: entry.MessageCount,
		}
	}

	mtime, size := fileStamp(path)
	if ix.cache != nil {
		if m, ok := ix.cache.Get(ix.projectDir, sessionID, mtime, size); ok {
			return m
		}
	}

	m := scanMetadata(sessionID, path)
	if ix.cache != nil {
		ix.cache.Put(ix.projectDir, m, mtime, size)
	}
	return m
}

// ListSessions returns up to limit sessions, newest first.
func (ix *Index) ListSessions(limit int) ([]Meta, error) {
	paths, err := project.SessionFiles(ix.projectDir)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	metas := make([]Meta, 0, len(paths))
	for _, p := range paths {
		metas = append(metas, ix.Metadata(sessionIDOf(p), p))
	}
	return metas, nil
}

// lookupSidecar looks up a session in the sidecar index, loading
// the file on first use. A missing, corrupt, or incompatible
// sidecar yields no entries; callers fall through to scanning.
func (ix *Index) lookupSidecar(sessionID string) (sidecarEntry, bool) {
	if !ix.sidecarLoaded {
		ix.sidecar = readSidecar(
			filepath.Join(ix.projectDir, "sessions-index.json"),
		)
		ix.sidecarLoaded = true
	}
	entry, ok := ix.sidecar[sessionID]
	return entry, ok
}

func readSidecar(path string) map[string]sidecarEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var f sidecarFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	if f.Version != "" {
		v := f.Version
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		if !semver.IsValid(v) || semver.Major(v) != indexSchemaMajor {
			return nil
		}
	}
	return f.Sessions
}

// scanMetadata derives metadata by loading the transcript.
func scanMetadata(sessionID, path string) Meta {
	m := Meta{SessionID: sessionID, Path: path}
	store, err := transcript.Load(path)
	if err != nil {
		return m
	}
	for _, e := range store.Entries() {
		switch e.Type {
		case transcript.EntrySummary:
			if m.Summary == "" {
				m.Summary = e.Summary
			}
		case transcript.EntryUser, transcript.EntryAssistant:
			m.MessageCount++
		}
	}
	if active, err := store.ActivePath(transcript.PathOptions{}); err == nil {
		turns := transcript.GroupTurns(active, transcript.TurnOptions{})
		for _, turn := range turns {
			if turn.UserText != "" {
				m.FirstPrompt = firstLine(turn.UserText)
				break
			}
		}
	}
	return m
}

// ResolveSession maps a selector to a transcript path. An empty
// selector picks the newest session; a number indexes the
// newest-first listing (1-based); anything else matches a session
// id prefix. Unresolvable selectors return an error that suggests
// the closest-known session id.
func ResolveSession(projectDir, selector string) (string, error) {
	paths, err := project.SessionFiles(projectDir)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no sessions in %s", projectDir)
	}

	if selector == "" {
		return paths[0], nil
	}

	if n, err := strconv.Atoi(selector); err == nil {
		if n < 1 || n > len(paths) {
			return "", fmt.Errorf(
				"session index %d out of range (1-%d)", n, len(paths),
			)
		}
		return paths[n-1], nil
	}

	for _, p := range paths {
		if strings.HasPrefix(sessionIDOf(p), selector) {
			return p, nil
		}
	}

	if nearest := nearestSessionID(paths, selector); nearest != "" {
		return "", fmt.Errorf(
			"session %q not found (closest match: %s)", selector, nearest,
		)
	}
	return "", fmt.Errorf("session %q not found", selector)
}

// nearestSessionID returns the known session id with the smallest
// edit distance to the selector.
func nearestSessionID(paths []string, selector string) string {
	best, bestDist := "", -1
	for _, p := range paths {
		id := sessionIDOf(p)
		d := levenshtein.ComputeDistance(selector, id)
		if bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

func sessionIDOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

func fileStamp(path string) (mtime int64, size int64) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0
	}
	return info.ModTime().UnixNano(), info.Size()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
