// ABOUTME: Loads Claude Code JSONL transcripts into an immutable entry store.
// ABOUTME: Maintains uuid, parent-children, logical-parent, and position indexes.
package transcript

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// Store holds the parsed entries of one transcript file together
// with the lookup maps needed to walk the parent-uuid forest. A
// Store is immutable after Load, so its read accessors are safe
// to share across goroutines.
type Store struct {
	path          string
	entries       []Entry
	byUUID        map[string]int
	children      map[string][]string
	logicalParent map[string]string
	positions     map[string]int
}

// Load reads a transcript file line by line. Blank lines, lines
// that are not valid JSON, and non-object top-level values are
// skipped; a partially written tail must not deny access to the
// valid prefix. Duplicate uuids keep the first-seen entry in every
// uuid-keyed index; later duplicates remain in Entries only.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s := &Store{
		path:          path,
		byUUID:        make(map[string]int),
		children:      make(map[string][]string),
		logicalParent: make(map[string]string),
		positions:     make(map[string]int),
	}

	ls := newLineScanner(f, maxLineSize)
	for ls.scan() {
		line := strings.TrimSpace(ls.text())
		if line == "" || !gjson.Valid(line) {
			continue
		}
		root := gjson.Parse(line)
		if !root.IsObject() {
			continue
		}
		s.add(parseEntry(root))
	}
	if err := ls.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

// add appends the entry and updates the uuid-keyed indexes,
// honoring first-seen-wins on duplicate uuids.
func (s *Store) add(e Entry) {
	pos := len(s.entries)
	s.entries = append(s.entries, e)

	if e.UUID == "" {
		return
	}
	if _, dup := s.byUUID[e.UUID]; dup {
		return
	}
	s.byUUID[e.UUID] = pos
	s.positions[e.UUID] = pos
	if e.ParentUUID != "" {
		s.children[e.ParentUUID] = append(s.children[e.ParentUUID], e.UUID)
	}
	if e.LogicalParentUUID != "" && e.LogicalParentUUID != e.UUID {
		s.logicalParent[e.UUID] = e.LogicalParentUUID
	}
}

// Path returns the file path the store was loaded from.
func (s *Store) Path() string { return s.path }

// Len returns the number of stored entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns all entries in file order. The returned slice
// must not be modified.
func (s *Store) Entries() []Entry { return s.entries }

// ByUUID returns the first-seen entry with the given uuid.
func (s *Store) ByUUID(id string) (*Entry, bool) {
	idx, ok := s.byUUID[id]
	if !ok {
		return nil, false
	}
	return &s.entries[idx], true
}

// ChildrenOf returns the uuids of the entries whose parentUuid is
// id, in file order. The returned slice must not be modified.
func (s *Store) ChildrenOf(id string) []string {
	return s.children[id]
}

// LogicalParentOf returns the logicalParentUuid of the entry with
// the given uuid, when one is set and non-self.
func (s *Store) LogicalParentOf(id string) (string, bool) {
	lp, ok := s.logicalParent[id]
	return lp, ok
}

// PositionOf returns the dense file-order position of the entry
// with the given uuid.
func (s *Store) PositionOf(id string) (int, bool) {
	pos, ok := s.positions[id]
	return pos, ok
}

// parseEntry builds a typed Entry from one JSON record. Unknown
// top-level fields and unknown content block kinds are ignored.
func parseEntry(root gjson.Result) Entry {
	e := Entry{
		Type:                      EntryType(root.Get("type").Str),
		UUID:                      root.Get("uuid").Str,
		ParentUUID:                root.Get("parentUuid").Str,
		Timestamp:                 root.Get("timestamp").Str,
		IsSidechain:               root.Get("isSidechain").Bool(),
		IsCompactSummary:          root.Get("isCompactSummary").Bool(),
		IsVisibleInTranscriptOnly: root.Get("isVisibleInTranscriptOnly").Bool(),
		Subtype:                   root.Get("subtype").Str,
		LogicalParentUUID:         root.Get("logicalParentUuid").Str,
		StopReason:                root.Get("stopReason").Str,
		Summary:                   root.Get("summary").Str,
		CustomTitle:               root.Get("customTitle").Str,
	}
	if msg := root.Get("message"); msg.IsObject() {
		e.Message = parseMessage(msg)
	}
	return e
}

func parseMessage(msg gjson.Result) Message {
	m := Message{Role: msg.Get("role").Str}
	content := msg.Get("content")
	switch {
	case content.Type == gjson.String:
		m.IsText = true
		m.Text = content.Str
	case content.IsArray():
		content.ForEach(func(_, block gjson.Result) bool {
			if !block.IsObject() {
				return true
			}
			if b, ok := parseBlock(block); ok {
				m.Blocks = append(m.Blocks, b)
			}
			return true
		})
	}
	return m
}

func parseBlock(block gjson.Result) (Block, bool) {
	switch block.Get("type").Str {
	case "text":
		return Block{Kind: BlockText, Text: block.Get("text").Str}, true
	case "tool_use":
		input := block.Get("input")
		b := Block{
			Kind:          BlockToolUse,
			ToolUseID:     block.Get("id").Str,
			ToolName:      block.Get("name").Str,
			ToolInputJSON: input.Raw,
		}
		if m, ok := input.Value().(map[string]any); ok {
			b.ToolInput = m
		}
		return b, true
	case "tool_result":
		return Block{
			Kind:       BlockToolResult,
			ToolUseID:  block.Get("tool_use_id").Str,
			ResultText: flattenResultContent(block.Get("content")),
			IsError:    block.Get("is_error").Bool(),
		}, true
	case "thinking":
		return Block{Kind: BlockThinking, Thinking: block.Get("thinking").Str}, true
	default:
		return Block{}, false
	}
}

// flattenResultContent reduces a tool_result content value to one
// string: string content as-is, list content as its text blocks
// joined with newlines. Anything else is empty.
func flattenResultContent(rc gjson.Result) string {
	if rc.Type == gjson.String {
		return rc.Str
	}
	if !rc.IsArray() {
		return ""
	}
	var parts []string
	rc.ForEach(func(_, b gjson.Result) bool {
		if b.IsObject() && b.Get("type").Str == "text" {
			if t := b.Get("text").Str; t != "" {
				parts = append(parts, t)
			}
		}
		return true
	})
	return strings.Join(parts, "\n")
}
