// Package testjsonl provides shared JSONL fixture builders for
// transcript test data. Used by the transcript and index test
// packages and by cmd/mkfixture.
package testjsonl

import (
	"encoding/json"
	"strings"
)

// EntryOpt mutates the top-level record of a fixture entry.
type EntryOpt func(map[string]any)

// Sidechain marks the entry as part of a side conversation.
func Sidechain() EntryOpt {
	return func(m map[string]any) { m["isSidechain"] = true }
}

// CompactSummary marks a user entry as a compaction summary.
func CompactSummary() EntryOpt {
	return func(m map[string]any) { m["isCompactSummary"] = true }
}

// Timestamp sets the entry timestamp.
func Timestamp(ts string) EntryOpt {
	return func(m map[string]any) { m["timestamp"] = ts }
}

// TextBlock builds a text content block.
func TextBlock(text string) map[string]any {
	return map[string]any{"type": "text", "text": text}
}

// ThinkingBlock builds a thinking content block.
func ThinkingBlock(thinking string) map[string]any {
	return map[string]any{"type": "thinking", "thinking": thinking}
}

// ToolUseBlock builds a tool_use content block.
func ToolUseBlock(id, name string, input map[string]any) map[string]any {
	return map[string]any{
		"type": "tool_use", "id": id, "name": name, "input": input,
	}
}

// ToolResultBlock builds a tool_result content block. content may
// be a string or a list of text blocks.
func ToolResultBlock(toolUseID string, content any, isError bool) map[string]any {
	b := map[string]any{
		"type": "tool_result", "tool_use_id": toolUseID, "content": content,
	}
	if isError {
		b["is_error"] = true
	}
	return b
}

// UserJSON returns a user entry with string content.
func UserJSON(uuid, parent, content string, opts ...EntryOpt) string {
	return entryJSON("user", uuid, parent, map[string]any{
		"role": "user", "content": content,
	}, opts...)
}

// UserBlocksJSON returns a user entry with list content.
func UserBlocksJSON(uuid, parent string, blocks []map[string]any, opts ...EntryOpt) string {
	return entryJSON("user", uuid, parent, map[string]any{
		"role": "user", "content": blocks,
	}, opts...)
}

// AssistantJSON returns an assistant entry with one text block.
func AssistantJSON(uuid, parent, text string, opts ...EntryOpt) string {
	return AssistantBlocksJSON(uuid, parent,
		[]map[string]any{TextBlock(text)}, opts...)
}

// AssistantBlocksJSON returns an assistant entry with list content.
func AssistantBlocksJSON(uuid, parent string, blocks []map[string]any, opts ...EntryOpt) string {
	return entryJSON("assistant", uuid, parent, map[string]any{
		"role": "assistant", "content": blocks,
	}, opts...)
}

// ProgressJSON returns a progress entry.
func ProgressJSON(uuid, parent string, opts ...EntryOpt) string {
	return entryJSON("progress", uuid, parent, nil, opts...)
}

// SummaryJSON returns a summary entry (no uuid).
func SummaryJSON(summary string) string {
	return mustMarshal(map[string]any{
		"type": "summary", "summary": summary,
	})
}

// CustomTitleJSON returns a custom-title entry.
func CustomTitleJSON(uuid, title string) string {
	return mustMarshal(map[string]any{
		"type": "custom-title", "uuid": uuid, "customTitle": title,
	})
}

// CompactBoundaryJSON returns a system compact_boundary entry.
// logicalParent is omitted when empty.
func CompactBoundaryJSON(uuid, logicalParent string, opts ...EntryOpt) string {
	m := map[string]any{
		"type":       "system",
		"subtype":    "compact_boundary",
		"uuid":       uuid,
		"parentUuid": nil,
	}
	if logicalParent != "" {
		m["logicalParentUuid"] = logicalParent
	}
	for _, opt := range opts {
		opt(m)
	}
	return mustMarshal(m)
}

func entryJSON(typ, uuid, parent string, message map[string]any, opts ...EntryOpt) string {
	m := map[string]any{
		"type": typ,
		"uuid": uuid,
	}
	if parent == "" {
		m["parentUuid"] = nil
	} else {
		m["parentUuid"] = parent
	}
	if message != nil {
		m["message"] = message
	}
	for _, opt := range opts {
		opt(m)
	}
	return mustMarshal(m)
}

// Builder constructs JSONL transcript content with a fluent API.
type Builder struct {
	lines []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// AddSummary appends a summary line.
func (b *Builder) AddSummary(summary string) *Builder {
	return b.AddRaw(SummaryJSON(summary))
}

// AddUser appends a user line with string content.
func (b *Builder) AddUser(uuid, parent, content string, opts ...EntryOpt) *Builder {
	return b.AddRaw(UserJSON(uuid, parent, content, opts...))
}

// AddUserBlocks appends a user line with list content.
func (b *Builder) AddUserBlocks(uuid, parent string, blocks []map[string]any, opts ...EntryOpt) *Builder {
	return b.AddRaw(UserBlocksJSON(uuid, parent, blocks, opts...))
}

// AddAssistant appends an assistant line with one text block.
func (b *Builder) AddAssistant(uuid, parent, text string, opts ...EntryOpt) *Builder {
	return b.AddRaw(AssistantJSON(uuid, parent, text, opts...))
}

// AddAssistantBlocks appends an assistant line with list content.
func (b *Builder) AddAssistantBlocks(uuid, parent string, blocks []map[string]any, opts ...EntryOpt) *Builder {
	return b.AddRaw(AssistantBlocksJSON(uuid, parent, blocks, opts...))
}

// AddProgress appends a progress line.
func (b *Builder) AddProgress(uuid, parent string, opts ...EntryOpt) *Builder {
	return b.AddRaw(ProgressJSON(uuid, parent, opts...))
}

// AddCompactBoundary appends a system compact_boundary line.
func (b *Builder) AddCompactBoundary(uuid, logicalParent string, opts ...EntryOpt) *Builder {
	return b.AddRaw(CompactBoundaryJSON(uuid, logicalParent, opts...))
}

// AddRaw appends an arbitrary raw line.
func (b *Builder) AddRaw(line string) *Builder {
	b.lines = append(b.lines, line)
	return b
}

// String returns the JSONL content with a trailing newline.
func (b *Builder) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}

func mustMarshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
