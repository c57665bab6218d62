package transcript

// Role labels emitted by ExtractRaw. Callers match on these
// literals.
const (
	RoleUser            = "user"
	RoleUserToolResult  = "user (tool_result)"
	RoleUserCompact     = "user (compact_summary)"
	RoleAssistant       = "assistant"
	RoleAssistantTool   = "assistant (tool)"
	RoleAssistantThink  = "assistant (thinking)"
	RoleCompactBoundary = "system (compact_boundary)"
)

// CompactBoundaryText is the fixed content of the raw record
// emitted for a compaction boundary.
const CompactBoundaryText = "--- context compacted ---"

// ExtractRaw flattens an ordered path into one record per logical
// sub-block: text, tool use, tool result, thinking, and compaction
// markers. truncateLen caps tool-result, tool-use, and thinking
// content (they can be arbitrarily large); user prompts and
// assistant prose are never truncated. Zero or negative
// truncateLen disables truncation.
func ExtractRaw(path []Entry, truncateLen int) []RawMessage {
	trunc := func(s string) string {
		if truncateLen <= 0 {
			return s
		}
		return Truncate(s, truncateLen)
	}

	var msgs []RawMessage
	emit := func(e *Entry, role, content string) {
		msgs = append(msgs, RawMessage{
			Role:      role,
			Content:   StripANSI(content),
			Timestamp: e.Timestamp,
			UUID:      e.UUID,
			EntryType: e.Type,
		})
	}

	for i := range path {
		e := &path[i]
		switch e.Type {
		case EntrySystem:
			if e.IsCompactBoundary() {
				emit(e, RoleCompactBoundary, CompactBoundaryText)
			}

		case EntryUser:
			role := RoleUser
			if e.IsCompactSummary {
				role = RoleUserCompact
			}
			if e.Message.IsText {
				emit(e, role, e.Message.Text)
				continue
			}
			for _, b := range e.Message.Blocks {
				switch b.Kind {
				case BlockToolResult:
					content := b.ResultText
					if b.IsError {
						content = "ERROR: " + content
					}
					emit(e, RoleUserToolResult, trunc(content))
				case BlockText:
					emit(e, role, b.Text)
				}
			}

		case EntryAssistant:
			if e.Message.IsText {
				emit(e, RoleAssistant, e.Message.Text)
				continue
			}
			for _, b := range e.Message.Blocks {
				switch b.Kind {
				case BlockText:
					emit(e, RoleAssistant, b.Text)
				case BlockToolUse:
					emit(e, RoleAssistantTool,
						trunc(b.ToolName+" "+b.ToolInputJSON))
				case BlockThinking:
					emit(e, RoleAssistantThink, trunc(b.Thinking))
				}
			}
		}
	}
	return msgs
}
