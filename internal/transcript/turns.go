// ABOUTME: Groups an ordered entry path into displayable user/assistant turns.
// ABOUTME: Collapses multi-entry assistant segments and skips non-conversational entries.
package transcript

// TurnMode selects whether GroupTurns collects tool summaries.
type TurnMode string

const (
	// ModeText collects user and assistant text only.
	ModeText TurnMode = "text"
	// ModeTools additionally records one ToolSummary per tool_use
	// block, in order.
	ModeTools TurnMode = "tools"
)

// TurnOptions controls GroupTurns. The zero value is text mode
// with compaction-summary turns dropped.
type TurnOptions struct {
	Mode                    TurnMode
	IncludeCompactSummaries bool
}

// turnAcc accumulates the current turn during the forward walk.
// hasAssistant tracks whether an assistant entry was seen, which
// is what closes a turn; assistant text alone cannot, since a
// reply may consist solely of tool calls.
type turnAcc struct {
	turn         Turn
	hasAssistant bool
}

// GroupTurns walks the path in order and compresses it into
// conversational turns: each user prompt opens a turn, the
// assistant entries that follow fill it, and the next user prompt
// closes it. System, summary, progress, custom-title, and
// sidechain entries never contribute. User entries whose only
// content is a tool_result feed a pending tool call and do not
// open turns.
func GroupTurns(path []Entry, opts TurnOptions) []Turn {
	collectTools := opts.Mode == ModeTools

	var turns []Turn
	var cur *turnAcc

	flush := func() {
		if cur == nil {
			return
		}
		t := cur.turn
		cur = nil
		if t.UserText == "" && t.AssistantText == "" && len(t.ToolCalls) == 0 {
			return
		}
		if t.IsCompactSummary && !opts.IncludeCompactSummaries {
			return
		}
		turns = append(turns, t)
	}

	for i := range path {
		e := &path[i]
		if e.IsSidechain {
			continue
		}
		switch e.Type {
		case EntryUser:
			text, onlyToolResult := userText(e)
			if onlyToolResult {
				continue
			}
			if cur != nil && cur.hasAssistant {
				flush()
			}
			if cur == nil {
				cur = &turnAcc{turn: Turn{
					Timestamp:        e.Timestamp,
					UUID:             e.UUID,
					IsCompactSummary: e.IsCompactSummary,
				}}
			}
			cur.turn.UserText = joinText(cur.turn.UserText, text)

		case EntryAssistant:
			if cur == nil {
				cur = &turnAcc{turn: Turn{
					Timestamp: e.Timestamp,
					UUID:      e.UUID,
				}}
			}
			cur.hasAssistant = true
			cur.turn.AssistantText = joinText(
				cur.turn.AssistantText, assistantText(e),
			)
			if collectTools {
				for _, b := range e.Message.Blocks {
					if b.Kind == BlockToolUse {
						cur.turn.ToolCalls = append(cur.turn.ToolCalls,
							ToolSummary{Name: b.ToolName, InputData: b.ToolInput})
					}
				}
			}
		}
	}
	flush()
	return turns
}

// userText extracts the user-visible text of a user entry. The
// second result reports that the entry's sole content is tool
// results, which belong to the preceding assistant turn rather
// than starting a new one.
func userText(e *Entry) (string, bool) {
	if e.Message.IsText {
		return StripANSI(e.Message.Text), false
	}
	text := ""
	hasToolResult := false
	for _, b := range e.Message.Blocks {
		switch b.Kind {
		case BlockText:
			text = joinText(text, StripANSI(b.Text))
		case BlockToolResult:
			hasToolResult = true
		}
	}
	if text == "" && hasToolResult {
		return "", true
	}
	return text, false
}

// assistantText concatenates the text content of an assistant
// entry: string content as-is, otherwise its text blocks.
func assistantText(e *Entry) string {
	if e.Message.IsText {
		return StripANSI(e.Message.Text)
	}
	text := ""
	for _, b := range e.Message.Blocks {
		if b.Kind == BlockText {
			text = joinText(text, StripANSI(b.Text))
		}
	}
	return text
}

// joinText appends b to a with a newline separator when both
// sides are non-empty.
func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}
