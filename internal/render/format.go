package render

import (
	"fmt"
	"strings"

	"github.com/asparagusbeef/cchat/internal/transcript"
)

// Options controls the text renderers.
type Options struct {
	ShowTimestamp bool
	ShowTools     bool
}

// uuidStubLen is how much of a uuid the raw renderer shows.
const uuidStubLen = 12

// FormatTurn renders one turn as a USER block followed by an
// ASSISTANT block. The USER block is omitted only when the turn has
// assistant text but no user text; the ASSISTANT block is omitted
// when the turn has neither assistant text nor tool calls.
func FormatTurn(turn transcript.Turn, i, total int, opts Options) string {
	var b strings.Builder

	header := fmt.Sprintf("[%d/%d] USER", i, total)
	if opts.ShowTimestamp {
		if clock := formatClock(turn.Timestamp); clock != "" {
			header += " (" + clock + ")"
		}
	}
	if turn.IsCompactSummary {
		header += " [Compaction Summary]"
	}

	if turn.UserText != "" || turn.AssistantText == "" {
		b.WriteString(header + "\n")
		b.WriteString(turn.UserText + "\n")
	}

	if turn.AssistantText != "" || len(turn.ToolCalls) > 0 {
		assistant := fmt.Sprintf("[%d/%d] ASSISTANT", i, total)
		if opts.ShowTools && len(turn.ToolCalls) > 0 {
			assistant += fmt.Sprintf(" (%d tool calls)", len(turn.ToolCalls))
		}
		b.WriteString(assistant + "\n")
		if opts.ShowTools {
			for _, tc := range turn.ToolCalls {
				b.WriteString("  " + OneLine(tc) + "\n")
			}
		}
		if turn.AssistantText != "" {
			b.WriteString(turn.AssistantText + "\n")
		}
	}

	return b.String()
}

// FormatRawMessage renders one raw record with its role, uuid
// stub, and content.
func FormatRawMessage(m transcript.RawMessage, i, total int, opts Options) string {
	header := fmt.Sprintf("[%d/%d] %s", i, total, strings.ToUpper(m.Role))
	if opts.ShowTimestamp {
		if clock := formatClock(m.Timestamp); clock != "" {
			header += " (" + clock + ")"
		}
	}
	if m.UUID != "" {
		header += " (uuid: " + transcript.Truncate(m.UUID, uuidStubLen) + ")"
	}
	return header + "\n" + transcript.StripANSI(m.Content) + "\n"
}

func formatClock(ts string) string {
	t, ok := transcript.ParseTimestamp(ts)
	if !ok {
		return ""
	}
	return t.Format("15:04:05")
}
