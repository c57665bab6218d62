package render

import (
	"encoding/json"
	"fmt"

	"github.com/asparagusbeef/cchat/internal/transcript"
)

type jsonToolCall struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input,omitempty"`
}

type jsonSide struct {
	Text      string         `json:"text"`
	ToolCalls []jsonToolCall `json:"tool_calls,omitempty"`
}

type jsonTurn struct {
	Index            int       `json:"index"`
	Timestamp        string    `json:"timestamp,omitempty"`
	UUID             string    `json:"uuid,omitempty"`
	IsCompactSummary bool      `json:"is_compact_summary,omitempty"`
	User             jsonSide  `json:"user"`
	Assistant        *jsonSide `json:"assistant,omitempty"`
}

type jsonTurnsDoc struct {
	SessionID  string     `json:"session_id"`
	TotalTurns int        `json:"total_turns"`
	Turns      []jsonTurn `json:"turns"`
}

// TurnsJSON serializes turns for machine consumers. total is the
// full turn count of the session and start the 1-based index of
// the first rendered turn, so range-limited views stay addressable.
func TurnsJSON(turns []transcript.Turn, sessionID string, total, start int) (string, error) {
	doc := jsonTurnsDoc{
		SessionID:  sessionID,
		TotalTurns: total,
		Turns:      make([]jsonTurn, 0, len(turns)),
	}
	for i, turn := range turns {
		jt := jsonTurn{
			Index:            start + i,
			Timestamp:        turn.Timestamp,
			UUID:             turn.UUID,
			IsCompactSummary: turn.IsCompactSummary,
			User:             jsonSide{Text: turn.UserText},
		}
		if turn.AssistantText != "" || len(turn.ToolCalls) > 0 {
			side := jsonSide{Text: turn.AssistantText}
			for _, tc := range turn.ToolCalls {
				side.ToolCalls = append(side.ToolCalls, jsonToolCall{
					Name: tc.Name, Input: tc.InputData,
				})
			}
			jt.Assistant = &side
		}
		doc.Turns = append(doc.Turns, jt)
	}
	return marshalDoc(doc)
}

type jsonRawMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	UUID      string `json:"uuid,omitempty"`
	EntryType string `json:"entry_type"`
}

type jsonRawDoc struct {
	SessionID     string           `json:"session_id"`
	TotalMessages int              `json:"total_messages"`
	Messages      []jsonRawMessage `json:"messages"`
}

// RawJSON serializes raw messages for machine consumers.
func RawJSON(msgs []transcript.RawMessage, sessionID string) (string, error) {
	doc := jsonRawDoc{
		SessionID:     sessionID,
		TotalMessages: len(msgs),
		Messages:      make([]jsonRawMessage, 0, len(msgs)),
	}
	for _, m := range msgs {
		doc.Messages = append(doc.Messages, jsonRawMessage{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			UUID:      m.UUID,
			EntryType: string(m.EntryType),
		})
	}
	return marshalDoc(doc)
}

func marshalDoc(doc any) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding JSON output: %w", err)
	}
	return string(data), nil
}
