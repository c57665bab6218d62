// Package render turns core transcript values into terminal and
// JSON output.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asparagusbeef/cchat/internal/transcript"
)

// oneLineLen bounds the payload of a tool one-liner.
const oneLineLen = 60

// ShortPath compresses a path to its last maxParts components,
// prefixed with "..." when anything was dropped. The root counts
// as a component, so /a/b survives maxParts=3 untouched.
func ShortPath(path string, maxParts int) string {
	if path == "" {
		return path
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	parts := len(segments)
	if strings.HasPrefix(path, "/") {
		parts++ // the root is a component of its own
	}
	if parts <= maxParts {
		return path
	}
	keep := maxParts
	if keep > len(segments) {
		keep = len(segments)
	}
	return ".../" + strings.Join(segments[len(segments)-keep:], "/")
}

// OneLine renders a tool call as a single summary line, keyed on
// the fields each known tool actually carries.
func OneLine(ts transcript.ToolSummary) string {
	label := "[" + ts.Name + "]"
	payload := ""

	get := func(key string) string {
		v, _ := ts.InputData[key].(string)
		return v
	}

	switch ts.Name {
	case "Read", "Write", "Edit", "NotebookEdit":
		payload = ShortPath(get("file_path"), 3)
	case "Bash":
		payload = get("description")
		if payload == "" {
			payload = get("command")
		}
	case "Glob", "Grep":
		payload = get("pattern")
	case "WebFetch":
		payload = get("url")
	case "WebSearch":
		payload = get("query")
	case "Task":
		payload = get("description")
	default:
		if len(ts.InputData) > 0 {
			if data, err := json.Marshal(ts.InputData); err == nil {
				payload = string(data)
			}
		}
	}

	payload = strings.ReplaceAll(payload, "\n", " ")
	payload = transcript.Truncate(payload, oneLineLen)
	if payload == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, payload)
}
