package transcript

import "strings"

// previewLen bounds the per-child text preview in BranchInfo.
const previewLen = 60

// BranchPoints scans the given active path for real branch points:
// parents with two or more children whose fork was caused by the
// user (a resent or edited prompt, an alternative reply) rather
// than by tool execution mechanics. Results are in path order;
// each point carries all siblings in file-position order with the
// on-path child marked active.
func (s *Store) BranchPoints(path []Entry) []BranchInfo {
	if len(path) == 0 {
		return nil
	}
	onPath := make(map[string]bool, len(path))
	for _, e := range path {
		onPath[e.UUID] = true
	}

	var points []BranchInfo
	for i := range path {
		parent := &path[i]
		kids := s.children[parent.UUID]
		if len(kids) < 2 || s.isMechanicalFork(parent, kids) {
			continue
		}
		info := BranchInfo{ParentUUID: parent.UUID}
		for _, kid := range kids {
			child := BranchChild{UUID: kid, IsActive: onPath[kid]}
			if pos, ok := s.positions[kid]; ok {
				child.Position = pos
			}
			if e, ok := s.ByUUID(kid); ok {
				child.Preview = previewOf(e)
			}
			info.Children = append(info.Children, child)
		}
		points = append(points, info)
	}
	return points
}

// isMechanicalFork reports whether the multiple children of parent
// were produced by tool invocation or progress pings. A parent
// whose message requests a tool forks mechanically: one child is
// the tool result, others are progress pings or the continuation.
// Likewise a fork where at most one child is a non-progress entry
// carries no user choice.
func (s *Store) isMechanicalFork(parent *Entry, kids []string) bool {
	if parent.HasToolUse() {
		return true
	}
	nonProgress := 0
	for _, kid := range kids {
		e, ok := s.ByUUID(kid)
		if !ok || e.Type != EntryProgress {
			nonProgress++
		}
	}
	return nonProgress <= 1
}

// previewOf returns a short single-line preview of an entry's
// text: its string content or first text block, newlines
// flattened, cut to previewLen runes plus "..." when longer.
func previewOf(e *Entry) string {
	text := ""
	switch {
	case e.Message.IsText:
		text = e.Message.Text
	default:
		for _, b := range e.Message.Blocks {
			if b.Kind == BlockText {
				text = b.Text
				break
			}
		}
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	return Truncate(StripANSI(text), previewLen)
}
