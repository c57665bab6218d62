// ABOUTME: Selects the active conversation path through the parent-uuid forest.
// ABOUTME: Handles compaction stitching, cycle-safe walks, and branch overrides.
package transcript

// PathOptions controls ActivePath. The zero value selects the
// default path: latest tip, compaction stitching enabled.
type PathOptions struct {
	// Branch, when positive, follows the Branch-th sibling (1-based,
	// file order) at the first real branch point instead of the
	// active child.
	Branch int

	// NoStitch stops the backward walk at compaction boundaries
	// instead of following logicalParentUuid links.
	NoStitch bool
}

// ActivePath returns the ordered entry sequence of the currently
// active conversation: from a root to the latest non-sidechain
// tip, following parent links backwards and optionally stitching
// across compaction boundaries.
func (s *Store) ActivePath(opts PathOptions) ([]Entry, error) {
	if opts.Branch > 0 {
		return s.branchPath(opts.Branch, !opts.NoStitch)
	}
	tip, ok := s.findTip()
	if !ok {
		return nil, nil
	}
	return s.walkBackward(tip, !opts.NoStitch), nil
}

// findTip returns the uuid of the last entry in file order that
// carries a uuid and is not part of a sidechain.
func (s *Store) findTip() (string, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := &s.entries[i]
		if e.UUID != "" && !e.IsSidechain {
			return e.UUID, true
		}
	}
	return "", false
}

// walkBackward follows parent links from tip towards a root,
// prepending each entry. A broken parent link terminates the walk
// unless stitching applies: a compact_boundary entry whose
// logicalParentUuid resolves into the store continues the walk in
// the pre-compaction graph. A uuid already on the path terminates
// the walk, which keeps malformed cyclic data from looping.
func (s *Store) walkBackward(tip string, stitch bool) []Entry {
	cur, ok := s.ByUUID(tip)
	if !ok {
		return nil
	}

	path := []Entry{*cur}
	visited := map[string]bool{cur.UUID: true}

	for {
		next, ok := s.stepBack(cur, stitch)
		if !ok || visited[next.UUID] {
			break
		}
		path = append(path, *next)
		visited[next.UUID] = true
		cur = next
	}

	// Reverse into root-first order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// stepBack resolves the predecessor of cur: its parent when the
// link is intact, otherwise the logical parent when stitching
// applies at a compaction boundary.
func (s *Store) stepBack(cur *Entry, stitch bool) (*Entry, bool) {
	if cur.ParentUUID != "" {
		if parent, ok := s.ByUUID(cur.ParentUUID); ok {
			return parent, true
		}
	}
	if stitch && cur.IsCompactBoundary() {
		if lp, ok := s.LogicalParentOf(cur.UUID); ok {
			if parent, ok := s.ByUUID(lp); ok {
				return parent, true
			}
		}
	}
	return nil, false
}

// branchPath rebuilds the active path but follows the branch-th
// sibling (1-based, file order) at the first real branch point.
// The prefix up to the branch point is shared with the default
// path; the suffix follows each entry's latest child to a tip.
func (s *Store) branchPath(branch int, stitch bool) ([]Entry, error) {
	defaultPath, err := s.ActivePath(PathOptions{NoStitch: !stitch})
	if err != nil {
		return nil, err
	}
	points := s.BranchPoints(defaultPath)
	if len(points) == 0 {
		return nil, ErrBranchOutOfRange
	}

	point := points[0]
	if branch > len(point.Children) {
		return nil, ErrBranchOutOfRange
	}
	selected := point.Children[branch-1].UUID

	var path []Entry
	visited := make(map[string]bool)
	for _, e := range defaultPath {
		path = append(path, e)
		visited[e.UUID] = true
		if e.UUID == point.ParentUUID {
			break
		}
	}

	for cur := selected; cur != "" && !visited[cur]; {
		e, ok := s.ByUUID(cur)
		if !ok {
			break
		}
		path = append(path, *e)
		visited[cur] = true
		cur = s.latestChild(cur)
	}
	return path, nil
}

// latestChild returns the highest-position child of id, or "".
func (s *Store) latestChild(id string) string {
	kids := s.children[id]
	if len(kids) == 0 {
		return ""
	}
	return kids[len(kids)-1]
}
