package srcpatch

import "fmt"

// DetectConflicts reports edits whose placement in source is uncertain.
// It never changes what Patch does; the result is advisory.
//
// A duplicate conflict means the edit's old text occurs more than once in the
// body, so the cursor heuristic picks one occurrence without knowing it is
// the edited one. A direct conflict means two edits start from the same old
// text but end at different new text.
func DetectConflicts(source string, edits []Edit, p *Patcher) []Conflict {
	if p == nil {
		p = NewPatcher(DefaultConfig())
	}
	body := source[bodyOffset(source):]

	var conflicts []Conflict
	seen := make(map[string]Edit)
	counted := make(map[string]bool)
	for _, e := range edits {
		if e.Noop() {
			continue
		}
		key := collapse(e.Old)

		if prev, exists := seen[key]; exists {
			if isConflict(prev, e) {
				conflicts = append(conflicts, Conflict{
					Type:        ConflictDirect,
					Description: fmt.Sprintf("%q edited to both %q and %q", preview(e.Old, p.PreviewLen), preview(prev.New, p.PreviewLen), preview(e.New, p.PreviewLen)),
					Path:        e.Path,
					Edits:       []Edit{prev, e},
				})
			}
		} else {
			seen[key] = e
		}

		if counted[key] {
			continue
		}
		counted[key] = true
		if n := p.matcher(e.Old).count(body); n > 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicate,
				Description: fmt.Sprintf("%q occurs %d times in the body", preview(e.Old, p.PreviewLen), n),
				Path:        e.Path,
				Edits:       []Edit{e},
			})
		}
	}
	return conflicts
}

func isConflict(a, b Edit) bool {
	return a.New != b.New
}
