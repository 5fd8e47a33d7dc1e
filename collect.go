package srcpatch

import (
	"strings"

	"golang.org/x/net/html"
)

// collect walks the document in order and emits an Edit for every node that
// holds a baseline, still qualifies as a target, and whose trimmed text
// differs from its trimmed baseline.
//
// Document order stands in for source order. The two usually agree because
// parsing preserves element order, but nothing here guarantees it.
func collect(root *html.Node, c *Classifier, b *baselines) []Edit {
	var edits []Edit
	walkElements(root, func(n *html.Node) bool {
		base, ok := b.get(n)
		if !ok {
			return true
		}
		newText := strings.TrimSpace(TextContent(n))
		// An emptied node loses its direct text and with it target status.
		// It still reports an edit so the save cannot commit without it.
		if !c.IsEditable(n) && !(newText == "" && c.tags[n.Data] && !c.inChrome(n)) {
			return true
		}
		oldText := strings.TrimSpace(base)
		if oldText == newText {
			return true
		}
		path, err := GetPath(root, n)
		if err != nil {
			// Detached from root; nothing in the source can be tied to it.
			return true
		}
		edits = append(edits, Edit{Old: oldText, New: newText, Path: path})
		return true
	})
	return edits
}
