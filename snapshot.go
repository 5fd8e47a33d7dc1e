package srcpatch

import "golang.org/x/net/html"

// baselines remembers the text each target held when it was first seen in an
// edit session. Snapshots are write-once: a node that already has a baseline
// keeps it, so re-scanning the document mid-session never hides an edit the
// user already made. clear ends the session's ground truth.
type baselines struct {
	text map[*html.Node]string
}

func newBaselines() *baselines {
	return &baselines{text: make(map[*html.Node]string)}
}

// snapshot records the current text of every target that has no baseline yet
// and returns how many were added.
func (b *baselines) snapshot(targets []*html.Node) int {
	added := 0
	for _, n := range targets {
		if _, ok := b.text[n]; ok {
			continue
		}
		b.text[n] = TextContent(n)
		added++
	}
	return added
}

func (b *baselines) get(n *html.Node) (string, bool) {
	s, ok := b.text[n]
	return s, ok
}

func (b *baselines) len() int {
	return len(b.text)
}

func (b *baselines) clear() {
	clear(b.text)
}
