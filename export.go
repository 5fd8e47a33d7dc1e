package srcpatch

import (
	"regexp"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// ExportDOM renders the live document. It is the fallback when Save cannot
// commit a patched source; the output is re-serialized markup, not the
// original bytes.
func (e *Editor) ExportDOM() (string, error) {
	return RenderNode(e.doc)
}

// Title returns the text of the document's first title element.
func Title(doc *html.Node) string {
	var title string
	walkElements(doc, func(n *html.Node) bool {
		if title != "" {
			return false
		}
		if n.DataAtom == atom.Title {
			title = strings.TrimSpace(TextContent(n))
			return false
		}
		return true
	})
	return title
}

// ExportFileName names an exported page after its title and the save time,
// e.g. "my-page-20261019-142501.html".
func ExportFileName(title string, t time.Time) string {
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "page"
	}
	return slug + "-" + strftime.Format("%Y%m%d-%H%M%S", t) + ".html"
}
