package srcpatch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Classifier decides which elements of a document are edit targets.
//
// A target is an allow-listed element with direct, non-whitespace text, that
// lives outside editor chrome and has no qualifying element below it. Only
// the innermost of a nested pair is ever a target, so the same visible text
// is never claimed twice.
type Classifier struct {
	tags     map[string]bool
	selector string
	chrome   cascadia.Selector
}

// NewClassifier compiles the tag allow-list and the chrome selector from cfg.
func NewClassifier(cfg Config) (*Classifier, error) {
	c := &Classifier{tags: make(map[string]bool, len(cfg.Tags))}
	for _, t := range cfg.Tags {
		c.tags[strings.ToLower(strings.TrimSpace(t))] = true
	}
	c.selector = strings.Join(cfg.Tags, ", ")

	if cfg.ChromeSelector != "" {
		sel, err := cascadia.Compile(cfg.ChromeSelector)
		if err != nil {
			return nil, fmt.Errorf("compiling chrome selector %q: %w", cfg.ChromeSelector, err)
		}
		c.chrome = sel
	}
	return c, nil
}

// IsEditable reports whether n is an edit target. It has no side effects.
func (c *Classifier) IsEditable(n *html.Node) bool {
	if !c.isCandidate(n) || c.inChrome(n) {
		return false
	}
	nested := false
	walkElements(n, func(d *html.Node) bool {
		if nested {
			return false
		}
		if c.inChromeSelf(d) {
			return false
		}
		if c.isCandidate(d) {
			nested = true
			return false
		}
		return true
	})
	return !nested
}

// Targets returns every edit target under root in document order.
func (c *Classifier) Targets(root *html.Node) []*html.Node {
	var out []*html.Node
	goquery.NewDocumentFromNode(root).Find(c.selector).Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if c.IsEditable(n) {
			out = append(out, n)
		}
	})
	return out
}

// isCandidate checks the element-local rules: allow-listed tag and direct text.
func (c *Classifier) isCandidate(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && c.tags[n.Data] && hasDirectText(n)
}

func (c *Classifier) inChromeSelf(n *html.Node) bool {
	return c.chrome != nil && c.chrome.Match(n)
}

// inChrome reports whether n or one of its ancestors is editor chrome.
func (c *Classifier) inChrome(n *html.Node) bool {
	if c.chrome == nil {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && c.chrome.Match(p) {
			return true
		}
	}
	return false
}
