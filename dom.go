package srcpatch

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrNodeNotFound is returned when a path does not resolve to a node.
var ErrNodeNotFound = errors.New("node not found")

// ParseHTML parses a string into an HTML node tree.
// The tree stands in for the live document: it is what the classifier walks
// and what callers mutate while editing. It is never serialized back onto the
// source buffer.
func ParseHTML(content string) (*html.Node, error) {
	return html.Parse(strings.NewReader(content))
}

// RenderNode converts a node tree back to a string.
func RenderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GetNode traverses the tree using the provided path to find a specific node.
func GetNode(root *html.Node, path NodePath) (*html.Node, error) {
	current := root
	for i, index := range path {
		child := getChildAtIndex(current, index)
		if child == nil {
			return nil, fmt.Errorf("%w at path %v (failed at index %d, step %d)", ErrNodeNotFound, path, index, i)
		}
		current = child
	}
	return current, nil
}

// getChildAtIndex finds the Nth child of a node.
// Note: html.Node's children are a linked list (FirstChild, NextSibling).
func getChildAtIndex(parent *html.Node, index int) *html.Node {
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if count == index {
			return c
		}
		count++
	}
	return nil
}

// GetPath finds the path from root to the target node.
func GetPath(root, target *html.Node) (NodePath, error) {
	var path NodePath

	// Built backwards from target to root
	current := target
	for current != root {
		parent := current.Parent
		if parent == nil {
			return nil, errors.New("target node is not a descendant of root")
		}

		index := getChildIndex(parent, current)
		if index == -1 {
			return nil, errors.New("integrity error: child not found in parent's list")
		}

		path = append(NodePath{index}, path...)
		current = parent
	}
	return path, nil
}

// getChildIndex returns the index of child within parent.
func getChildIndex(parent, child *html.Node) int {
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			return count
		}
		count++
	}
	return -1
}

// TextContent concatenates every descendant text node of n, like the DOM's
// textContent.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for ; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
				continue
			}
			walk(c.FirstChild)
		}
	}
	walk(n.FirstChild)
	return sb.String()
}

// SetText replaces all children of n with a single text node, which is what a
// plain-text edit of a contenteditable element leaves behind.
func SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// hasDirectText reports whether one of n's own child nodes is a text node
// with non-whitespace content. Descendants further down do not count.
func hasDirectText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

// walkElements calls fn for every element under root in document order.
// Returning false from fn skips that element's subtree.
func walkElements(root *html.Node, fn func(*html.Node) bool) {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !fn(c) {
			continue
		}
		walkElements(c, fn)
	}
}
