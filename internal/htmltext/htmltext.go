// Package htmltext collapses inline HTML markup to plain text.
// Orphanet summary text sections occasionally carry simple HTML
// (links, emphasis) inside their contents.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Flatten returns the text content of s with any HTML markup removed
// and whitespace collapsed. Input without markup passes through with
// only whitespace normalization.
func Flatten(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return strings.TrimSpace(s)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.Join(strings.Fields(buf.String()), " ")
}
