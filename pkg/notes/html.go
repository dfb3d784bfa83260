package notes

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces rich-text note content to its plain text, dropping tags,
// comments, and the contents of script/style elements. Whitespace between
// text nodes is collapsed to single spaces.
func StripHTML(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return strings.TrimSpace(raw)
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// Malformed markup: fall back to the raw content rather than lose it
		return strings.TrimSpace(raw)
	}

	var builder strings.Builder
	collectText(doc, &builder)
	return strings.TrimSpace(builder.String())
}

func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript":
			return
		}
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if builder.Len() > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(text)
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, builder)
	}
}
