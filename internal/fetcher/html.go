package fetcher

import (
	"strings"

	"golang.org/x/net/html"
)

var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"head":     true,
}

// StripHTML returns the visible text of a page, one line per text node.
// Script and style contents are dropped.
func StripHTML(page string) string {
	z := html.NewTokenizer(strings.NewReader(page))

	var (
		sb    strings.Builder
		depth int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if skipped[string(name)] {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skipped[string(name)] && depth > 0 {
				depth--
			}
		case html.TextToken:
			if depth > 0 {
				continue
			}
			text := strings.Join(strings.Fields(string(z.Text())), " ")
			if text == "" {
				continue
			}
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	}
}
