// Package richtext inspects the HTML produced by the job description editor.
package richtext

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText returns the visible text of an HTML fragment with runs of
// whitespace collapsed to single spaces.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if name, _ := z.TagName(); isHidden(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isHidden(string(name)) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// IsBlank reports whether the fragment renders no visible text, e.g. "<p><br></p>"
func IsBlank(fragment string) bool {
	return PlainText(fragment) == ""
}

func isHidden(tag string) bool {
	return tag == "script" || tag == "style"
}
