// Package htmltext reduces HTML fragments from upstream APIs to plain text.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Plain drops every tag, decodes entities, and collapses runs of
// whitespace into single spaces. Block-level tags separate words; inline
// tags such as search-hit <b> highlights do not.
func Plain(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if !inline[atom.Lookup(name)] {
				b.WriteByte(' ')
			}
		}
	}
}

var inline = map[atom.Atom]bool{
	atom.A:      true,
	atom.B:      true,
	atom.Em:     true,
	atom.Font:   true,
	atom.I:      true,
	atom.Span:   true,
	atom.Strong: true,
	atom.U:      true,
}

// Truncate shortens s to at most n runes, appending "..." when anything
// was cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
