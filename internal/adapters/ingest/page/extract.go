package page

import (
	"io"
	"strings"

	"bridgewatch/internal/core/schedule"
	perr "bridgewatch/internal/platform/errors"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractBlocks parses an HTML document and returns its text blocks in document order.
// The walk starts at the first element whose class list contains containerClass, or at
// the document root when no such element exists or containerClass is empty.
// p and h1-h6 become paragraphs, li becomes a list item, and nested div, ul, ol,
// section and article elements become containers carrying their own direct text
func ExtractBlocks(r io.Reader, containerClass string) ([]schedule.RawBlock, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeParse, "parse announcement html")
	}
	root := doc
	if containerClass != "" {
		if n := findByClass(doc, containerClass); n != nil {
			root = n
		}
	}
	w := &walker{blocks: []schedule.RawBlock{}}
	w.walk(root)
	return w.blocks, nil
}

type walker struct {
	blocks []schedule.RawBlock
}

func (w *walker) emit(kind schedule.StructuralKind, text string) {
	w.blocks = append(w.blocks, schedule.RawBlock{
		Text:       text,
		OrderIndex: len(w.blocks),
		Kind:       kind,
	})
}

func (w *walker) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch {
		case skipped(c):
		case c.DataAtom == atom.P || heading(c):
			w.emit(schedule.Paragraph, textOf(c, false))
		case c.DataAtom == atom.Li:
			w.emit(schedule.ListItem, textOf(c, true))
			w.walk(c)
		case container(c):
			w.emit(schedule.Container, directText(c))
			w.walk(c)
		default:
			w.walk(c)
		}
	}
}

func skipped(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Head:
		return true
	}
	return false
}

func heading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func container(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Div, atom.Ul, atom.Ol, atom.Section, atom.Article:
		return true
	}
	return false
}

// textOf concatenates descendant text. With skipBlocks, nested paragraphs and
// containers are left out because the walk emits them on their own
func textOf(n *html.Node, skipBlocks bool) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if skipped(c) {
					continue
				}
				if c.DataAtom == atom.Br {
					b.WriteByte(' ')
					continue
				}
				if skipBlocks && (c.DataAtom == atom.P || heading(c) || c.DataAtom == atom.Li || container(c)) {
					continue
				}
				rec(c)
			}
		}
	}
	rec(n)
	return collapse(b.String())
}

// directText is a container's own text: text children and inline elements, no blocks
func directText(n *html.Node) string { return textOf(n, true) }

func collapse(s string) string { return strings.Join(strings.Fields(s), " ") }

func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for _, f := range strings.Fields(a.Val) {
				if f == class {
					return true
				}
			}
		}
	}
	return false
}
