package tabs

import (
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// page is a parsed HTML document with the structural queries the NEOCC
// portal pages need.
type page struct {
	root *html.Node
}

func parsePage(content io.Reader) (*page, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}
	return &page{root: doc}, nil
}

// findAll returns the elements named tag whose attribute key satisfies
// match, in document order.
func (p *page) findAll(tag, key string, match func(string) bool) []*html.Node {
	out := make([]*html.Node, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			if val, ok := lookupAttr(n, key); ok && match(val) {
				out = append(out, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(p.root)
	return out
}

// elements returns every element named tag.
func (p *page) elements(tag string) []*html.Node {
	out := make([]*html.Node, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(p.root)
	return out
}

// classIs matches a class attribute equal to want.
func classIs(want string) func(string) bool {
	return func(v string) bool { return v == want }
}

// classHas matches a class attribute whose class list contains want.
func classHas(want string) func(string) bool {
	return func(v string) bool { return slices.Contains(strings.Fields(v), want) }
}

// idIs matches an id attribute equal to want.
func idIs(want string) func(string) bool {
	return func(v string) bool { return v == want }
}

// textContent returns the concatenated text below n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// tableRows returns the trimmed cell texts of every row of a <table>.
func tableRows(n *html.Node) [][]string {
	rows := make([][]string, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			cells := make([]string, 0)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(textContent(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return rows
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
