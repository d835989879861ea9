package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element wraps an element node.
type Element struct {
	n *html.Node
}

// Node exposes the wrapped node.
func (e Element) Node() *html.Node { return e.n }

func (e Element) Tag() string { return e.n.Data }

func (e Element) Attr(name string) (string, bool) { return lookup(e.n, name) }

func (e Element) SetAttr(name, value string) { setAttr(e.n, name, value) }

func (e Element) RemoveAttr(name string) { removeAttr(e.n, name) }

// Value follows the DOM value property: textarea text, the selected option
// of a select (the first option when none is selected), or the value
// attribute.
func (e Element) Value() string {
	switch e.n.Data {
	case "textarea":
		return textContent(e.n)
	case "select":
		options := e.options()
		for _, opt := range options {
			if hasAttr(opt, "selected") {
				return optionValue(opt)
			}
		}
		if len(options) > 0 && !hasAttr(e.n, "multiple") {
			return optionValue(options[0])
		}
		return ""
	default:
		return attr(e.n, "value")
	}
}

// SetValue writes the value property. An empty value on an input drops the
// attribute; on a select it deselects every option.
func (e Element) SetValue(value string) {
	switch e.n.Data {
	case "textarea":
		for c := e.n.FirstChild; c != nil; {
			next := c.NextSibling
			e.n.RemoveChild(c)
			c = next
		}
		if value != "" {
			e.n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		}
	case "select":
		for _, opt := range e.options() {
			if value != "" && optionValue(opt) == value {
				setAttr(opt, "selected", "")
				continue
			}
			removeAttr(opt, "selected")
		}
	default:
		if value == "" {
			removeAttr(e.n, "value")
			return
		}
		setAttr(e.n, "value", value)
	}
}

func (e Element) options() []*html.Node {
	var out []*html.Node
	walk(e.n, func(n *html.Node) {
		if n.Data == "option" {
			out = append(out, n)
		}
	})
	return out
}

func optionValue(opt *html.Node) string {
	if v, ok := lookup(opt, "value"); ok {
		return v
	}
	return strings.TrimSpace(textContent(opt))
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

func lookup(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := lookup(n, key)
	return v
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := lookup(n, key)
	return ok
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}
