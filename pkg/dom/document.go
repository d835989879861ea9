package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formset/pkg/formset"
)

// Option configures Parse.
type Option func(*config)

type config struct {
	policy *bluemonday.Policy
	raw    bool
}

// WithPolicy sanitises with policy instead of FormPolicy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithoutSanitizer parses the markup as is. Use only for trusted markup.
func WithoutSanitizer() Option {
	return func(cfg *config) {
		cfg.raw = true
	}
}

// Document is a parsed formset page.
type Document struct {
	root      *html.Node
	form      *html.Node
	container *html.Node
	layout    formset.Layout
}

var _ formset.Tree = (*Document)(nil)

// Parse reads markup and locates the form and block container named by
// layout.
func Parse(r io.Reader, layout formset.Layout, options ...Option) (*Document, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.policy == nil {
		cfg.policy = FormPolicy()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dom: read markup: %w", err)
	}
	if !cfg.raw {
		data = cfg.policy.SanitizeBytes(data)
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("dom: parse markup: %w", err)
	}

	doc := &Document{root: root, layout: layout}
	doc.container = findByID(root, layout.ContainerID)
	if doc.container == nil {
		return nil, &formset.LayoutError{What: "missing block container", Name: layout.ContainerID}
	}
	doc.form = doc.locateForm()
	if doc.form == nil {
		return nil, &formset.LayoutError{What: "missing form"}
	}
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(markup string, layout formset.Layout, options ...Option) (*Document, error) {
	return Parse(strings.NewReader(markup), layout, options...)
}

func (d *Document) locateForm() *html.Node {
	if d.layout.FormID != "" {
		if n := findByID(d.root, d.layout.FormID); n != nil && n.Data == "form" {
			return n
		}
		return nil
	}
	for n := d.container.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "form" {
			return n
		}
	}
	if d.layout.FormClass != "" {
		if n := htmlquery.FindOne(d.root, "//form"+classPredicate(d.layout.FormClass)); n != nil {
			return n
		}
	}
	return htmlquery.FindOne(d.root, "//form")
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// FormHTML renders only the form element.
func (d *Document) FormHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.form); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) Form() formset.Element { return Element{n: d.form} }

func (d *Document) Controls() []formset.Element {
	var out []formset.Element
	walk(d.form, func(n *html.Node) {
		switch n.Data {
		case "input", "select", "textarea":
			out = append(out, Element{n: n})
		}
	})
	return out
}

func (d *Document) Named(name string) (formset.Element, bool) {
	n := htmlquery.FindOne(d.form, ".//*[@name="+literal(name)+"]")
	if n == nil {
		return nil, false
	}
	return Element{n: n}, true
}

// ByID looks up any element of the document.
func (d *Document) ByID(id string) (formset.Element, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return Element{n: n}, true
}

// ByClass lists the form's elements carrying class, in document order.
func (d *Document) ByClass(class string) []formset.Element {
	return wrap(htmlquery.Find(d.form, ".//*"+classPredicate(class)))
}

// Query evaluates an XPath expression against the form.
func (d *Document) Query(expr string) ([]formset.Element, error) {
	nodes, err := htmlquery.QueryAll(d.form, expr)
	if err != nil {
		return nil, fmt.Errorf("dom: query %q: %w", expr, err)
	}
	return wrap(nodes), nil
}

// Path returns el followed by its ancestors up to the document root, the
// shape formset.Event expects for delegated matching.
func (d *Document) Path(el formset.Element) []formset.Element {
	e, ok := el.(Element)
	if !ok || e.n == nil {
		return nil
	}
	var out []formset.Element
	for n := e.n; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			out = append(out, Element{n: n})
		}
	}
	return out
}

func (d *Document) Blocks() []formset.Block {
	var out []formset.Block
	for c := d.container.FirstChild; c != nil; c = c.NextSibling {
		if d.isBlock(c) {
			out = append(out, Block{n: c})
		}
	}
	return out
}

func (d *Document) Last() (formset.Block, bool) {
	for c := d.container.FirstChild; c != nil; c = c.NextSibling {
		if d.isBlock(c) && attr(c, "id") == d.layout.LastBlockID {
			return Block{n: c}, true
		}
	}
	return nil, false
}

func (d *Document) Previous(block formset.Block) (formset.Block, bool) {
	b, ok := block.(Block)
	if !ok || b.n == nil {
		return nil, false
	}
	for c := b.n.PrevSibling; c != nil; c = c.PrevSibling {
		if d.isBlock(c) {
			return Block{n: c}, true
		}
	}
	return nil, false
}

func (d *Document) Clone(block formset.Block) formset.Block {
	b, ok := block.(Block)
	if !ok || b.n == nil {
		return nil
	}
	return Block{n: cloneNode(b.n)}
}

func (d *Document) Append(block formset.Block) {
	b, ok := block.(Block)
	if !ok || b.n == nil || b.n.Parent != nil {
		return
	}
	d.container.AppendChild(b.n)
}

func (d *Document) Remove(block formset.Block) {
	b, ok := block.(Block)
	if !ok || b.n == nil || b.n.Parent != d.container {
		return
	}
	d.container.RemoveChild(b.n)
}

func (d *Document) SetLast(block formset.Block, last bool) {
	b, ok := block.(Block)
	if !ok || b.n == nil {
		return
	}
	if last {
		setAttr(b.n, "id", d.layout.LastBlockID)
		return
	}
	if attr(b.n, "id") == d.layout.LastBlockID {
		removeAttr(b.n, "id")
	}
}

func (d *Document) isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if d.layout.BlockClass == "" {
		return true
	}
	return formset.HasClass(Element{n: n}, d.layout.BlockClass)
}

// Block is one repeated entry rooted at an element child of the container.
type Block struct {
	n *html.Node
}

// Elements lists the block's descendant elements in document order.
func (b Block) Elements() []formset.Element {
	var out []formset.Element
	for c := b.n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) {
			out = append(out, Element{n: n})
		})
	}
	return out
}

// Root returns the block's root element.
func (b Block) Root() formset.Element { return Element{n: b.n} }

func findByID(root *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	return htmlquery.FindOne(root, "//*[@id="+literal(id)+"]")
}

// walk visits n and its element descendants in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func wrap(nodes []*html.Node) []formset.Element {
	out := make([]formset.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Element{n: n})
	}
	return out
}

func cloneNode(src *html.Node) *html.Node {
	dst := &html.Node{
		Type:      src.Type,
		DataAtom:  src.DataAtom,
		Data:      src.Data,
		Namespace: src.Namespace,
		Attr:      append([]html.Attribute(nil), src.Attr...),
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		dst.AppendChild(cloneNode(c))
	}
	return dst
}

func classPredicate(class string) string {
	return "[contains(concat(' ', normalize-space(@class), ' '), " + literal(" "+class+" ") + ")]"
}

// literal quotes s as an XPath string literal.
func literal(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}
