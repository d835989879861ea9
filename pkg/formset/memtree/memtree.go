// Package memtree is a plain in-memory formset.Tree. It keeps blocks as
// slices of attribute maps, which makes it cheap to drive from property
// tests and a reference for what pkg/dom must do with real markup.
package memtree

import (
	"sort"
	"strconv"

	"github.com/goliatone/go-formset/pkg/formset"
)

// Element is an attribute-bag node.
type Element struct {
	tag   string
	attrs map[string]string
	value string
}

// NewElement builds an element; attrs are copied.
func NewElement(tag string, attrs map[string]string) *Element {
	el := &Element{tag: tag, attrs: make(map[string]string, len(attrs))}
	for k, v := range attrs {
		el.attrs[k] = v
	}
	if v, ok := el.attrs["value"]; ok {
		el.value = v
		delete(el.attrs, "value")
	}
	return el
}

func (e *Element) Tag() string { return e.tag }

func (e *Element) Attr(name string) (string, bool) {
	if name == "value" {
		return e.value, true
	}
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttr(name, value string) {
	if name == "value" {
		e.value = value
		return
	}
	e.attrs[name] = value
}

func (e *Element) RemoveAttr(name string) {
	if name == "value" {
		e.value = ""
		return
	}
	delete(e.attrs, name)
}

func (e *Element) Value() string { return e.value }

func (e *Element) SetValue(value string) { e.value = value }

// Attrs returns a snapshot of the attributes, value included.
func (e *Element) Attrs() map[string]string {
	out := make(map[string]string, len(e.attrs)+1)
	for k, v := range e.attrs {
		out[k] = v
	}
	out["value"] = e.value
	return out
}

func (e *Element) clone() *Element {
	cp := NewElement(e.tag, e.attrs)
	cp.value = e.value
	return cp
}

// Block is a repeated entry.
type Block struct {
	elements []*Element
	last     bool
}

// NewBlock builds a block from elements.
func NewBlock(elements ...*Element) *Block {
	return &Block{elements: elements}
}

func (b *Block) Elements() []formset.Element {
	out := make([]formset.Element, len(b.elements))
	for i, el := range b.elements {
		out[i] = el
	}
	return out
}

// IsLast reports whether the block carries the last marker.
func (b *Block) IsLast() bool { return b.last }

// Tree is a form with management fields outside the container and blocks
// inside it.
type Tree struct {
	form   *Element
	fields []*Element
	blocks []*Block
}

var _ formset.Tree = (*Tree)(nil)

// New builds a tree. The final block receives the last marker.
func New(form *Element, fields []*Element, blocks ...*Block) *Tree {
	t := &Tree{form: form, fields: fields, blocks: blocks}
	if n := len(blocks); n > 0 {
		blocks[n-1].last = true
	}
	return t
}

func (t *Tree) Form() formset.Element {
	if t.form == nil {
		return nil
	}
	return t.form
}

func (t *Tree) Controls() []formset.Element {
	var out []formset.Element
	for _, el := range t.fields {
		out = append(out, el)
	}
	for _, block := range t.blocks {
		out = append(out, block.Elements()...)
	}
	return out
}

func (t *Tree) Named(name string) (formset.Element, bool) {
	for _, el := range t.Controls() {
		if n, ok := el.Attr("name"); ok && n == name {
			return el, true
		}
	}
	return nil, false
}

func (t *Tree) Blocks() []formset.Block {
	out := make([]formset.Block, len(t.blocks))
	for i, b := range t.blocks {
		out[i] = b
	}
	return out
}

func (t *Tree) Last() (formset.Block, bool) {
	for _, b := range t.blocks {
		if b.last {
			return b, true
		}
	}
	return nil, false
}

func (t *Tree) Previous(block formset.Block) (formset.Block, bool) {
	pos := t.position(block)
	if pos <= 0 {
		return nil, false
	}
	return t.blocks[pos-1], true
}

func (t *Tree) Clone(block formset.Block) formset.Block {
	src, ok := block.(*Block)
	if !ok {
		return nil
	}
	cp := &Block{last: src.last, elements: make([]*Element, len(src.elements))}
	for i, el := range src.elements {
		cp.elements[i] = el.clone()
	}
	return cp
}

func (t *Tree) Append(block formset.Block) {
	if b, ok := block.(*Block); ok {
		t.blocks = append(t.blocks, b)
	}
}

func (t *Tree) Remove(block formset.Block) {
	pos := t.position(block)
	if pos < 0 {
		return
	}
	t.blocks = append(t.blocks[:pos], t.blocks[pos+1:]...)
}

func (t *Tree) SetLast(block formset.Block, last bool) {
	if b, ok := block.(*Block); ok {
		b.last = last
	}
}

// Values returns name/value pairs of every named control, sorted by name.
func (t *Tree) Values() [][2]string {
	var out [][2]string
	for _, el := range t.Controls() {
		if name, ok := el.Attr("name"); ok {
			out = append(out, [2]string{name, el.Value()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func (t *Tree) position(block formset.Block) int {
	b, ok := block.(*Block)
	if !ok {
		return -1
	}
	for i, candidate := range t.blocks {
		if candidate == b {
			return i
		}
	}
	return -1
}

// Measurement builds the block used across tests: a label, a pallet number
// and a target length input, plus the add button.
func Measurement(group string, index int) *Block {
	name := func(field string) string {
		return group + "-" + itoa(index) + "-" + field
	}
	return NewBlock(
		NewElement("label", map[string]string{"for": "id_" + name("pallet_number")}),
		NewElement("input", map[string]string{
			"type": "text", "name": name("pallet_number"), "id": "id_" + name("pallet_number"),
			"class": "form-control measurements-pallet_number", "required": "true", "pattern": "[0-9]{1,6}",
		}),
		NewElement("input", map[string]string{
			"type": "number", "name": name("length_target"), "id": "id_" + name("length_target"),
			"class": "form-control", "step": "any",
		}),
		NewElement("button", map[string]string{"type": "button", "class": "btn btn-success add-form-row"}),
	)
}

// MeasurementTree builds a tree with n measurement blocks and a counter.
func MeasurementTree(group string, n int) *Tree {
	blocks := make([]*Block, n)
	for i := range blocks {
		blocks[i] = Measurement(group, i)
	}
	fields := []*Element{
		NewElement("input", map[string]string{"type": "hidden", "name": group + "-TOTAL_FORMS", "value": itoa(n)}),
		NewElement("input", map[string]string{"type": "hidden", "name": group + "-INITIAL_FORMS", "value": "0"}),
	}
	form := NewElement("form", map[string]string{"class": "needs-validation"})
	return New(form, fields, blocks...)
}

func itoa(n int) string { return strconv.Itoa(n) }
