package formset

// Element is a tree node carrying attributes: a form control, a label, a
// button or the form itself.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	// Value returns the current control value (value attribute, textarea
	// text or the selected option).
	Value() string
	SetValue(value string)
}

// Block is one repeated entry of the formset.
type Block interface {
	// Elements lists every element inside the block in document order.
	Elements() []Element
}

// Tree is the storage seam the editor, indexer and guard mutate through.
// Blocks are returned in container order; their position is their ordinal.
type Tree interface {
	Form() Element
	// Controls lists the form's controls in document order, inside and
	// outside the blocks.
	Controls() []Element
	// Named looks a control up by its name attribute.
	Named(name string) (Element, bool)

	Blocks() []Block
	// Last returns the block carrying the last-block marker.
	Last() (Block, bool)
	Previous(block Block) (Block, bool)
	// Clone returns a detached deep copy of block.
	Clone(block Block) Block
	Append(block Block)
	Remove(block Block)
	SetLast(block Block, last bool)
}

const (
	attrID       = "id"
	attrName     = "name"
	attrFor      = "for"
	attrType     = "type"
	attrClass    = "class"
	attrChecked  = "checked"
	attrDisabled = "disabled"
	attrSelected = "selected"
	attrInvalid  = "aria-invalid"
	attrToggled  = "data-formset-toggled"
)

// referenceAttrs hold id references that follow the block index.
var referenceAttrs = []string{attrFor, "aria-describedby", "aria-labelledby", "aria-controls"}

func isControl(el Element) bool {
	switch el.Tag() {
	case "input", "select", "textarea":
		return true
	default:
		return false
	}
}

func inputType(el Element) string {
	if el.Tag() != "input" {
		return el.Tag()
	}
	kind, _ := el.Attr(attrType)
	if kind == "" {
		return "text"
	}
	return kind
}

func hasAttr(el Element, name string) bool {
	_, ok := el.Attr(name)
	return ok
}
