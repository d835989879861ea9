package formset

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-formset/pkg/key"
)

// EffectKind identifies the operation an Effect describes.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectAppend
	EffectRemove
)

func (k EffectKind) String() string {
	switch k {
	case EffectAppend:
		return "append"
	case EffectRemove:
		return "remove"
	default:
		return "none"
	}
}

// Effect describes what an editor operation did to the tree.
type Effect struct {
	Kind    EffectKind
	Changed bool
	// Index is the ordinal of the appended or removed block.
	Index int
	// Count is the number of live blocks after the operation.
	Count   int
	Skipped []string
}

// Editor appends and removes blocks while keeping ordinals contiguous and
// the TOTAL_FORMS counter equal to the number of live blocks.
type Editor struct {
	tree    Tree
	layout  Layout
	indexer *Indexer
	logger  *slog.Logger
}

// NewEditor binds an editor to tree.
func NewEditor(tree Tree, layout Layout, options ...Option) *Editor {
	cfg := newConfig(options...)
	return &Editor{
		tree:    tree,
		layout:  layout,
		indexer: NewIndexer(layout.Prefix, WithLogger(cfg.logger)),
		logger:  cfg.logger,
	}
}

// Count returns the number of live blocks.
func (e *Editor) Count() int {
	return len(e.tree.Blocks())
}

// Floor is the smallest block count RemoveLast will leave behind: one, or
// MIN_NUM_FORMS when the page declares a larger minimum.
func (e *Editor) Floor() int {
	if min := e.management(e.layout.MinNumFormsName()); min > 1 {
		return min
	}
	return 1
}

// Limit is MAX_NUM_FORMS, or zero when the page sets no limit.
func (e *Editor) Limit() int {
	return e.management(e.layout.MaxNumFormsName())
}

// Append clones the last block, renumbers the clone to the next ordinal,
// clears its values, moves the last-block marker onto it and bumps the
// counter. Nothing is mutated when a precondition fails.
func (e *Editor) Append() (Effect, error) {
	effect := Effect{Kind: EffectAppend}
	last, ok := e.tree.Last()
	if !ok {
		return effect, &PreconditionError{Op: "append", Err: ErrNothingToClone}
	}
	counter, err := e.counter()
	if err != nil {
		return effect, err
	}
	count := e.Count()
	if limit := e.Limit(); limit > 0 && count >= limit {
		effect.Count = count
		return effect, &PreconditionError{Op: "append", Err: ErrLimitReached}
	}

	clone := e.tree.Clone(last)
	report, err := e.indexer.Reindex(clone, count)
	if err != nil {
		return effect, err
	}
	e.clearBlock(clone)

	e.tree.SetLast(last, false)
	e.toggleButtons(last, true)
	e.tree.Append(clone)
	e.tree.SetLast(clone, true)

	effect.Changed = true
	effect.Index = count
	effect.Skipped = report.Skipped
	effect.Count = e.writeCounter(counter)
	return effect, nil
}

// RemoveLast detaches the last block and promotes its predecessor. At the
// floor, or when the last block has no predecessor, it does nothing.
func (e *Editor) RemoveLast() (Effect, error) {
	effect := Effect{Kind: EffectRemove}
	counter, err := e.counter()
	if err != nil {
		return effect, err
	}
	count := e.Count()
	effect.Count = count

	last, ok := e.tree.Last()
	if !ok {
		return effect, nil
	}
	if count <= e.Floor() {
		e.logger.Debug("formset: remove ignored at floor", "count", count, "floor", e.Floor())
		return effect, nil
	}
	prev, ok := e.tree.Previous(last)
	if !ok {
		return effect, nil
	}

	e.tree.Remove(last)
	e.tree.SetLast(prev, true)
	e.toggleButtons(prev, false)

	effect.Changed = true
	effect.Index = count - 1
	effect.Count = e.writeCounter(counter)
	return effect, nil
}

func (e *Editor) counter() (Element, error) {
	name := e.layout.TotalFormsName()
	counter, ok := e.tree.Named(name)
	if !ok {
		return nil, &LayoutError{What: "missing counter field", Name: name}
	}
	return counter, nil
}

func (e *Editor) writeCounter(counter Element) int {
	count := e.Count()
	counter.SetValue(strconv.Itoa(count))
	return count
}

func (e *Editor) management(name string) int {
	el, ok := e.tree.Named(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(el.Value()))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// clearBlock empties the values copied into a fresh clone, including the
// hidden primary key of bound rows.
func (e *Editor) clearBlock(block Block) {
	for _, el := range block.Elements() {
		RemoveClass(el, e.layout.FlagClass)
		if _, flagged := el.Attr(attrInvalid); flagged {
			el.RemoveAttr(attrInvalid)
		}
		if !isControl(el) {
			continue
		}
		switch inputType(el) {
		case "checkbox", "radio":
			el.RemoveAttr(attrChecked)
		case "hidden":
			if !e.isPrimaryKey(el) {
				continue
			}
			el.SetValue("")
		case "submit", "button", "reset", "image":
		default:
			el.SetValue("")
		}
	}
}

func (e *Editor) isPrimaryKey(el Element) bool {
	name, _ := el.Attr(attrName)
	k, err := key.Parse(name)
	return err == nil && k.Group == e.layout.Prefix && k.Field == "id"
}

// toggleButtons flips add affordances of a block that stopped being last
// into remove affordances, and restores them when it becomes last again.
func (e *Editor) toggleButtons(block Block, toRemove bool) {
	l := e.layout
	if l.AddClass == "" || l.RemoveClass == "" {
		return
	}
	for _, el := range block.Elements() {
		if toRemove {
			if !HasClass(el, l.AddClass) {
				continue
			}
			ReplaceClass(el, l.AddClass, l.RemoveClass)
			ReplaceClass(el, l.SuccessClass, l.DangerClass)
			el.SetAttr(attrToggled, "true")
			continue
		}
		if !hasAttr(el, attrToggled) {
			continue
		}
		ReplaceClass(el, l.RemoveClass, l.AddClass)
		ReplaceClass(el, l.DangerClass, l.SuccessClass)
		el.RemoveAttr(attrToggled)
	}
}
