package formset

import (
	"errors"
	"log/slog"
)

// Result reports what a dispatched event did.
type Result struct {
	Action  Action
	Effect  Effect
	Verdict Verdict
	Err     error
}

// Formset wires an editor, a guard and a dispatcher over one tree.
type Formset struct {
	tree       Tree
	layout     Layout
	editor     *Editor
	guard      *Guard
	dispatcher Dispatcher
	logger     *slog.Logger
}

// New validates that tree matches layout and builds a Formset over it.
func New(tree Tree, layout Layout, options ...Option) (*Formset, error) {
	if tree == nil {
		return nil, errors.New("formset: tree is nil")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := CheckTree(tree, layout); err != nil {
		return nil, err
	}
	cfg := newConfig(options...)
	opts := []Option{WithLogger(cfg.logger), WithValidity(cfg.validity)}
	return &Formset{
		tree:       tree,
		layout:     layout,
		editor:     NewEditor(tree, layout, opts...),
		guard:      NewGuard(tree, layout, opts...),
		dispatcher: NewDispatcher(layout),
		logger:     cfg.logger,
	}, nil
}

// CheckTree verifies the quiescent-state invariants: a form and a counter
// exist, exactly one block carries the last marker and it is the tail, the
// counter equals the block count, and every block is indexed by position.
func CheckTree(tree Tree, layout Layout) error {
	if tree.Form() == nil {
		return &LayoutError{What: "missing form"}
	}
	counter, ok := tree.Named(layout.TotalFormsName())
	if !ok {
		return &LayoutError{What: "missing counter field", Name: layout.TotalFormsName()}
	}
	blocks := tree.Blocks()
	if len(blocks) == 0 {
		return nil
	}
	last, ok := tree.Last()
	if !ok || last != blocks[len(blocks)-1] {
		return &LayoutError{What: "last-block marker is not on the final block", Name: layout.LastBlockID}
	}
	if got := counter.Value(); got != itoa(len(blocks)) {
		return &LayoutError{What: "counter disagrees with block count: " + got, Name: layout.TotalFormsName()}
	}
	ix := NewIndexer(layout.Prefix, WithLogger(discardLogger()))
	for pos, block := range blocks {
		if index, ok := ix.CurrentIndex(block); ok && index != pos {
			return &LayoutError{What: "block at position " + itoa(pos) + " is indexed " + itoa(index)}
		}
	}
	return nil
}

// Tree returns the underlying tree.
func (f *Formset) Tree() Tree { return f.tree }

// Layout returns the layout the formset was built with.
func (f *Formset) Layout() Layout { return f.layout }

// Editor exposes the list editor.
func (f *Formset) Editor() *Editor { return f.editor }

// Guard exposes the submit guard.
func (f *Formset) Guard() *Guard { return f.guard }

// Dispatch classifies ev and runs the matching operation to completion.
// Clicks on add/remove targets always have their default action prevented.
func (f *Formset) Dispatch(ev *Event) Result {
	result := Result{Action: f.dispatcher.Handle(ev)}
	switch result.Action {
	case ActionAppend:
		ev.PreventDefault()
		result.Effect, result.Err = f.editor.Append()
	case ActionRemoveLast:
		ev.PreventDefault()
		result.Effect, result.Err = f.editor.RemoveLast()
	case ActionValidate:
		result.Verdict = f.guard.OnInteraction(ev)
	}
	if result.Err != nil {
		f.logger.Warn("formset: operation refused", "action", result.Action.String(), "error", result.Err)
	}
	return result
}
