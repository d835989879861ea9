package formset

import (
	"log/slog"

	"github.com/goliatone/go-formset/pkg/key"
)

// Verdict is the outcome of a guarded interaction.
type Verdict struct {
	Allowed    bool
	Violations []Violation
	// Duplicates lists repeated unique-field values in first-seen order.
	Duplicates []string
}

// Guard gates keystrokes and submit attempts on native constraint validity
// and on the uniqueness of one field across all live blocks.
type Guard struct {
	tree     Tree
	layout   Layout
	validity Validity
	logger   *slog.Logger
}

// NewGuard binds a guard to tree.
func NewGuard(tree Tree, layout Layout, options ...Option) *Guard {
	cfg := newConfig(options...)
	return &Guard{
		tree:     tree,
		layout:   layout,
		validity: cfg.validity,
		logger:   cfg.logger,
	}
}

// OnInteraction runs on every keyup and submit. Constraint violations and
// duplicates cancel the event; otherwise the form is marked validated and
// the event proceeds.
func (g *Guard) OnInteraction(ev *Event) Verdict {
	var verdict Verdict
	form := g.tree.Form()

	verdict.Violations = g.validity.Check(g.tree.Controls())
	if len(verdict.Violations) > 0 {
		cancel(ev)
		AddClass(form, g.layout.AttemptedClass)
	}

	verdict.Duplicates = g.FlagDuplicates()
	if len(verdict.Duplicates) > 0 {
		cancel(ev)
	}

	if len(verdict.Violations) > 0 || len(verdict.Duplicates) > 0 {
		return verdict
	}
	AddClass(form, g.layout.ValidatedClass)
	verdict.Allowed = true
	return verdict
}

// FlagDuplicates rescans the unique field of every block, flags every
// instance of a repeated value and clears the flag elsewhere. Empty values
// are never duplicates.
func (g *Guard) FlagDuplicates() []string {
	if g.layout.UniqueField == "" {
		return nil
	}
	instances := g.uniqueFields()

	counts := make(map[string]int, len(instances))
	var order []string
	for _, el := range instances {
		value := el.Value()
		if value == "" {
			continue
		}
		if counts[value] == 0 {
			order = append(order, value)
		}
		counts[value]++
	}

	for _, el := range instances {
		if value := el.Value(); value != "" && counts[value] > 1 {
			AddClass(el, g.layout.FlagClass)
			el.SetAttr(attrInvalid, "true")
			continue
		}
		RemoveClass(el, g.layout.FlagClass)
		el.RemoveAttr(attrInvalid)
	}

	var duplicates []string
	for _, value := range order {
		if counts[value] > 1 {
			duplicates = append(duplicates, value)
		}
	}
	if len(duplicates) > 0 {
		g.logger.Debug("formset: duplicate values in unique field",
			"field", g.layout.UniqueField, "values", duplicates)
	}
	return duplicates
}

func (g *Guard) uniqueFields() []Element {
	var out []Element
	for _, block := range g.tree.Blocks() {
		for _, el := range block.Elements() {
			if !isControl(el) {
				continue
			}
			name, _ := el.Attr(attrName)
			k, err := key.Parse(name)
			if err != nil || k.Group != g.layout.Prefix || k.Field != g.layout.UniqueField {
				continue
			}
			out = append(out, el)
		}
	}
	return out
}

func cancel(ev *Event) {
	ev.PreventDefault()
	ev.StopPropagation()
}
