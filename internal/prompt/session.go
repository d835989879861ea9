// Package prompt drives a formset interactively from a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formset/pkg/formset"
	"github.com/goliatone/go-formset/pkg/key"
)

// Document is the tree plus the lookups a session needs to synthesise
// click events the way a browser would.
type Document interface {
	formset.Tree
	Path(el formset.Element) []formset.Element
	ByClass(class string) []formset.Element
	FormHTML() string
}

// Menu entries, in display order.
const (
	MenuAdd    = "Add measurement"
	MenuRemove = "Remove last measurement"
	MenuSet    = "Set field value"
	MenuSubmit = "Submit"
	MenuShow   = "Show markup"
	MenuQuit   = "Quit"
)

var menu = []string{MenuAdd, MenuRemove, MenuSet, MenuSubmit, MenuShow, MenuQuit}

// Outcome reports how a session ended.
type Outcome struct {
	Submitted bool
}

// Session edits one formset until the user submits or quits.
type Session struct {
	fset   *formset.Formset
	doc    Document
	driver Driver
}

// NewSession binds a session to a formset over doc.
func NewSession(fset *formset.Formset, doc Document, driver Driver) *Session {
	return &Session{fset: fset, doc: doc, driver: driver}
}

// Run shows the menu until submit succeeds, the user quits or a prompt
// fails.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	for {
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("Measurements (%d)", s.fset.Editor().Count()),
			Options: menu,
		})
		if err != nil {
			return Outcome{}, err
		}
		if choice < 0 || choice >= len(menu) {
			return Outcome{}, fmt.Errorf("prompt: unknown menu choice %d", choice)
		}

		switch menu[choice] {
		case MenuAdd:
			err = s.click(ctx, s.fset.Layout().AddClass)
		case MenuRemove:
			err = s.click(ctx, s.fset.Layout().RemoveClass)
		case MenuSet:
			err = s.setField(ctx)
		case MenuSubmit:
			var submitted bool
			submitted, err = s.submit(ctx)
			if err == nil && submitted {
				return Outcome{Submitted: true}, nil
			}
		case MenuShow:
			err = s.driver.Info(ctx, s.doc.FormHTML())
		case MenuQuit:
			return Outcome{}, nil
		}
		if err != nil {
			return Outcome{}, err
		}
	}
}

// click dispatches a click on the last element carrying class, which is the
// button of the newest block that offers that action.
func (s *Session) click(ctx context.Context, class string) error {
	targets := s.doc.ByClass(class)
	if len(targets) == 0 {
		if class == s.fset.Layout().RemoveClass {
			return s.driver.Info(ctx, "Nothing to remove.")
		}
		return s.driver.Info(ctx, "No measurement to copy.")
	}
	target := targets[len(targets)-1]
	result := s.fset.Dispatch(formset.NewEvent(formset.EventClick, s.doc.Path(target)...))
	if result.Err != nil {
		if errors.Is(result.Err, formset.ErrLimitReached) {
			return s.driver.Info(ctx, "The report already holds the maximum number of measurements.")
		}
		return s.driver.Info(ctx, "Operation refused: "+result.Err.Error())
	}
	if !result.Effect.Changed {
		return s.driver.Info(ctx, "At least one measurement is required.")
	}
	verb := "Added"
	if result.Effect.Kind == formset.EffectRemove {
		verb = "Removed"
	}
	return s.driver.Info(ctx, fmt.Sprintf("%s measurement %d, %d in total.",
		verb, result.Effect.Index+1, result.Effect.Count))
}

func (s *Session) setField(ctx context.Context) error {
	blocks := s.doc.Blocks()
	options := make([]string, len(blocks))
	for i := range blocks {
		options[i] = fmt.Sprintf("Measurement %d", i+1)
	}
	blockIdx, err := s.driver.Select(ctx, SelectConfig{Message: "Which measurement?", Options: options})
	if err != nil {
		return err
	}
	if blockIdx < 0 || blockIdx >= len(blocks) {
		return nil
	}

	controls, labels := s.fields(blocks[blockIdx])
	if len(controls) == 0 {
		return s.driver.Info(ctx, "This measurement has no editable fields.")
	}
	fieldIdx, err := s.driver.Select(ctx, SelectConfig{Message: "Which field?", Options: labels, PageSize: 15})
	if err != nil {
		return err
	}
	if fieldIdx < 0 || fieldIdx >= len(controls) {
		return nil
	}

	control := controls[fieldIdx]
	value, err := s.driver.Input(ctx, InputConfig{Message: labels[fieldIdx], Default: control.Value()})
	if err != nil {
		return err
	}
	control.SetValue(value)

	verdict := s.fset.Dispatch(formset.NewEvent(formset.EventKeyUp, s.doc.Path(control)...)).Verdict
	if len(verdict.Duplicates) > 0 {
		return s.driver.Info(ctx, "Duplicate pallet numbers: "+strings.Join(verdict.Duplicates, ", "))
	}
	return nil
}

func (s *Session) submit(ctx context.Context) (bool, error) {
	verdict := s.fset.Dispatch(formset.NewEvent(formset.EventSubmit, s.doc.Path(s.doc.Form())...)).Verdict
	if verdict.Allowed {
		return true, s.driver.Info(ctx, "Form is valid.")
	}
	var lines []string
	for _, v := range verdict.Violations {
		lines = append(lines, fmt.Sprintf("%s: %s", v.Name, v.Constraint))
	}
	if len(verdict.Duplicates) > 0 {
		lines = append(lines, "duplicate pallet numbers: "+strings.Join(verdict.Duplicates, ", "))
	}
	return false, s.driver.Info(ctx, "Submission blocked:\n  "+strings.Join(lines, "\n  "))
}

func (s *Session) fields(block formset.Block) ([]formset.Element, []string) {
	var controls []formset.Element
	var labels []string
	for _, el := range block.Elements() {
		switch el.Tag() {
		case "input", "textarea", "select":
		default:
			continue
		}
		name, _ := el.Attr("name")
		k, err := key.Parse(name)
		if err != nil {
			continue
		}
		if kind, _ := el.Attr("type"); kind == "hidden" {
			continue
		}
		controls = append(controls, el)
		labels = append(labels, k.Field)
	}
	return controls, labels
}
