package formset_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/goliatone/go-formset/pkg/formset"
	"github.com/goliatone/go-formset/pkg/formset/memtree"
)

func newFormset(t *testing.T, tree formset.Tree) *formset.Formset {
	t.Helper()
	fset, err := formset.New(tree, formset.DefaultLayout(), quiet())
	if err != nil {
		t.Fatalf("new formset: %v", err)
	}
	return fset
}

func lastButton(t *testing.T, tree formset.Tree) formset.Element {
	t.Helper()
	last, ok := tree.Last()
	if !ok {
		t.Fatalf("no last block")
	}
	return button(t, last)
}

func TestNewRejectsInconsistentTrees(t *testing.T) {
	drift := memtree.MeasurementTree(group, 2)
	mustNamed(t, drift, "measurements-TOTAL_FORMS").SetValue("3")

	gap := memtree.New(memtree.NewElement("form", nil), []*memtree.Element{
		memtree.NewElement("input", map[string]string{"type": "hidden", "name": "measurements-TOTAL_FORMS", "value": "2"}),
	}, memtree.Measurement(group, 0), memtree.Measurement(group, 2))

	noCounter := memtree.New(memtree.NewElement("form", nil), nil, memtree.Measurement(group, 0))

	for name, tree := range map[string]formset.Tree{
		"counter drift": drift,
		"index gap":     gap,
		"no counter":    noCounter,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := formset.New(tree, formset.DefaultLayout(), quiet())
			var layoutErr *formset.LayoutError
			if !errors.As(err, &layoutErr) {
				t.Fatalf("expected LayoutError, got %v", err)
			}
		})
	}

	if _, err := formset.New(nil, formset.DefaultLayout()); err == nil {
		t.Fatalf("expected error for nil tree")
	}
	if _, err := formset.New(memtree.MeasurementTree(group, 1), formset.Layout{}); err == nil {
		t.Fatalf("expected error for empty layout")
	}
}

func TestDispatchClicks(t *testing.T) {
	tree := memtree.MeasurementTree(group, 1)
	fset := newFormset(t, tree)

	ev := formset.NewEvent(formset.EventClick, lastButton(t, tree))
	result := fset.Dispatch(ev)
	if result.Action != formset.ActionAppend || result.Err != nil || !result.Effect.Changed {
		t.Fatalf("unexpected append result %+v", result)
	}
	if !ev.DefaultPrevented() {
		t.Fatalf("expected click default prevented")
	}

	remove := button(t, tree.Blocks()[0])
	ev = formset.NewEvent(formset.EventClick, remove)
	result = fset.Dispatch(ev)
	if result.Action != formset.ActionRemoveLast || !result.Effect.Changed {
		t.Fatalf("unexpected remove result %+v", result)
	}
	if got := fset.Editor().Count(); got != 1 {
		t.Fatalf("expected 1 block, got %d", got)
	}
}

func TestDispatchReportsPreconditionFailures(t *testing.T) {
	fields := []*memtree.Element{
		memtree.NewElement("input", map[string]string{"type": "hidden", "name": "measurements-TOTAL_FORMS", "value": "0"}),
	}
	tree := memtree.New(memtree.NewElement("form", nil), fields)
	fset := newFormset(t, tree)

	add := memtree.NewElement("button", map[string]string{"class": "add-form-row"})
	ev := formset.NewEvent(formset.EventClick, add)
	result := fset.Dispatch(ev)

	var precondition *formset.PreconditionError
	if !errors.As(result.Err, &precondition) || !errors.Is(result.Err, formset.ErrNothingToClone) {
		t.Fatalf("expected nothing-to-clone precondition error, got %v", result.Err)
	}
	if !ev.DefaultPrevented() {
		t.Fatalf("expected click default prevented even on failure")
	}
}

func TestEndToEndScenario(t *testing.T) {
	tree := memtree.MeasurementTree(group, 1)
	mustNamed(t, tree, "measurements-0-pallet_number").RemoveAttr("pattern")
	fset := newFormset(t, tree)

	for i := 0; i < 2; i++ {
		if result := fset.Dispatch(formset.NewEvent(formset.EventClick, lastButton(t, tree))); result.Err != nil {
			t.Fatalf("append %d: %v", i, result.Err)
		}
	}
	if got := counterValue(t, tree); got != "3" {
		t.Fatalf("expected counter 3, got %q", got)
	}
	ix := formset.NewIndexer(group, quiet())
	for pos, block := range tree.Blocks() {
		if got, _ := ix.CurrentIndex(block); got != pos {
			t.Fatalf("block %d indexed %d", pos, got)
		}
	}

	mustNamed(t, tree, "measurements-2-pallet_number").SetValue("X")
	mustNamed(t, tree, "measurements-0-pallet_number").SetValue("X")
	mustNamed(t, tree, "measurements-1-pallet_number").SetValue("Z")

	submit := func() (formset.Result, *formset.Event) {
		ev := formset.NewEvent(formset.EventSubmit, tree.Form())
		return fset.Dispatch(ev), ev
	}
	flags := func() []bool {
		var out []bool
		for _, el := range pallets(tree) {
			out = append(out, formset.HasClass(el, "is-duplicate"))
		}
		return out
	}

	result, ev := submit()
	if result.Verdict.Allowed || !ev.Cancelled() {
		t.Fatalf("expected blocked submit, got %+v", result.Verdict)
	}
	if diff := cmp.Diff([]bool{true, false, true}, flags()); diff != "" {
		t.Fatalf("flags mismatch (-want +got):\n%s", diff)
	}

	mustNamed(t, tree, "measurements-0-pallet_number").SetValue("Y")
	result, ev = submit()
	if !result.Verdict.Allowed || ev.DefaultPrevented() {
		t.Fatalf("expected submit to proceed, got %+v", result.Verdict)
	}
	if diff := cmp.Diff([]bool{false, false, false}, flags()); diff != "" {
		t.Fatalf("flags mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorInvariantsHoldForAnySequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := rapid.IntRange(1, 4).Draw(t, "start")
		tree := memtree.MeasurementTree(group, start)
		editor := formset.NewEditor(tree, formset.DefaultLayout(), quiet())
		layout := formset.DefaultLayout()
		ix := formset.NewIndexer(group, quiet())

		ops := rapid.SliceOfN(rapid.Bool(), 1, 40).Draw(t, "appends")
		for step, appendOp := range ops {
			before := editor.Count()
			var err error
			var effect formset.Effect
			if appendOp {
				effect, err = editor.Append()
			} else {
				effect, err = editor.RemoveLast()
			}
			if err != nil {
				t.Fatalf("step %d: %v", step, err)
			}

			count := editor.Count()
			switch {
			case appendOp && count != before+1:
				t.Fatalf("step %d: append left %d blocks from %d", step, count, before)
			case !appendOp && before > 1 && count != before-1:
				t.Fatalf("step %d: remove left %d blocks from %d", step, count, before)
			case !appendOp && before == 1 && (count != 1 || effect.Changed):
				t.Fatalf("step %d: remove at floor changed the tree", step)
			}
			if effect.Count != count {
				t.Fatalf("step %d: effect count %d, live count %d", step, effect.Count, count)
			}
			if got := counterValue(t, tree); got != strconv.Itoa(count) {
				t.Fatalf("step %d: counter %q, live count %d", step, got, count)
			}
			for pos, block := range tree.Blocks() {
				if got, ok := ix.CurrentIndex(block); !ok || got != pos {
					t.Fatalf("step %d: block at %d indexed %d", step, pos, got)
				}
			}
			if err := formset.CheckTree(tree, layout); err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
		}
	})
}

func TestAppendPreservesFieldNames(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fields := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z][a-z_-]{0,12}`), 1, 5, rapid.ID[string]).Draw(t, "fields")
		elements := make([]*memtree.Element, len(fields))
		for i, field := range fields {
			name := group + "-0-" + field
			elements[i] = memtree.NewElement("input", map[string]string{"name": name, "id": "id_" + name})
		}
		counter := memtree.NewElement("input", map[string]string{"type": "hidden", "name": "measurements-TOTAL_FORMS", "value": "1"})
		tree := memtree.New(memtree.NewElement("form", nil), []*memtree.Element{counter}, memtree.NewBlock(elements...))

		if _, err := formset.NewEditor(tree, formset.DefaultLayout(), quiet()).Append(); err != nil {
			t.Fatalf("append: %v", err)
		}
		var want []string
		for _, field := range fields {
			want = append(want, group+"-1-"+field)
		}
		if diff := cmp.Diff(want, blockNames(tree.Blocks()[1])); diff != "" {
			t.Fatalf("clone names mismatch (-want +got):\n%s", diff)
		}
	})
}
