package formset_test

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/goliatone/go-formset/pkg/formset"
	"github.com/goliatone/go-formset/pkg/formset/memtree"
)

const group = "measurements"

// fataler is satisfied by *testing.T and *rapid.T.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func quiet() formset.Option {
	return formset.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newEditor(tree formset.Tree) *formset.Editor {
	return formset.NewEditor(tree, formset.DefaultLayout(), quiet())
}

// withManagement adds MIN/MAX_NUM_FORMS fields to a measurement tree.
func withManagement(n, min, max int) *memtree.Tree {
	blocks := make([]*memtree.Block, n)
	for i := range blocks {
		blocks[i] = memtree.Measurement(group, i)
	}
	hidden := func(name, value string) *memtree.Element {
		return memtree.NewElement("input", map[string]string{"type": "hidden", "name": group + "-" + name, "value": value})
	}
	fields := []*memtree.Element{
		hidden("TOTAL_FORMS", strconv.Itoa(n)),
		hidden("INITIAL_FORMS", "0"),
		hidden("MIN_NUM_FORMS", strconv.Itoa(min)),
		hidden("MAX_NUM_FORMS", strconv.Itoa(max)),
	}
	return memtree.New(memtree.NewElement("form", map[string]string{"class": "needs-validation"}), fields, blocks...)
}

func counterValue(t fataler, tree formset.Tree) string {
	t.Helper()
	counter, ok := tree.Named(group + "-TOTAL_FORMS")
	if !ok {
		t.Fatalf("counter field missing")
	}
	return counter.Value()
}

func mustNamed(t fataler, tree formset.Tree, name string) formset.Element {
	t.Helper()
	el, ok := tree.Named(name)
	if !ok {
		t.Fatalf("control %q not found", name)
	}
	return el
}

// button returns the first button element of block.
func button(t fataler, block formset.Block) formset.Element {
	t.Helper()
	for _, el := range block.Elements() {
		if el.Tag() == "button" {
			return el
		}
	}
	t.Fatalf("block has no button")
	return nil
}

func blockNames(block formset.Block) []string {
	var out []string
	for _, el := range block.Elements() {
		if name, ok := el.Attr("name"); ok {
			out = append(out, name)
		}
	}
	return out
}
