package formset_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formset/pkg/formset"
	"github.com/goliatone/go-formset/pkg/formset/memtree"
)

func attrsOf(block formset.Block) []map[string]string {
	var out []map[string]string
	for _, el := range block.Elements() {
		out = append(out, el.(*memtree.Element).Attrs())
	}
	return out
}

func TestReindexRewritesNamesIDsAndReferences(t *testing.T) {
	block := memtree.NewBlock(
		memtree.NewElement("label", map[string]string{"for": "id_measurements-0-length-tolerance-top"}),
		memtree.NewElement("input", map[string]string{
			"name":             "measurements-0-length-tolerance-top",
			"id":               "id_measurements-0-length-tolerance-top",
			"aria-describedby": "id_measurements-0-length-tolerance-top-help other-0",
			"value":            "3",
		}),
		memtree.NewElement("small", map[string]string{"id": "id_measurements-0-length-tolerance-top-help"}),
	)

	report, err := formset.NewIndexer(group, quiet()).Reindex(block, 4)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if diff := cmp.Diff(formset.ReindexReport{From: 0, To: 4, Renamed: 1}, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	want := []map[string]string{
		{"for": "id_measurements-4-length-tolerance-top", "value": ""},
		{
			"name":             "measurements-4-length-tolerance-top",
			"id":               "id_measurements-4-length-tolerance-top",
			"aria-describedby": "id_measurements-4-length-tolerance-top-help other-0",
			"value":            "3",
		},
		{"id": "id_measurements-4-length-tolerance-top-help", "value": ""},
	}
	if diff := cmp.Diff(want, attrsOf(block)); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestReindexIsIdempotent(t *testing.T) {
	block := memtree.Measurement(group, 2)
	ix := formset.NewIndexer(group, quiet())

	if _, err := ix.Reindex(block, 5); err != nil {
		t.Fatalf("first reindex: %v", err)
	}
	once := attrsOf(block)
	report, err := ix.Reindex(block, 5)
	if err != nil {
		t.Fatalf("second reindex: %v", err)
	}
	if report.Renamed != 0 || report.From != 5 {
		t.Fatalf("expected no-op report, got %+v", report)
	}
	if diff := cmp.Diff(once, attrsOf(block)); diff != "" {
		t.Fatalf("second reindex changed attributes (-want +got):\n%s", diff)
	}
}

func TestReindexSkipsMalformedNames(t *testing.T) {
	block := memtree.NewBlock(
		memtree.NewElement("input", map[string]string{"name": "measurements-0-weight", "id": "id_measurements-0-weight"}),
		memtree.NewElement("input", map[string]string{"name": "csrfmiddlewaretoken", "id": "csrf"}),
		memtree.NewElement("input", map[string]string{"name": "samples-0-weight"}),
		memtree.NewElement("input", map[string]string{"name": "measurements-x-weight"}),
	)

	report, err := formset.NewIndexer(group, quiet()).Reindex(block, 1)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	wantSkipped := []string{"csrfmiddlewaretoken", "samples-0-weight", "measurements-x-weight"}
	if diff := cmp.Diff(wantSkipped, report.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"measurements-1-weight", "csrfmiddlewaretoken", "samples-0-weight", "measurements-x-weight"}, blockNames(block)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got, _ := block.Elements()[1].Attr("id"); got != "csrf" {
		t.Fatalf("expected skipped control id untouched, got %q", got)
	}
}

func TestReindexWithoutIndexedControls(t *testing.T) {
	block := memtree.NewBlock(memtree.NewElement("input", map[string]string{"name": "note"}))
	report, err := formset.NewIndexer(group, quiet()).Reindex(block, 3)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if report.From != -1 || report.Renamed != 0 {
		t.Fatalf("expected untouched block, got %+v", report)
	}
	if diff := cmp.Diff([]string{"note"}, report.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestReindexNegativeIndex(t *testing.T) {
	_, err := formset.NewIndexer(group, quiet()).Reindex(memtree.Measurement(group, 0), -1)
	if !errors.Is(err, formset.ErrNegativeIndex) {
		t.Fatalf("expected ErrNegativeIndex, got %v", err)
	}
}

func TestCurrentIndex(t *testing.T) {
	ix := formset.NewIndexer(group, quiet())
	if got, ok := ix.CurrentIndex(memtree.Measurement(group, 7)); !ok || got != 7 {
		t.Fatalf("expected index 7, got %d (%v)", got, ok)
	}
	if _, ok := ix.CurrentIndex(memtree.Measurement("samples", 7)); ok {
		t.Fatalf("expected foreign group to have no index")
	}
}
