package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formset/pkg/dom"
	"github.com/goliatone/go-formset/pkg/formset"
)

const page = `<form class="needs-validation" method="post">
<input type="hidden" name="measurements-TOTAL_FORMS" value="1">
<input type="hidden" name="measurements-INITIAL_FORMS" value="0">
<div id="measurement-formset-unique">
  <div class="measurement-form" id="measurement-form-last">
    <label for="id_measurements-0-pallet_number">Pallet</label>
    <input type="text" name="measurements-0-pallet_number" id="id_measurements-0-pallet_number" required pattern="[0-9]{1,6}">
    <input type="number" name="measurements-0-weight" id="id_measurements-0-weight">
    <button type="button" class="btn btn-success add-form-row">+</button>
  </div>
</div>
</form>`

type scriptedDriver struct {
	selects []int
	inputs  []string
	infos   []string
}

func (d *scriptedDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("unexpected input prompt")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, ErrAborted
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func newSession(t *testing.T, driver Driver) (*Session, *dom.Document) {
	t.Helper()
	layout := formset.DefaultLayout()
	doc, err := dom.ParseString(page, layout)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fset, err := formset.New(doc, layout)
	if err != nil {
		t.Fatalf("new formset: %v", err)
	}
	return NewSession(fset, doc, driver), doc
}

func menuIndex(t *testing.T, entry string) int {
	t.Helper()
	for i, m := range menu {
		if m == entry {
			return i
		}
	}
	t.Fatalf("menu entry %q not found", entry)
	return -1
}

func TestSessionAddAndRemove(t *testing.T) {
	driver := &scriptedDriver{selects: []int{
		menuIndex(t, MenuAdd),
		menuIndex(t, MenuAdd),
		menuIndex(t, MenuRemove),
		menuIndex(t, MenuQuit),
	}}
	session, doc := newSession(t, driver)

	outcome, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Submitted {
		t.Fatalf("expected quit without submit")
	}

	want := []string{
		"Added measurement 2, 2 in total.",
		"Added measurement 3, 3 in total.",
		"Removed measurement 3, 2 in total.",
	}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	if got := len(doc.Blocks()); got != 2 {
		t.Fatalf("expected 2 blocks, got %d", got)
	}
	counter, _ := doc.Named("measurements-TOTAL_FORMS")
	if got := counter.Value(); got != "2" {
		t.Fatalf("expected counter 2, got %q", got)
	}
}

func TestSessionRemoveWithoutRemoveButton(t *testing.T) {
	driver := &scriptedDriver{selects: []int{menuIndex(t, MenuRemove), menuIndex(t, MenuQuit)}}
	session, _ := newSession(t, driver)

	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"Nothing to remove."}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionSubmitBlockedThenAllowed(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{
			menuIndex(t, MenuSubmit),
			menuIndex(t, MenuSet), 0, 0,
			menuIndex(t, MenuSubmit),
		},
		inputs: []string{"1234"},
	}
	session, doc := newSession(t, driver)

	outcome, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !outcome.Submitted {
		t.Fatalf("expected submission, infos: %v", driver.infos)
	}
	if len(driver.infos) != 2 {
		t.Fatalf("expected 2 infos, got %v", driver.infos)
	}
	if !strings.HasPrefix(driver.infos[0], "Submission blocked:") ||
		!strings.Contains(driver.infos[0], "measurements-0-pallet_number: required") {
		t.Fatalf("unexpected blocked message: %q", driver.infos[0])
	}
	if driver.infos[1] != "Form is valid." {
		t.Fatalf("unexpected final message: %q", driver.infos[1])
	}
	if !formset.HasClass(doc.Form(), "was-validated") {
		t.Fatalf("expected form to carry was-validated")
	}
}

func TestSessionReportsDuplicates(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{
			menuIndex(t, MenuSet), 0, 0,
			menuIndex(t, MenuAdd),
			menuIndex(t, MenuSet), 1, 0,
			menuIndex(t, MenuQuit),
		},
		inputs: []string{"42", "42"},
	}
	session, _ := newSession(t, driver)

	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{
		"Added measurement 2, 2 in total.",
		"Duplicate pallet numbers: 42",
	}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionPropagatesAbort(t *testing.T) {
	session, _ := newSession(t, &scriptedDriver{})
	if _, err := session.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
