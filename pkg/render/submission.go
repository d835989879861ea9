package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formset/pkg/formset"
)

// HiddenField is a hidden input emitted ahead of the block container.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token. Callers
// supply the input name their backend expects (for example
// "csrfmiddlewaretoken").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// ManagementFields returns the Django management form for layout: the
// TOTAL_FORMS counter plus INITIAL, MIN and MAX.
func ManagementFields(layout formset.Layout, total, initial, min, max int) []HiddenField {
	return []HiddenField{
		Hidden(layout.TotalFormsName(), total),
		Hidden(layout.InitialFormsName(), initial),
		Hidden(layout.MinNumFormsName(), min),
		Hidden(layout.MaxNumFormsName(), max),
	}
}

// mergeHidden appends extra fields, dropping empty names and names already
// present. Management fields always win.
func mergeHidden(base []HiddenField, extra ...HiddenField) []HiddenField {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]HiddenField, 0, len(base)+len(extra))
	for _, field := range append(append([]HiddenField(nil), base...), extra...) {
		if field.Name == "" {
			continue
		}
		if _, dup := seen[field.Name]; dup {
			continue
		}
		seen[field.Name] = struct{}{}
		out = append(out, field)
	}
	return out
}
