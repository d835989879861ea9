package submission

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/form"

	"github.com/goliatone/go-formset/pkg/formset"
	"github.com/goliatone/go-formset/pkg/key"
)

var (
	// ErrMissingCounter is returned when TOTAL_FORMS is absent or not a number.
	ErrMissingCounter = errors.New("submission: missing or invalid TOTAL_FORMS")
	// ErrCounterMismatch is returned when TOTAL_FORMS disagrees with the
	// submitted block indexes.
	ErrCounterMismatch = errors.New("submission: TOTAL_FORMS does not match submitted blocks")
	// ErrIndexGap is returned when block indexes are not 0..n-1.
	ErrIndexGap = errors.New("submission: block indexes are not contiguous")
)

var decoder = form.NewDecoder()

// Collect gathers the name/value pairs a browser would submit for tree:
// every named, enabled control, with checkboxes and radios only when
// checked.
func Collect(tree formset.Tree) url.Values {
	values := url.Values{}
	for _, el := range tree.Controls() {
		name, ok := el.Attr("name")
		if !ok || name == "" {
			continue
		}
		if _, disabled := el.Attr("disabled"); disabled {
			continue
		}
		kind, _ := el.Attr("type")
		switch strings.ToLower(kind) {
		case "submit", "button", "reset", "image", "file":
			continue
		case "checkbox", "radio":
			if _, checked := el.Attr("checked"); !checked {
				continue
			}
			value := el.Value()
			if value == "" {
				value = "on"
			}
			values.Add(name, value)
			continue
		}
		values.Add(name, el.Value())
	}
	return values
}

// Count checks TOTAL_FORMS against the indexed keys present in values and
// returns the block count.
func Count(values url.Values, prefix string) (int, error) {
	raw := strings.TrimSpace(values.Get(prefix + key.Separator + "TOTAL_FORMS"))
	total, err := strconv.Atoi(raw)
	if err != nil || total < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMissingCounter, raw)
	}

	seen := make(map[int]struct{})
	for name := range values {
		k, err := key.Parse(name)
		if err != nil || k.Group != prefix {
			continue
		}
		seen[k.Index] = struct{}{}
	}
	indexes := make([]int, 0, len(seen))
	for index := range seen {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	for want, got := range indexes {
		if want != got {
			return 0, fmt.Errorf("%w: expected index %d, found %d", ErrIndexGap, want, got)
		}
	}
	if len(indexes) != total {
		return 0, fmt.Errorf("%w: counter %d, blocks %d", ErrCounterMismatch, total, len(indexes))
	}
	return total, nil
}

// Decode validates the counter and decodes values into dst. Indexed keys
// become "<prefix>[i].<field>", so dst needs a slice tagged
// `form:"<prefix>"`; management fields are dropped and other keys pass
// through unchanged.
func Decode(values url.Values, prefix string, dst any) error {
	if _, err := Count(values, prefix); err != nil {
		return err
	}

	translated := make(url.Values, len(values))
	for name, vals := range values {
		k, err := key.Parse(name)
		if err == nil && k.Group == prefix {
			translated[fmt.Sprintf("%s[%d].%s", prefix, k.Index, k.Field)] = vals
			continue
		}
		if strings.HasPrefix(name, prefix+key.Separator) {
			continue
		}
		translated[name] = vals
	}

	if err := decoder.Decode(dst, translated); err != nil {
		return fmt.Errorf("submission: decode: %w", err)
	}
	return nil
}
