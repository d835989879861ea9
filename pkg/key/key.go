package key

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Separator joins the group, index and field segments.
	Separator = "-"
	// IDPrefix is prepended to a composite name to build the element id.
	IDPrefix = "id_"
)

// ErrMalformed is returned when a string does not encode group-index-field.
var ErrMalformed = errors.New("key: malformed composite identifier")

// Key is the structured form of a composite field identifier.
type Key struct {
	Group string
	Index int
	Field string
}

// New builds a Key, trimming the group and field.
func New(group string, index int, field string) Key {
	return Key{
		Group: strings.TrimSpace(group),
		Index: index,
		Field: strings.TrimSpace(field),
	}
}

// Parse decodes "<group>-<index>-<field>".
func Parse(raw string) (Key, error) {
	parts := strings.SplitN(raw, Separator, 3)
	if len(parts) < 3 {
		return Key{}, fmt.Errorf("%w: %q has %d segment(s)", ErrMalformed, raw, len(parts))
	}
	group, rawIndex, field := parts[0], parts[1], parts[2]
	if group == "" || field == "" {
		return Key{}, fmt.Errorf("%w: %q has an empty segment", ErrMalformed, raw)
	}
	index, ok := parseIndex(rawIndex)
	if !ok {
		return Key{}, fmt.Errorf("%w: %q index %q is not a canonical non-negative integer", ErrMalformed, raw, rawIndex)
	}
	return Key{Group: group, Index: index, Field: field}, nil
}

// ParseID decodes an element id, accepting an optional "id_" prefix.
func ParseID(raw string) (Key, error) {
	return Parse(strings.TrimPrefix(raw, IDPrefix))
}

// String formats the key as the control name.
func (k Key) String() string {
	return k.Group + Separator + strconv.Itoa(k.Index) + Separator + k.Field
}

// ID formats the key as the control id.
func (k Key) ID() string {
	return IDPrefix + k.String()
}

// WithIndex returns a copy of k pointing at another block.
func (k Key) WithIndex(index int) Key {
	k.Index = index
	return k
}

// Valid reports whether the key can be formatted into a parseable name.
func (k Key) Valid() bool {
	return k.Group != "" && k.Field != "" && k.Index >= 0 && !strings.Contains(k.Group, Separator)
}

// ReplaceIndex substitutes "<group>-<from>" with "<group>-<to>" wherever it
// occurs as a whole path segment of s. "measurements-1" never matches inside
// "measurements-10" or "oldmeasurements-1".
func ReplaceIndex(s, group string, from, to int) string {
	if s == "" || group == "" || from == to {
		return s
	}
	needle := group + Separator + strconv.Itoa(from)
	replacement := group + Separator + strconv.Itoa(to)

	var b strings.Builder
	rest := s
	offset := 0
	for {
		pos := strings.Index(rest, needle)
		if pos < 0 {
			break
		}
		start := offset + pos
		end := start + len(needle)
		b.WriteString(rest[:pos])
		if segmentStart(s, start) && segmentEnd(s, end) {
			b.WriteString(replacement)
		} else {
			b.WriteString(needle)
		}
		rest = s[end:]
		offset = end
	}
	if offset == 0 {
		return s
	}
	b.WriteString(rest)
	return b.String()
}

func segmentStart(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	if strings.HasSuffix(s[:pos], IDPrefix) {
		return segmentStart(s, pos-len(IDPrefix))
	}
	return !isWordByte(s[pos-1])
}

func segmentEnd(s string, pos int) bool {
	if pos == len(s) {
		return true
	}
	next := s[pos]
	return next == Separator[0] || !isWordByte(next)
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	default:
		return false
	}
}

func parseIndex(raw string) (int, bool) {
	if raw == "" || (len(raw) > 1 && raw[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return index, true
}
