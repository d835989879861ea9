package formset

import "strings"

// HasClass reports whether el's class list contains class.
func HasClass(el Element, class string) bool {
	if el == nil || class == "" {
		return false
	}
	raw, _ := el.Attr(attrClass)
	for _, name := range strings.Fields(raw) {
		if name == class {
			return true
		}
	}
	return false
}

// AddClass appends class to el's class list when missing.
func AddClass(el Element, class string) {
	if el == nil || class == "" || HasClass(el, class) {
		return
	}
	raw, _ := el.Attr(attrClass)
	el.SetAttr(attrClass, strings.TrimSpace(raw+" "+class))
}

// RemoveClass drops class from el's class list. An emptied list removes the
// attribute.
func RemoveClass(el Element, class string) {
	if el == nil || class == "" || !HasClass(el, class) {
		return
	}
	raw, _ := el.Attr(attrClass)
	names := strings.Fields(raw)
	kept := names[:0]
	for _, name := range names {
		if name != class {
			kept = append(kept, name)
		}
	}
	if len(kept) == 0 {
		el.RemoveAttr(attrClass)
		return
	}
	el.SetAttr(attrClass, strings.Join(kept, " "))
}

// ReplaceClass swaps from for to, keeping the class position.
func ReplaceClass(el Element, from, to string) {
	if el == nil || from == "" || !HasClass(el, from) {
		return
	}
	if to == "" {
		RemoveClass(el, from)
		return
	}
	raw, _ := el.Attr(attrClass)
	names := strings.Fields(raw)
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == from {
			name = to
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	el.SetAttr(attrClass, strings.Join(out, " "))
}
