package formset

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation is a failed native constraint on one control.
type Violation struct {
	Name       string
	Constraint string
	Value      string
}

// Validity evaluates the constraint attributes browsers check natively.
type Validity interface {
	Check(controls []Element) []Violation
}

// NativeValidity checks required, pattern, type (number, email, url),
// min/max and minlength/maxlength. Hidden, button-like and disabled controls
// are exempt, as are optional empty values.
type NativeValidity struct {
	validate *validator.Validate
	patterns map[string]*regexp.Regexp
}

// NewNativeValidity builds the default constraint checker.
func NewNativeValidity() *NativeValidity {
	return &NativeValidity{
		validate: validator.New(),
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Check returns every violation found, in control order.
func (v *NativeValidity) Check(controls []Element) []Violation {
	var out []Violation
	for _, el := range controls {
		out = append(out, v.checkControl(el)...)
	}
	return out
}

func (v *NativeValidity) checkControl(el Element) []Violation {
	if el == nil || !isControl(el) || hasAttr(el, attrDisabled) {
		return nil
	}
	kind := inputType(el)
	switch kind {
	case "hidden", "submit", "button", "reset", "image":
		return nil
	}

	name, _ := el.Attr(attrName)
	value := el.Value()
	violation := func(constraint string) []Violation {
		return []Violation{{Name: name, Constraint: constraint, Value: value}}
	}

	if kind == "checkbox" || kind == "radio" {
		if hasAttr(el, "required") && !hasAttr(el, attrChecked) {
			return violation("required")
		}
		return nil
	}

	if hasAttr(el, "required") && v.validate.Var(value, "required") != nil {
		return violation("required")
	}
	if value == "" {
		return nil
	}

	switch kind {
	case "number":
		if constraint := v.outOfBounds(el, value); constraint != "" {
			return violation(constraint)
		}
	case "email":
		if v.validate.Var(value, "email") != nil {
			return violation("type")
		}
	case "url":
		if v.validate.Var(value, "url") != nil {
			return violation("type")
		}
	}

	if pattern, ok := el.Attr("pattern"); ok && pattern != "" {
		if re := v.compile(pattern); re != nil && !re.MatchString(value) {
			return violation("pattern")
		}
	}
	if n, ok := lengthAttr(el, "minlength"); ok && v.validate.Var(value, "min="+strconv.Itoa(n)) != nil {
		return violation("minlength")
	}
	if n, ok := lengthAttr(el, "maxlength"); ok && v.validate.Var(value, "max="+strconv.Itoa(n)) != nil {
		return violation("maxlength")
	}
	return nil
}

func (v *NativeValidity) outOfBounds(el Element, value string) string {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(value, "xX") {
		return "type"
	}
	if min, ok := numericAttr(el, "min"); ok && v.validate.Var(f, "gte="+formatFloat(min)) != nil {
		return "min"
	}
	if max, ok := numericAttr(el, "max"); ok && v.validate.Var(f, "lte="+formatFloat(max)) != nil {
		return "max"
	}
	return ""
}

// compile anchors pattern the way the HTML pattern attribute is matched.
// Invalid patterns are ignored, like browsers do.
func (v *NativeValidity) compile(pattern string) *regexp.Regexp {
	if re, ok := v.patterns[pattern]; ok {
		return re
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		re = nil
	}
	v.patterns[pattern] = re
	return re
}

func numericAttr(el Element, name string) (float64, bool) {
	raw, ok := el.Attr(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func lengthAttr(el Element, name string) (int, bool) {
	raw, ok := el.Attr(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
