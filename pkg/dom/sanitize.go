package dom

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// FormPolicy returns the sanitising policy applied by Parse. It allows the
// elements and attributes a formset page is built from and nothing that can
// execute code.
func FormPolicy() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"form", "fieldset", "legend", "div", "span", "p", "section",
			"label", "input", "select", "option", "optgroup", "textarea", "button",
			"table", "thead", "tbody", "tr", "th", "td", "small", "strong", "em",
			"h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "br", "hr",
		)
		policy.AllowAttrs("id", "class", "title", "role", "hidden").Globally()
		policy.AllowAttrs(
			"aria-describedby", "aria-labelledby", "aria-controls", "aria-invalid",
			"aria-label", "aria-hidden", "aria-live",
		).Globally()
		policy.AllowDataAttributes()
		policy.AllowNoAttrs().OnElements(
			"form", "fieldset", "legend", "label", "select", "option", "optgroup",
			"textarea", "button",
		)

		policy.AllowAttrs("method", "action", "novalidate", "autocomplete", "enctype").OnElements("form")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs(
			"name", "type", "value", "required", "pattern", "min", "max", "step",
			"minlength", "maxlength", "placeholder", "checked", "disabled", "readonly",
			"autocomplete", "autofocus", "inputmode", "size",
		).OnElements("input")
		policy.AllowAttrs("name", "required", "disabled", "multiple", "size").OnElements("select")
		policy.AllowAttrs("value", "selected", "disabled", "label").OnElements("option")
		policy.AllowAttrs("label", "disabled").OnElements("optgroup")
		policy.AllowAttrs(
			"name", "required", "disabled", "readonly", "rows", "cols",
			"minlength", "maxlength", "placeholder",
		).OnElements("textarea")
		policy.AllowAttrs("name", "type", "value", "disabled").OnElements("button")
		policy.AllowAttrs("colspan", "rowspan", "scope").OnElements("th", "td")

		formPolicy = policy
	})
	return formPolicy
}
