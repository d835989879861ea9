// Package dom implements formset.Tree over an HTML document parsed with
// golang.org/x/net/html. Markup is sanitised with a bluemonday policy that
// keeps form structure and drops scripts and inline handlers, then looked up
// with htmlquery XPath expressions.
package dom
