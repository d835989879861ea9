// Package template defines the renderer-agnostic template interface used by
// the formset page renderer. The pongo subpackage implements it with
// Django-syntax templates, the dialect formset markup is usually written in.
package template
