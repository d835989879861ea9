// Package submission reads back what a formset page would submit and
// decodes it the way the server does: TOTAL_FORMS says how many indexed
// blocks to expect, and "<prefix>-<i>-<field>" values are mapped onto
// slice elements with go-playground/form.
package submission
