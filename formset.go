package formset

import (
	"context"
	"io"
	"io/fs"

	"github.com/goliatone/go-formset/pkg/dom"
	pkgformset "github.com/goliatone/go-formset/pkg/formset"
	"github.com/goliatone/go-formset/pkg/render"
)

// Layout names the markup hooks of a formset page.
type Layout = pkgformset.Layout

// Page is the input of a formset page render.
type Page = render.Page

// Event is a UI event dispatched to a Formset.
type Event = pkgformset.Event

// DefaultLayout mirrors the measurement report page.
func DefaultLayout() Layout {
	return pkgformset.DefaultLayout()
}

// Load parses formset markup and wires an editor, guard and dispatcher over
// it. The document is returned so callers can build event paths and render
// the edited markup.
func Load(r io.Reader, layout Layout, options ...pkgformset.Option) (*pkgformset.Formset, *dom.Document, error) {
	layout = layout.WithDefaults()
	doc, err := dom.Parse(r, layout)
	if err != nil {
		return nil, nil, err
	}
	fset, err := pkgformset.New(doc, layout, options...)
	if err != nil {
		return nil, nil, err
	}
	return fset, doc, nil
}

// RenderHTML renders a formset page with the embedded templates.
func RenderHTML(ctx context.Context, page Page, options ...render.Option) ([]byte, error) {
	renderer, err := render.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, page)
}

// EmbeddedTemplates exposes the built-in page templates so callers can
// reuse or extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
