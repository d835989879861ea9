package render

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formset/pkg/formset"
	"github.com/goliatone/go-formset/pkg/key"
	rendertemplate "github.com/goliatone/go-formset/pkg/render/template"
	"github.com/goliatone/go-formset/pkg/render/template/pongo"
)

const formsetTemplate = "formset.tpl"

// Option configures the page renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle; it must contain
// formset.tpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Page is the input of a formset page render.
type Page struct {
	Layout formset.Layout
	Fields []FieldSpec
	// Rows pre-populates blocks by field name. At least one block is always
	// rendered so the editor has something to clone.
	Rows         []map[string]string
	InitialForms int
	MinNumForms  int
	MaxNumForms  int
	Hidden       []HiddenField
	Action       string
	SubmitLabel  string
}

// Cell is one rendered control.
type Cell struct {
	Name     string
	Label    string
	Type     string
	Widget   string
	Pattern  string
	Class    string
	Value    string
	Required bool
}

// Renderer turns a Page into formset markup.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "formset"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders page.
func (r *Renderer) Render(ctx context.Context, page Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("render: template renderer is nil")
	}

	layout := page.Layout.WithDefaults()
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	fields := page.Fields
	if len(fields) == 0 {
		fields = MeasurementFields
	}

	rows := buildRows(layout, fields, page.Rows)
	hidden := mergeHidden(
		ManagementFields(layout, len(rows), page.InitialForms, page.MinNumForms, page.MaxNumForms),
		page.Hidden...,
	)

	result, err := r.templates.RenderTemplate(formsetTemplate, map[string]any{
		"page":   page,
		"layout": layout,
		"hidden": hidden,
		"rows":   rows,
	})
	if err != nil {
		return nil, fmt.Errorf("render: render template: %w", err)
	}
	return []byte(result), nil
}

func buildRows(layout formset.Layout, fields []FieldSpec, values []map[string]string) [][]Cell {
	count := len(values)
	if count == 0 {
		count = 1
	}
	rows := make([][]Cell, count)
	for i := range rows {
		var rowValues map[string]string
		if i < len(values) {
			rowValues = values[i]
		}
		cells := make([]Cell, 0, len(fields))
		for _, field := range fields {
			cells = append(cells, buildCell(layout, i, field, rowValues[field.Name]))
		}
		rows[i] = cells
	}
	return rows
}

func buildCell(layout formset.Layout, index int, field FieldSpec, value string) Cell {
	kind := field.Type
	if kind == "" {
		kind = "text"
	}
	class := strings.TrimSpace("form-control " + field.Class)
	return Cell{
		Name:     key.New(layout.Prefix, index, field.Name).String(),
		Label:    field.Label,
		Type:     kind,
		Widget:   field.Widget,
		Pattern:  field.Pattern,
		Class:    class,
		Value:    value,
		Required: field.Required,
	}
}
