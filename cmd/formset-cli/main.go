package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	formset "github.com/goliatone/go-formset"
	"github.com/goliatone/go-formset/internal/prompt"
	"github.com/goliatone/go-formset/pkg/config"
	"github.com/goliatone/go-formset/pkg/render"
	"github.com/goliatone/go-formset/pkg/submission"
)

func main() {
	input := flag.String("input", "", "formset page to edit (renders the measurement page if empty)")
	configPath := flag.String("config", "", "layout config file (.json, .yaml or .yml)")
	rows := flag.Int("rows", 1, "initial measurement rows when rendering a new page")
	templates := flag.String("templates", "", "directory overriding the embedded templates")
	output := flag.String("output", "", "output file for the edited page (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	layout := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(os.DirFS(filepath.Dir(*configPath)), filepath.Base(*configPath))
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		layout = loaded
	}

	markup, err := readPage(ctx, *input, layout, *rows, *templates)
	if err != nil {
		log.Fatalf("Failed to prepare page: %v", err)
	}

	fset, doc, err := formset.Load(bytes.NewReader(markup), layout)
	if err != nil {
		log.Fatalf("Failed to load formset: %v", err)
	}

	outcome, err := prompt.NewSession(fset, doc, prompt.NewSurveyDriver()).Run(ctx)
	if err != nil && !errors.Is(err, prompt.ErrAborted) {
		log.Fatalf("Session failed: %v", err)
	}

	if outcome.Submitted {
		values := submission.Collect(doc)
		total, err := submission.Count(values, layout.Prefix)
		if err != nil {
			log.Fatalf("Submission payload is inconsistent: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Submitted %d measurements: %s\n", total, values.Encode())
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(doc.String()), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Page written to %s\n", *output)
	} else {
		fmt.Println(doc.String())
	}
}

func readPage(ctx context.Context, input string, layout formset.Layout, rows int, templates string) ([]byte, error) {
	if input != "" {
		return os.ReadFile(input)
	}
	if rows < 1 {
		rows = 1
	}
	return formset.RenderHTML(ctx, formset.Page{
		Layout: layout,
		Rows:   make([]map[string]string, rows),
	}, render.WithTemplatesDir(templates))
}
