package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formset/pkg/formset"
)

// Default returns the measurement report layout.
func Default() formset.Layout {
	return formset.DefaultLayout()
}

type layoutFile struct {
	Formset *formset.Layout `json:"formset" yaml:"formset"`
}

// Load parses a layout document. Both a bare layout and one nested under a
// "formset" key are accepted; JSON is tried before YAML. Missing optional
// fields are filled from Default.
func Load(data []byte, source string) (formset.Layout, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return formset.Layout{}, fmt.Errorf("config: file %s is empty", source)
	}

	layout, err := decode(data)
	if err != nil {
		return formset.Layout{}, fmt.Errorf("config: parse %s: %w", source, err)
	}

	layout = normalise(layout)
	if layout.Prefix == "" {
		return formset.Layout{}, fmt.Errorf("config: %s: prefix is required", source)
	}
	layout = layout.WithDefaults()
	if err := layout.Validate(); err != nil {
		return formset.Layout{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return layout, nil
}

// LoadFile reads and parses path from fsys.
func LoadFile(fsys fs.FS, path string) (formset.Layout, error) {
	if fsys == nil {
		return formset.Layout{}, fmt.Errorf("config: filesystem is nil")
	}
	if !isConfigFile(path) {
		return formset.Layout{}, fmt.Errorf("config: %s is not a .json, .yaml or .yml file", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return formset.Layout{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load(data, path)
}

func decode(data []byte) (formset.Layout, error) {
	var wrapped layoutFile
	var bare formset.Layout

	if err := json.Unmarshal(data, &wrapped); err == nil {
		if wrapped.Formset != nil {
			return *wrapped.Formset, nil
		}
		if err := json.Unmarshal(data, &bare); err == nil {
			return bare, nil
		}
	}

	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return formset.Layout{}, err
	}
	if wrapped.Formset != nil {
		return *wrapped.Formset, nil
	}
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return formset.Layout{}, err
	}
	return bare, nil
}

func normalise(l formset.Layout) formset.Layout {
	for _, field := range []*string{
		&l.Prefix, &l.FormID, &l.FormClass, &l.ContainerID, &l.LastBlockID,
		&l.BlockClass, &l.UniqueField, &l.AddClass, &l.RemoveClass,
		&l.SuccessClass, &l.DangerClass, &l.FlagClass, &l.ValidatedClass,
		&l.AttemptedClass,
	} {
		*field = strings.TrimSpace(*field)
	}
	return l
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
