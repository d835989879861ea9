package formset

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formset/pkg/key"
)

// Layout names the markup hooks of a formset page: where the container and
// the last block live, which field must be unique across blocks, and the
// classes used for click targets and validation state.
type Layout struct {
	Prefix      string `json:"prefix" yaml:"prefix"`
	FormID      string `json:"formID,omitempty" yaml:"formID,omitempty"`
	FormClass   string `json:"formClass,omitempty" yaml:"formClass,omitempty"`
	ContainerID string `json:"containerID" yaml:"containerID"`
	LastBlockID string `json:"lastBlockID" yaml:"lastBlockID"`
	BlockClass  string `json:"blockClass,omitempty" yaml:"blockClass,omitempty"`
	UniqueField string `json:"uniqueField,omitempty" yaml:"uniqueField,omitempty"`

	AddClass     string `json:"addClass,omitempty" yaml:"addClass,omitempty"`
	RemoveClass  string `json:"removeClass,omitempty" yaml:"removeClass,omitempty"`
	SuccessClass string `json:"successClass,omitempty" yaml:"successClass,omitempty"`
	DangerClass  string `json:"dangerClass,omitempty" yaml:"dangerClass,omitempty"`

	FlagClass      string `json:"flagClass,omitempty" yaml:"flagClass,omitempty"`
	ValidatedClass string `json:"validatedClass,omitempty" yaml:"validatedClass,omitempty"`
	AttemptedClass string `json:"attemptedClass,omitempty" yaml:"attemptedClass,omitempty"`
}

// DefaultLayout mirrors the measurement report page.
func DefaultLayout() Layout {
	return Layout{
		Prefix:         "measurements",
		FormClass:      "needs-validation",
		ContainerID:    "measurement-formset-unique",
		LastBlockID:    "measurement-form-last",
		BlockClass:     "measurement-form",
		UniqueField:    "pallet_number",
		AddClass:       "add-form-row",
		RemoveClass:    "remove-form-row",
		SuccessClass:   "btn-success",
		DangerClass:    "btn-danger",
		FlagClass:      "is-duplicate",
		ValidatedClass: "was-validated",
		AttemptedClass: "was-attempted",
	}
}

// WithDefaults fills empty fields from DefaultLayout. The prefix is never
// defaulted once any other field is set, so a half-written config fails
// Validate instead of silently editing the wrong group.
func (l Layout) WithDefaults() Layout {
	def := DefaultLayout()
	if l == (Layout{}) {
		return def
	}
	fill := func(dst *string, fallback string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = fallback
		}
	}
	fill(&l.FormClass, def.FormClass)
	fill(&l.ContainerID, def.ContainerID)
	fill(&l.LastBlockID, def.LastBlockID)
	fill(&l.AddClass, def.AddClass)
	fill(&l.RemoveClass, def.RemoveClass)
	fill(&l.SuccessClass, def.SuccessClass)
	fill(&l.DangerClass, def.DangerClass)
	fill(&l.FlagClass, def.FlagClass)
	fill(&l.ValidatedClass, def.ValidatedClass)
	fill(&l.AttemptedClass, def.AttemptedClass)
	return l
}

// Validate reports layout fields the editor cannot work without.
func (l Layout) Validate() error {
	var errs []error
	prefix := strings.TrimSpace(l.Prefix)
	switch {
	case prefix == "":
		errs = append(errs, errors.New("formset: layout prefix is required"))
	case strings.Contains(prefix, key.Separator):
		errs = append(errs, errors.New("formset: layout prefix must not contain a dash"))
	}
	if strings.TrimSpace(l.ContainerID) == "" {
		errs = append(errs, errors.New("formset: layout containerID is required"))
	}
	if strings.TrimSpace(l.LastBlockID) == "" {
		errs = append(errs, errors.New("formset: layout lastBlockID is required"))
	}
	return errors.Join(errs...)
}

// TotalFormsName is the counter field name.
func (l Layout) TotalFormsName() string { return l.management("TOTAL_FORMS") }

// InitialFormsName is the number of blocks bound to existing records.
func (l Layout) InitialFormsName() string { return l.management("INITIAL_FORMS") }

// MinNumFormsName holds the lower bound on blocks, when present.
func (l Layout) MinNumFormsName() string { return l.management("MIN_NUM_FORMS") }

// MaxNumFormsName holds the upper bound on blocks, when present.
func (l Layout) MaxNumFormsName() string { return l.management("MAX_NUM_FORMS") }

func (l Layout) management(suffix string) string {
	return l.Prefix + key.Separator + suffix
}
