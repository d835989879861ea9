package formset

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToClone is returned by Append when the container holds no
	// block to use as template.
	ErrNothingToClone = errors.New("nothing to clone")
	// ErrLimitReached is returned by Append when MAX_NUM_FORMS blocks exist.
	ErrLimitReached = errors.New("maximum number of blocks reached")
	// ErrNegativeIndex is returned by Reindex for an index below zero.
	ErrNegativeIndex = errors.New("formset: block index must not be negative")
)

// PreconditionError reports an editor operation refused before any
// mutation took place.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("formset: %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// LayoutError reports markup that does not match the configured Layout.
type LayoutError struct {
	What string
	Name string
}

func (e *LayoutError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("formset: layout: %s", e.What)
	}
	return fmt.Sprintf("formset: layout: %s %q", e.What, e.Name)
}
