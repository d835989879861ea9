package formset

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formset/pkg/key"
)

// Indexer rewrites the composite identifiers of a block.
type Indexer struct {
	group  string
	logger *slog.Logger
}

// ReindexReport summarises a Reindex call.
type ReindexReport struct {
	From    int
	To      int
	Renamed int
	// Skipped lists names that could not be decoded; they are left untouched.
	Skipped []string
}

// NewIndexer returns an indexer for the given group prefix.
func NewIndexer(group string, options ...Option) *Indexer {
	cfg := newConfig(options...)
	return &Indexer{group: group, logger: cfg.logger}
}

// Reindex renames every control of block to "<group>-<index>-<field>" with
// id "id_<group>-<index>-<field>", and rewrites id references (label for,
// aria-*) from the block's current index to index. Values are not touched.
// Reindexing a block to the index it already has is a no-op.
func (ix *Indexer) Reindex(block Block, index int) (ReindexReport, error) {
	if index < 0 {
		return ReindexReport{}, fmt.Errorf("%w: %d", ErrNegativeIndex, index)
	}
	report := ReindexReport{To: index, From: -1}
	if block == nil {
		return report, nil
	}

	elements := block.Elements()
	from, ok := ix.CurrentIndex(block)
	if !ok {
		ix.logSkipped(elements)
		report.Skipped = ix.collectSkipped(elements)
		return report, nil
	}
	report.From = from
	if from == index {
		return report, nil
	}

	for _, el := range elements {
		if name, named := el.Attr(attrName); named && isControl(el) {
			k, err := key.Parse(name)
			if err != nil || k.Group != ix.group {
				report.Skipped = append(report.Skipped, name)
				ix.logger.Warn("formset: skipping control with malformed composite name",
					"name", name, "group", ix.group, "error", err)
				continue
			}
			k = k.WithIndex(index)
			el.SetAttr(attrName, k.String())
			el.SetAttr(attrID, k.ID())
			report.Renamed++
		} else if id, hasID := el.Attr(attrID); hasID {
			el.SetAttr(attrID, key.ReplaceIndex(id, ix.group, from, index))
		}
		for _, attr := range referenceAttrs {
			if ref, ok := el.Attr(attr); ok {
				el.SetAttr(attr, key.ReplaceIndex(ref, ix.group, from, index))
			}
		}
	}
	return report, nil
}

// CurrentIndex reads a block's index from its first well-formed control name.
func (ix *Indexer) CurrentIndex(block Block) (int, bool) {
	if block == nil {
		return 0, false
	}
	for _, el := range block.Elements() {
		if !isControl(el) {
			continue
		}
		name, ok := el.Attr(attrName)
		if !ok {
			continue
		}
		if k, err := key.Parse(name); err == nil && k.Group == ix.group {
			return k.Index, true
		}
	}
	return 0, false
}

func (ix *Indexer) collectSkipped(elements []Element) []string {
	var out []string
	for _, el := range elements {
		if !isControl(el) {
			continue
		}
		if name, ok := el.Attr(attrName); ok {
			out = append(out, name)
		}
	}
	return out
}

func (ix *Indexer) logSkipped(elements []Element) {
	for _, name := range ix.collectSkipped(elements) {
		ix.logger.Warn("formset: skipping control with malformed composite name",
			"name", name, "group", ix.group)
	}
}
