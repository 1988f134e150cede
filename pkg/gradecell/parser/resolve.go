package parser

import (
	"fmt"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
)

// TermPolicy decides what ResolveCell does with a term index the activity
// has no header cell for.
type TermPolicy int

const (
	// FallbackToFirst resolves an out-of-range term to the activity's first
	// header cell. A term that was never recorded therefore points at term 0.
	FallbackToFirst TermPolicy = iota
	// StrictTerms fails with ErrTermIndexOutOfRange instead.
	StrictTerms
)

// TermCount returns how many terms the activity has in mapping, or 0 when
// the activity is absent.
func TermCount(mapping *models.ActivityMapping, activity string) int {
	a, ok := mapping.Lookup(Normalize(activity))
	if !ok {
		return 0
	}
	return len(a.Cells)
}

// ResolveCell pairs the header column of activity's term with the student's
// row. The header row itself is discarded.
func ResolveCell(mapping *models.ActivityMapping, row int, activity string, term int, policy TermPolicy, obs trace.Observer) (models.CellAddress, error) {
	obs = trace.OrNoop(obs)

	a, ok := mapping.Lookup(Normalize(activity))
	if !ok {
		return models.CellAddress{}, &LookupError{Op: OpResolve, Sheet: mapping.Sheet, Query: activity, Err: ErrActivityNotFound}
	}
	if row < 1 {
		return models.CellAddress{}, &LookupError{
			Op:    OpResolve,
			Sheet: mapping.Sheet,
			Query: activity,
			Err:   fmt.Errorf("%w: row %d", ErrCellRead, row),
		}
	}

	idx := term
	if term < 0 || term >= len(a.Cells) {
		if policy == StrictTerms {
			return models.CellAddress{}, &LookupError{
				Op:    OpResolve,
				Sheet: mapping.Sheet,
				Query: activity,
				Err:   fmt.Errorf("%w: term %d, activity has %d", ErrTermIndexOutOfRange, term, len(a.Cells)),
			}
		}
		obs.Observe(trace.Event{
			Name:   trace.TermIndexFallback,
			Level:  trace.LevelTrace,
			Fields: map[string]any{"activity": a.Label, "term": term, "terms": len(a.Cells)},
		})
		idx = 0
	}

	ref := a.Cells[idx]
	return models.CellAddress{Column: ref.Column, ColumnIndex: ref.ColumnIndex, Row: row}, nil
}
