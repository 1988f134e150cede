package parser

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
	"github.com/xuri/excelize/v2"
)

// HeaderSpec describes where the activity grid header lives.
type HeaderSpec struct {
	// Sheet is the sheet holding the grid.
	Sheet string
	// Anchor is the text the top-left cell of a header block must contain.
	Anchor string
	// RowStart and RowEnd are the exact rows a header block spans.
	RowStart int
	RowEnd   int
	// ActivityRow is the row holding activity labels under the block.
	ActivityRow int
	// MaxCols bounds the columns scanned per block. Zero means no bound.
	MaxCols int
}

func (s HeaderSpec) key() string {
	return fmt.Sprintf("%s|%s|%d|%d|%d|%d", s.Sheet, Normalize(s.Anchor), s.RowStart, s.RowEnd, s.ActivityRow, s.MaxCols)
}

// HeaderBlocks returns the merged ranges of sheet that span exactly the
// header rows and whose anchor text contains spec.Anchor, ordered by column.
func HeaderBlocks(sheet *models.Sheet, spec HeaderSpec, obs trace.Observer) []models.MergedRange {
	obs = trace.OrNoop(obs)
	anchor := Normalize(spec.Anchor)

	var blocks []models.MergedRange
	for _, m := range sheet.Merges {
		if !m.SpansRows(spec.RowStart, spec.RowEnd) {
			continue
		}
		if !strings.Contains(Normalize(m.AnchorValue), anchor) {
			obs.Observe(trace.Event{
				Name:   trace.HeaderBlockSkipped,
				Level:  trace.LevelTrace,
				Fields: map[string]any{"range": RangeRef(m), "anchor": m.AnchorValue},
			})
			continue
		}
		obs.Observe(trace.Event{
			Name:   trace.HeaderBlockMatched,
			Level:  slog.LevelDebug,
			Fields: map[string]any{"range": RangeRef(m)},
		})
		blocks = append(blocks, m)
	}
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].MinCol < blocks[j].MinCol })
	return blocks
}

// BuildMapping maps every activity label found under the header blocks of
// spec.Sheet to the header cells carrying it. Labels repeat once per term, so
// each label's cells come out in ascending column order, which is term order.
func BuildMapping(wb *models.Workbook, spec HeaderSpec, obs trace.Observer) (*models.ActivityMapping, error) {
	obs = trace.OrNoop(obs)

	sheet, ok := wb.Sheet(spec.Sheet)
	if !ok {
		return nil, &LookupError{Op: OpMapping, Path: wb.Path, Sheet: spec.Sheet, Err: ErrSheetNotFound}
	}

	blocks := HeaderBlocks(sheet, spec, obs)
	if len(blocks) == 0 {
		return nil, &LookupError{
			Op:    OpMapping,
			Path:  wb.Path,
			Sheet: spec.Sheet,
			Query: spec.Anchor,
			Err:   fmt.Errorf("%w: no merged range over rows %d-%d", ErrHeaderBlockNotFound, spec.RowStart, spec.RowEnd),
		}
	}

	mapping := models.NewActivityMapping(sheet.Name)
	for _, block := range blocks {
		last := block.MaxCol
		if spec.MaxCols > 0 && last-block.MinCol+1 > spec.MaxCols {
			last = block.MinCol + spec.MaxCols - 1
		}
		for col := block.MinCol; col <= last; col++ {
			label := strings.TrimSpace(sheet.Text(spec.ActivityRow, col))
			if label == "" {
				continue
			}
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return nil, &LookupError{Op: OpMapping, Path: wb.Path, Sheet: spec.Sheet, Err: fmt.Errorf("%w: %w", ErrCellRead, err)}
			}
			ref := models.HeaderCellRef{Column: name, ColumnIndex: col, Row: spec.ActivityRow}
			mapping.Add(Normalize(label), label, ref)
			obs.Observe(trace.Event{
				Name:   trace.ActivityFound,
				Level:  trace.LevelTrace,
				Fields: map[string]any{"label": label, "cell": ref.String()},
			})
		}
	}
	return mapping, nil
}
