package parser

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
	"github.com/xuri/excelize/v2"
)

// StudentSpec describes the roster column.
type StudentSpec struct {
	// Sheet is the sheet holding the roster.
	Sheet string
	// Column is the column letters of the name column.
	Column string
	// StartRow is the first roster row.
	StartRow int
	// MaxRows bounds the rows scanned. Zero means no bound.
	MaxRows int
}

// FindStudentRow returns the first row at or after spec.StartRow whose name
// cell equals name once both are normalized. Partial matches never count.
func FindStudentRow(wb *models.Workbook, spec StudentSpec, name string, obs trace.Observer) (int, error) {
	obs = trace.OrNoop(obs)

	sheet, col, err := rosterColumn(wb, spec)
	if err != nil {
		return 0, err
	}

	target := Normalize(name)
	if target != "" {
		for row := spec.StartRow; row <= scanEnd(sheet, spec); row++ {
			value := sheet.Text(row, col)
			obs.Observe(trace.Event{
				Name:   trace.StudentRowScanned,
				Level:  trace.LevelTrace,
				Fields: map[string]any{"row": row, "value": value},
			})
			if value == "" || Normalize(value) != target {
				continue
			}
			obs.Observe(trace.Event{
				Name:   trace.StudentMatchFound,
				Level:  slog.LevelDebug,
				Fields: map[string]any{"student": name, "row": row},
			})
			return row, nil
		}
	}
	return 0, &LookupError{Op: OpStudent, Path: wb.Path, Sheet: spec.Sheet, Query: name, Err: ErrStudentNotFound}
}

// IndexStudents lists every non-empty name in the roster column in row order.
func IndexStudents(wb *models.Workbook, spec StudentSpec) ([]models.StudentRow, error) {
	sheet, col, err := rosterColumn(wb, spec)
	if err != nil {
		return nil, err
	}

	var rows []models.StudentRow
	for row := spec.StartRow; row <= scanEnd(sheet, spec); row++ {
		if Normalize(sheet.Text(row, col)) == "" {
			continue
		}
		rows = append(rows, models.StudentRow{Name: sheet.Text(row, col), Row: row})
	}
	return rows, nil
}

func rosterColumn(wb *models.Workbook, spec StudentSpec) (*models.Sheet, int, error) {
	sheet, ok := wb.Sheet(spec.Sheet)
	if !ok {
		return nil, 0, &LookupError{Op: OpStudent, Path: wb.Path, Sheet: spec.Sheet, Err: ErrSheetNotFound}
	}
	col, err := excelize.ColumnNameToNumber(spec.Column)
	if err != nil {
		return nil, 0, &LookupError{
			Op:    OpStudent,
			Path:  wb.Path,
			Sheet: spec.Sheet,
			Query: spec.Column,
			Err:   fmt.Errorf("%w: %w", ErrCellRead, err),
		}
	}
	return sheet, col, nil
}

func scanEnd(sheet *models.Sheet, spec StudentSpec) int {
	last := sheet.MaxRow
	if spec.MaxRows > 0 && last > spec.StartRow+spec.MaxRows-1 {
		last = spec.StartRow + spec.MaxRows - 1
	}
	return last
}
