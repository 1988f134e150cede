package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/xuri/excelize/v2"
)

// ParseAddress parses a cell name such as "F12" or "$f$12".
func ParseAddress(ref string) (models.CellAddress, error) {
	clean := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ref), "$", ""))
	col, row, err := excelize.CellNameToCoordinates(clean)
	if err != nil {
		return models.CellAddress{}, &LookupError{Op: OpRead, Query: ref, Err: fmt.Errorf("%w: %w", ErrCellRead, err)}
	}
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return models.CellAddress{}, &LookupError{Op: OpRead, Query: ref, Err: fmt.Errorf("%w: %w", ErrCellRead, err)}
	}
	return models.CellAddress{Column: name, ColumnIndex: col, Row: row}, nil
}

// ReadValue returns the computed value stored at addr on sheetName. An
// address past the populated area is not an error; it reads as empty.
func ReadValue(wb *models.Workbook, sheetName string, addr models.CellAddress) (models.CellValue, error) {
	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		return models.CellValue{}, &LookupError{Op: OpRead, Path: wb.Path, Sheet: sheetName, Err: ErrSheetNotFound}
	}
	col, row, err := excelize.CellNameToCoordinates(addr.String())
	if err != nil {
		return models.CellValue{}, &LookupError{
			Op:    OpRead,
			Path:  wb.Path,
			Sheet: sheetName,
			Query: addr.String(),
			Err:   fmt.Errorf("%w: %w", ErrCellRead, err),
		}
	}
	return sheet.Cell(row, col).Value, nil
}
