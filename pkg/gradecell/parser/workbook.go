package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook parses every sheet of the spreadsheet at path into the typed
// model. Cell values are the cached computed values, never formula text.
func ReadWorkbook(path string) (*models.Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	wb := &models.Workbook{
		Path:     path,
		BookName: filepath.Base(path),
		ModTime:  info.ModTime(),
		LoadedAt: time.Now(),
		Sheets:   make(map[string]*models.Sheet),
	}
	for _, name := range f.GetSheetList() {
		sheet, err := ReadSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		wb.Sheets[name] = sheet
		wb.SheetOrder = append(wb.SheetOrder, name)
	}
	return wb, nil
}

// ReadSheet extracts the populated cells and merged ranges of one sheet.
func ReadSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := models.NewSheet(sheetName)
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cellName, err)
			}
			sheet.Set(rowNum, colIdx+1, parseValue(raw, cellType))
		}
	}

	merges, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, fmt.Errorf("merged cells: %w", err)
	}
	for _, mc := range merges {
		rng, err := parseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("merged range %s:%s: %w", mc.GetStartAxis(), mc.GetEndAxis(), err)
		}
		rng.AnchorValue = sheet.Text(rng.MinRow, rng.MinCol)
		if rng.AnchorValue == "" {
			rng.AnchorValue = mc.GetCellValue()
		}
		sheet.Merges = append(sheet.Merges, rng)
	}
	sort.Slice(sheet.Merges, func(i, j int) bool {
		a, b := sheet.Merges[i], sheet.Merges[j]
		if a.MinRow != b.MinRow {
			return a.MinRow < b.MinRow
		}
		return a.MinCol < b.MinCol
	})

	return sheet, nil
}

// parseValue classifies a raw cell value. String-typed cells stay text even
// when they look numeric; everything else is a number when it parses as one.
func parseValue(s string, cellType excelize.CellType) models.CellValue {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeBool, excelize.CellTypeError,
		excelize.CellTypeDate:
		return models.TextValue(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.NumberValue(f)
	}
	return models.TextValue(s)
}
