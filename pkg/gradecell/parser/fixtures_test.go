package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/xuri/excelize/v2"
)

const (
	testSheet  = "EVALUACIÓN"
	testAnchor = "RESULTADO APRENDIZAJE-CRITERIO DE EVALUACIÓN"
)

func testHeaderSpec() HeaderSpec {
	return HeaderSpec{Sheet: testSheet, Anchor: testAnchor, RowStart: 7, RowEnd: 8, ActivityRow: 9, MaxCols: 1024}
}

func testStudentSpec() StudentSpec {
	return StudentSpec{Sheet: testSheet, Column: "C", StartRow: 10, MaxRows: 5000}
}

// writeGradebook saves a gradebook with one activity block D7:F8, an
// unrelated merged block G7:H8 on the same rows and an anchor-matching
// block A1:C2 on the wrong rows.
func writeGradebook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", testSheet))
	set := func(cell string, v any) {
		require.NoError(t, f.SetCellValue(testSheet, cell, v))
	}
	merge := func(from, to string) {
		require.NoError(t, f.MergeCell(testSheet, from, to))
	}

	set("A1", "RESULTADO APRENDIZAJE-CRITERIO DE EVALUACIÓN (resumen)")
	merge("A1", "C2")
	set("D7", "RESULTADO APRENDIZAJE-CRITERIO DE EVALUACIÓN PRÁCTICOS")
	merge("D7", "F8")
	set("G7", "OBSERVACIONES")
	merge("G7", "H8")

	set("D9", "1 h")
	set("E9", "1K")
	set("F9", "1 h")
	set("G9", "Actitud")

	set("C10", "Álvarez Pérez, Ana")
	set("C11", "Principe Álvarez, Mirko")
	set("C12", "González González, Marta")
	set("C13", "Mariana López")

	set("D11", 6)
	set("E11", "7")
	set("D12", 7.5)
	set("E12", 6.3)
	set("D13", 0)

	_, err := f.NewSheet("Notas")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gradebook.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// memSheet builds an in-memory sheet from a cell-name → value map.
func memSheet(t *testing.T, name string, cells map[string]any, merges ...models.MergedRange) *models.Sheet {
	t.Helper()
	sheet := models.NewSheet(name)
	for ref, v := range cells {
		col, row, err := excelize.CellNameToCoordinates(ref)
		require.NoError(t, err)
		switch val := v.(type) {
		case string:
			sheet.Set(row, col, models.TextValue(val))
		case float64:
			sheet.Set(row, col, models.NumberValue(val))
		case int:
			sheet.Set(row, col, models.NumberValue(float64(val)))
		default:
			t.Fatalf("unsupported fixture value %T", v)
		}
	}
	for _, m := range merges {
		m.AnchorValue = sheet.Text(m.MinRow, m.MinCol)
		sheet.Merges = append(sheet.Merges, m)
	}
	return sheet
}

func memWorkbook(sheets ...*models.Sheet) *models.Workbook {
	wb := &models.Workbook{Path: "/tmp/mem.xlsx", BookName: "mem.xlsx", Sheets: make(map[string]*models.Sheet)}
	for _, s := range sheets {
		wb.Sheets[s.Name] = s
		wb.SheetOrder = append(wb.SheetOrder, s.Name)
	}
	return wb
}

func mergedRange(t *testing.T, ref string) models.MergedRange {
	t.Helper()
	m, err := parseRange(ref)
	require.NoError(t, err)
	return m
}
