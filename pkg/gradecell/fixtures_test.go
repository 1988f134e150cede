package gradecell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeGradebook saves a gradebook with two activity blocks, D7:F8 and
// I7:J8, and four students from row 10.
func writeGradebook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", DefaultSheet))
	set := func(cell string, v any) {
		require.NoError(t, f.SetCellValue(DefaultSheet, cell, v))
	}
	merge := func(from, to string) {
		require.NoError(t, f.MergeCell(DefaultSheet, from, to))
	}

	set("D7", "Resultado Aprendizaje-Criterio de Evaluación Prácticos RA1")
	merge("D7", "F8")
	set("G7", "OBSERVACIONES")
	merge("G7", "H8")
	set("I7", "RESULTADO APRENDIZAJE-CRITERIO DE EVALUACIÓN PRÁCTICOS RA2")
	merge("I7", "J8")

	set("D9", "1 h")
	set("E9", "1K")
	set("F9", "1 h")
	set("G9", "Actitud")
	set("I9", "Examen")
	set("J9", "Examen")

	set("C10", "Álvarez Pérez, Ana")
	set("C11", "Principe Álvarez, Mirko")
	set("C12", "González González, Marta")
	set("C13", "Mariana López")

	set("D11", 6)
	set("E11", "7")
	set("D12", 7.5)
	set("E12", 6.3)
	set("J12", 9)
	set("D13", 0)

	path := filepath.Join(t.TempDir(), "gradebook.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newLocator(t *testing.T, mutate ...func(*Options)) *Locator {
	t.Helper()
	opts := DefaultOptions()
	for _, m := range mutate {
		m(&opts)
	}
	l, err := New(opts)
	require.NoError(t, err)
	return l
}
