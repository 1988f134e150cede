package gradecell

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/parser"
)

func TestDefaultLayout_IsValid(t *testing.T) {
	l := DefaultLayout()
	require.NoError(t, l.Validate())

	assert.Equal(t, parser.HeaderSpec{
		Sheet:       "EVALUACIÓN",
		Anchor:      "RESULTADO APRENDIZAJE-CRITERIO DE EVALUACIÓN PRÁCTICOS",
		RowStart:    7,
		RowEnd:      8,
		ActivityRow: 9,
		MaxCols:     1024,
	}, l.HeaderSpec())
	assert.Equal(t, parser.StudentSpec{Sheet: "EVALUACIÓN", Column: "C", StartRow: 10, MaxRows: 5000}, l.StudentSpec())
	assert.Equal(t, parser.FallbackToFirst, l.TermPolicy())
}

func TestLoadLayout_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, "layout.yaml", `
sheet: NOTAS
students:
  column: b
strict_terms: true
`)

	l, err := LoadLayout(path)
	require.NoError(t, err)

	assert.Equal(t, "NOTAS", l.Sheet)
	assert.Equal(t, "B", l.StudentSpec().Column)
	assert.Equal(t, 10, l.Students.StartRow)
	assert.Equal(t, DefaultAnchor, l.Header.Anchor)
	assert.Equal(t, 9, l.Header.ActivityRow)
	assert.Equal(t, parser.StrictTerms, l.TermPolicy())
}

func TestLoadLayout_Errors(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read layout")

	_, err = LoadLayout(writeFile(t, "bad.yaml", "sheet: [unterminated"))
	assert.ErrorContains(t, err, "parse layout")

	_, err = LoadLayout(writeFile(t, "invalid.yaml", "header:\n  first_row: 8\n  last_row: 7\n"))
	assert.ErrorContains(t, err, "header rows 8-7 are invalid")
}

func TestLayoutValidate_ReportsEveryProblem(t *testing.T) {
	l := Layout{
		Header:   HeaderLayout{Anchor: "  ", FirstRow: 0, LastRow: 0},
		Students: StudentLayout{Column: "3"},
		Limits:   Limits{MaxRows: -1},
	}

	err := l.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"sheet is required",
		"header anchor is required",
		"header rows 0-0 are invalid",
		"activity row 0 is invalid",
		"student column",
		"student start row 0 is invalid",
		"limits cannot be negative",
	} {
		assert.ErrorContains(t, err, want)
	}
}
