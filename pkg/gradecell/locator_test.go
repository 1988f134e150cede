package gradecell

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
	"github.com/xuri/excelize/v2"
)

func TestNew_RejectsInvalidLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.Layout.Students.StartRow = 0

	_, err := New(opts)
	assert.ErrorContains(t, err, "invalid layout")
}

func TestLocator_Mapping(t *testing.T) {
	path := writeGradebook(t)
	l := newLocator(t)

	mapping, err := l.Mapping(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"1 h", "1K", "Examen"}, mapping.Labels())
	exam, ok := mapping.Lookup("examen")
	require.True(t, ok)
	require.Len(t, exam.Cells, 2)
	assert.Equal(t, "I9", exam.Cells[0].String())
	assert.Equal(t, "J9", exam.Cells[1].String())
	_, ok = mapping.Lookup("actitud")
	assert.False(t, ok)

	again, err := l.Mapping(path)
	require.NoError(t, err)
	assert.Same(t, mapping, again)
}

func TestLocator_Locate(t *testing.T) {
	path := writeGradebook(t)
	rec := &trace.Recorder{}
	l := newLocator(t, func(o *Options) { o.Observer = rec })

	res, err := l.Locate(path, models.GradeCellQuery{Student: "gonzalez gonzalez, marta", Activity: "1 h", Term: 1})
	require.NoError(t, err)
	assert.Equal(t, 12, res.Row)
	assert.Equal(t, "F12", res.Address.String())
	assert.True(t, res.Value.IsEmpty())
	assert.False(t, res.TermFallback)

	res, err = l.Locate(path, models.GradeCellQuery{Student: "González González, Marta", Activity: "1 H", Term: 5})
	require.NoError(t, err)
	assert.Equal(t, "D12", res.Address.String())
	assert.Equal(t, models.NumberValue(7.5), res.Value)
	assert.True(t, res.TermFallback)
	assert.Equal(t, 1, rec.Count(trace.TermIndexFallback))

	res, err = l.Locate(path, models.GradeCellQuery{Student: "Gonzalez Gonzalez, Marta", Activity: "examen", Term: 1})
	require.NoError(t, err)
	assert.Equal(t, "J12", res.Address.String())
	assert.Equal(t, models.NumberValue(9), res.Value)

	assert.Equal(t, 1, rec.Count(trace.WorkbookLoaded))
	assert.Equal(t, 2, rec.Count(trace.WorkbookCacheHit))
}

func TestLocator_LocateZeroIsNotEmpty(t *testing.T) {
	path := writeGradebook(t)
	l := newLocator(t)

	res, err := l.Locate(path, models.GradeCellQuery{Student: "Mariana López", Activity: "1 h"})
	require.NoError(t, err)
	assert.Equal(t, "D13", res.Address.String())
	assert.False(t, res.Value.IsEmpty())
	assert.Equal(t, models.NumberValue(0), res.Value)
}

func TestLocator_LocateErrors(t *testing.T) {
	path := writeGradebook(t)
	l := newLocator(t)

	cases := []struct {
		name  string
		query models.GradeCellQuery
		want  error
	}{
		{"unknown activity", models.GradeCellQuery{Student: "Mariana López", Activity: "2B"}, ErrActivityNotFound},
		{"unknown student", models.GradeCellQuery{Student: "Mariana", Activity: "1 h"}, ErrStudentNotFound},
		{"empty student", models.GradeCellQuery{Student: "  ", Activity: "1 h"}, ErrStudentNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Locate(path, tc.query)
			require.ErrorIs(t, err, tc.want)

			var le *LookupError
			require.True(t, errors.As(err, &le))
			assert.NotEmpty(t, le.Path)
			assert.Equal(t, DefaultSheet, le.Sheet)
		})
	}
}

func TestLocator_LocateStrictTerms(t *testing.T) {
	path := writeGradebook(t)
	l := newLocator(t, func(o *Options) { o.Layout.StrictTerms = true })

	_, err := l.Locate(path, models.GradeCellQuery{Student: "Mariana López", Activity: "1K", Term: 1})
	assert.ErrorIs(t, err, ErrTermIndexOutOfRange)

	res, err := l.Locate(path, models.GradeCellQuery{Student: "Mariana López", Activity: "1K", Term: 0})
	require.NoError(t, err)
	assert.Equal(t, "E13", res.Address.String())
}

func TestLocator_LoadErrors(t *testing.T) {
	l := newLocator(t)

	_, err := l.Locate(filepath.Join(t.TempDir(), "missing.xlsx"), models.GradeCellQuery{Student: "x", Activity: "y"})
	assert.ErrorIs(t, err, ErrFileLoad)

	_, err = l.Locate(writeFile(t, "notes.xlsx", "not a zip"), models.GradeCellQuery{Student: "x", Activity: "y"})
	assert.ErrorIs(t, err, ErrFileLoad)
}

func TestLocator_WrongSheetLayout(t *testing.T) {
	path := writeGradebook(t)
	l := newLocator(t, func(o *Options) { o.Layout.Sheet = "NOTAS" })

	_, err := l.Mapping(path)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestLocator_HeaderOnOtherRows(t *testing.T) {
	path := writeGradebook(t)
	l := newLocator(t, func(o *Options) {
		o.Layout.Header.FirstRow = 6
		o.Layout.Header.LastRow = 8
	})

	_, err := l.Mapping(path)
	assert.ErrorIs(t, err, ErrHeaderBlockNotFound)
}

func TestLocator_StudentsAndReadValue(t *testing.T) {
	path := writeGradebook(t)
	l := newLocator(t)

	wb, err := l.Load(path)
	require.NoError(t, err)

	students, err := l.Students(wb)
	require.NoError(t, err)
	require.Len(t, students, 4)
	assert.Equal(t, models.StudentRow{Name: "Álvarez Pérez, Ana", Row: 10}, students[0])
	assert.Equal(t, models.StudentRow{Name: "Mariana López", Row: 13}, students[3])

	v, err := l.ReadValue(wb, models.CellAddress{Column: "E", ColumnIndex: 5, Row: 11})
	require.NoError(t, err)
	assert.Equal(t, models.TextValue("7"), v)
}

func TestLocator_IgnoresTheoryBlock(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", DefaultSheet))
	for cell, v := range map[string]any{
		"D7":  "RESULTADO APRENDIZAJE-CRITERIO DE EVALUACIÓN TEÓRICOS",
		"F7":  "RESULTADO APRENDIZAJE-CRITERIO DE EVALUACIÓN PRÁCTICOS",
		"D9":  "TAREA 1",
		"E9":  "TAREA 2",
		"F9":  "TAREA 1",
		"G9":  "TAREA 2",
		"C10": "Ruiz, Pablo",
	} {
		require.NoError(t, f.SetCellValue(DefaultSheet, cell, v))
	}
	require.NoError(t, f.MergeCell(DefaultSheet, "D7", "E8"))
	require.NoError(t, f.MergeCell(DefaultSheet, "F7", "G8"))
	path := filepath.Join(t.TempDir(), "teoria.xlsx")
	require.NoError(t, f.SaveAs(path))

	l := newLocator(t)
	mapping, err := l.Mapping(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"TAREA 1", "TAREA 2"}, mapping.Labels())
	for label, want := range map[string]string{"tarea 1": "F9", "tarea 2": "G9"} {
		a, ok := mapping.Lookup(label)
		require.True(t, ok, label)
		require.Len(t, a.Cells, 1, label)
		assert.Equal(t, want, a.Cells[0].String(), label)
	}

	res, err := l.Locate(path, models.GradeCellQuery{Student: "Ruiz, Pablo", Activity: "TAREA 1"})
	require.NoError(t, err)
	assert.Equal(t, "F10", res.Address.String())
}
