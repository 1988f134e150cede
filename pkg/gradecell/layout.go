// Package gradecell locates the cell holding a student's grade for an
// activity and term inside a gradebook whose activity header is built from
// merged cell blocks.
package gradecell

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/parser"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultSheet is the sheet holding the evaluation grid.
	DefaultSheet = "EVALUACIÓN"
	// DefaultAnchor is the text identifying an activity header block.
	DefaultAnchor = "RESULTADO APRENDIZAJE-CRITERIO DE EVALUACIÓN PRÁCTICOS"
)

// Layout describes where things live in a gradebook.
type Layout struct {
	// Sheet is the evaluation sheet name.
	Sheet string `yaml:"sheet"`
	// Header locates the activity header blocks.
	Header HeaderLayout `yaml:"header"`
	// Students locates the roster column.
	Students StudentLayout `yaml:"students"`
	// StrictTerms makes out-of-range term indexes an error instead of
	// falling back to the first term.
	StrictTerms bool `yaml:"strict_terms"`
	// Limits bounds the scans on malformed inputs.
	Limits Limits `yaml:"limits"`
}

// HeaderLayout is the geometry of the merged activity header.
type HeaderLayout struct {
	Anchor      string `yaml:"anchor"`
	FirstRow    int    `yaml:"first_row"`
	LastRow     int    `yaml:"last_row"`
	ActivityRow int    `yaml:"activity_row"`
}

// StudentLayout is the position of the roster.
type StudentLayout struct {
	Column   string `yaml:"column"`
	StartRow int    `yaml:"start_row"`
}

// Limits bounds row and column scans. Zero disables a bound.
type Limits struct {
	MaxRows int `yaml:"max_rows"`
	MaxCols int `yaml:"max_cols"`
}

// DefaultLayout returns the layout of the standard evaluation workbook:
// header block on rows 7-8, activities on row 9, students in column C from
// row 10.
func DefaultLayout() Layout {
	return Layout{
		Sheet: DefaultSheet,
		Header: HeaderLayout{
			Anchor:      DefaultAnchor,
			FirstRow:    7,
			LastRow:     8,
			ActivityRow: 9,
		},
		Students: StudentLayout{
			Column:   "C",
			StartRow: 10,
		},
		Limits: Limits{
			MaxRows: 5000,
			MaxCols: 1024,
		},
	}
}

// LoadLayout reads a YAML layout file. Keys missing from the file keep
// their default values.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("read layout %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return layout, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := layout.Validate(); err != nil {
		return layout, fmt.Errorf("layout %s: %w", path, err)
	}
	return layout, nil
}

// Validate reports every inconsistency in the layout.
func (l Layout) Validate() error {
	var errs []error
	if strings.TrimSpace(l.Sheet) == "" {
		errs = append(errs, errors.New("sheet is required"))
	}
	if parser.Normalize(l.Header.Anchor) == "" {
		errs = append(errs, errors.New("header anchor is required"))
	}
	if l.Header.FirstRow < 1 || l.Header.LastRow < l.Header.FirstRow {
		errs = append(errs, fmt.Errorf("header rows %d-%d are invalid", l.Header.FirstRow, l.Header.LastRow))
	}
	if l.Header.ActivityRow < 1 {
		errs = append(errs, fmt.Errorf("activity row %d is invalid", l.Header.ActivityRow))
	}
	if _, err := excelize.ColumnNameToNumber(l.Students.Column); err != nil {
		errs = append(errs, fmt.Errorf("student column: %w", err))
	}
	if l.Students.StartRow < 1 {
		errs = append(errs, fmt.Errorf("student start row %d is invalid", l.Students.StartRow))
	}
	if l.Limits.MaxRows < 0 || l.Limits.MaxCols < 0 {
		errs = append(errs, errors.New("limits cannot be negative"))
	}
	return errors.Join(errs...)
}

// HeaderSpec converts the layout into the parser's header description.
func (l Layout) HeaderSpec() parser.HeaderSpec {
	return parser.HeaderSpec{
		Sheet:       l.Sheet,
		Anchor:      l.Header.Anchor,
		RowStart:    l.Header.FirstRow,
		RowEnd:      l.Header.LastRow,
		ActivityRow: l.Header.ActivityRow,
		MaxCols:     l.Limits.MaxCols,
	}
}

// StudentSpec converts the layout into the parser's roster description.
func (l Layout) StudentSpec() parser.StudentSpec {
	return parser.StudentSpec{
		Sheet:    l.Sheet,
		Column:   strings.ToUpper(strings.TrimSpace(l.Students.Column)),
		StartRow: l.Students.StartRow,
		MaxRows:  l.Limits.MaxRows,
	}
}

// TermPolicy returns the resolver policy selected by StrictTerms.
func (l Layout) TermPolicy() parser.TermPolicy {
	if l.StrictTerms {
		return parser.StrictTerms
	}
	return parser.FallbackToFirst
}
