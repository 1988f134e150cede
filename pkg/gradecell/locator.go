package gradecell

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/parser"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
)

// Locator resolves grade cells in gradebooks sharing one layout.
// It is safe for concurrent use.
type Locator struct {
	layout   Layout
	loader   *parser.Loader
	observer trace.Observer
}

// Result is the outcome of Locate.
type Result struct {
	Query models.GradeCellQuery `json:"query"`
	// Row is the student's row in the evaluation sheet.
	Row     int                `json:"row"`
	Address models.CellAddress `json:"address"`
	// Value is the cell's current content.
	Value models.CellValue `json:"value"`
	// TermFallback is set when the requested term had no header cell and
	// the activity's first term was used instead.
	TermFallback bool `json:"term_fallback,omitempty"`
}

// New returns a Locator for opts. The layout is validated up front.
func New(opts Options) (*Locator, error) {
	if err := opts.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	obs := trace.OrNoop(opts.Observer)
	return &Locator{
		layout:   opts.Layout,
		loader:   parser.NewLoader(opts.Cache, obs),
		observer: obs,
	}, nil
}

// Layout returns the layout the Locator was built with.
func (l *Locator) Layout() Layout {
	return l.layout
}

// Cache returns the workbook cache.
func (l *Locator) Cache() *parser.Cache {
	return l.loader.Cache()
}

// Load parses the workbook at path, reusing the cached copy when the file
// has not changed.
func (l *Locator) Load(path string) (*models.Workbook, error) {
	return l.loader.Load(path)
}

// BuildMapping returns the activity mapping of wb. The mapping is built
// once per cached workbook.
func (l *Locator) BuildMapping(wb *models.Workbook) (*models.ActivityMapping, error) {
	return l.loader.Mapping(wb, l.layout.HeaderSpec())
}

// Mapping loads the workbook at path and returns its activity mapping.
func (l *Locator) Mapping(path string) (*models.ActivityMapping, error) {
	wb, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return l.BuildMapping(wb)
}

// FindStudentRow returns the row of the student called name.
func (l *Locator) FindStudentRow(wb *models.Workbook, name string) (int, error) {
	return parser.FindStudentRow(wb, l.layout.StudentSpec(), name, l.observer)
}

// Students lists the roster of wb in row order.
func (l *Locator) Students(wb *models.Workbook) ([]models.StudentRow, error) {
	return parser.IndexStudents(wb, l.layout.StudentSpec())
}

// ResolveCell returns the address of the grade for activity and term on row.
func (l *Locator) ResolveCell(mapping *models.ActivityMapping, row int, activity string, term int) (models.CellAddress, error) {
	return parser.ResolveCell(mapping, row, activity, term, l.layout.TermPolicy(), l.observer)
}

// ReadValue returns the content of addr in the evaluation sheet.
func (l *Locator) ReadValue(wb *models.Workbook, addr models.CellAddress) (models.CellValue, error) {
	return parser.ReadValue(wb, l.layout.Sheet, addr)
}

// Locate runs the full lookup for q on the workbook at path and returns
// the grade cell with its current value.
func (l *Locator) Locate(path string, q models.GradeCellQuery) (*Result, error) {
	wb, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return l.locate(wb, q)
}

func (l *Locator) locate(wb *models.Workbook, q models.GradeCellQuery) (*Result, error) {
	mapping, err := l.BuildMapping(wb)
	if err != nil {
		return nil, err
	}
	row, err := l.FindStudentRow(wb, q.Student)
	if err != nil {
		return nil, err
	}
	addr, err := l.ResolveCell(mapping, row, q.Activity, q.Term)
	if err != nil {
		return nil, withPath(err, wb.Path)
	}
	value, err := l.ReadValue(wb, addr)
	if err != nil {
		return nil, err
	}

	terms := parser.TermCount(mapping, q.Activity)
	return &Result{
		Query:        q,
		Row:          row,
		Address:      addr,
		Value:        value,
		TermFallback: q.Term < 0 || q.Term >= terms,
	}, nil
}

// withPath fills in the workbook path on lookup errors raised below the
// loader, which only see the mapping.
func withPath(err error, path string) error {
	var le *LookupError
	if errors.As(err, &le) && le.Path == "" {
		le.Path = path
	}
	return err
}
