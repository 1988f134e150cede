package models

// MergedRange is a rectangular merged region of a sheet.
type MergedRange struct {
	// MinRow is the first row (1-based).
	MinRow int `json:"min_row"`
	// MaxRow is the last row (1-based, inclusive).
	MaxRow int `json:"max_row"`
	// MinCol is the first column (1-based).
	MinCol int `json:"min_col"`
	// MaxCol is the last column (1-based, inclusive).
	MaxCol int `json:"max_col"`
	// AnchorValue is the text of the top-left cell.
	AnchorValue string `json:"anchor_value"`
}

// SpansRows reports whether the range covers exactly rows first..last.
func (m MergedRange) SpansRows(first, last int) bool {
	return m.MinRow == first && m.MaxRow == last
}

// Sheet holds the populated cells and merged ranges of one worksheet.
type Sheet struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Cells maps coordinates to populated cells. Empty cells are absent.
	Cells map[Coord]Cell `json:"-"`
	// Merges lists the merged ranges defined on the sheet.
	Merges []MergedRange `json:"merges,omitempty"`
	// MaxRow is the last populated row (0 for an empty sheet).
	MaxRow int `json:"max_row"`
	// MaxCol is the last populated column (0 for an empty sheet).
	MaxCol int `json:"max_col"`
}

// NewSheet returns an empty sheet ready to be filled.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name, Cells: make(map[Coord]Cell)}
}

// Set stores a value at (row, col) and grows the sheet extent. Empty values
// are not stored.
func (s *Sheet) Set(row, col int, v CellValue) {
	if v.IsEmpty() {
		return
	}
	s.Cells[Coord{Row: row, Col: col}] = Cell{Row: row, Col: col, Value: v}
	if row > s.MaxRow {
		s.MaxRow = row
	}
	if col > s.MaxCol {
		s.MaxCol = col
	}
}

// Cell returns the cell at (row, col), or an empty cell when nothing is stored.
func (s *Sheet) Cell(row, col int) Cell {
	if c, ok := s.Cells[Coord{Row: row, Col: col}]; ok {
		return c
	}
	return Cell{Row: row, Col: col}
}

// Text returns the string form of the value at (row, col).
func (s *Sheet) Text(row, col int) string {
	return s.Cell(row, col).Value.String()
}
