package models

import "strconv"

// CellAddress is a resolved worksheet coordinate.
type CellAddress struct {
	// Column is the column letters.
	Column string
	// ColumnIndex is the column index (1-based).
	ColumnIndex int
	// Row is the row number (1-based).
	Row int
}

func (a CellAddress) String() string {
	return a.Column + strconv.Itoa(a.Row)
}

// MarshalText renders the address as "F12".
func (a CellAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// GradeCellQuery identifies one grade: a student, an activity and a term.
type GradeCellQuery struct {
	Student  string `json:"student" yaml:"student"`
	Activity string `json:"activity" yaml:"activity"`
	// Term is the zero-based term index.
	Term int `json:"term" yaml:"term"`
}

// StudentRow is a student name found in the roster column.
type StudentRow struct {
	Name string `json:"name"`
	Row  int    `json:"row"`
}
