// Package models defines the typed spreadsheet and mapping structures the
// grade-cell engine works on.
package models

import (
	"encoding/json"
	"strconv"
)

// ValueKind classifies the content of a cell.
type ValueKind int

const (
	// KindEmpty means the cell holds no stored content.
	KindEmpty ValueKind = iota
	// KindText means the cell holds a string.
	KindText
	// KindNumber means the cell holds a numeric value.
	KindNumber
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// CellValue is the computed value of a cell.
type CellValue struct {
	Kind   ValueKind
	Text   string
	Number float64
}

// EmptyValue returns a CellValue with no content.
func EmptyValue() CellValue { return CellValue{} }

// TextValue wraps a string cell value.
func TextValue(s string) CellValue { return CellValue{Kind: KindText, Text: s} }

// NumberValue wraps a numeric cell value.
func NumberValue(n float64) CellValue { return CellValue{Kind: KindNumber, Number: n} }

// IsEmpty reports whether the cell has no stored content.
func (v CellValue) IsEmpty() bool { return v.Kind == KindEmpty }

// String renders the value the way a spreadsheet would show its raw content.
// Empty values render as "".
func (v CellValue) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON encodes empty as null, numbers as JSON numbers and text as strings.
func (v CellValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return json.Marshal(v.Text)
	case KindNumber:
		return json.Marshal(v.Number)
	default:
		return []byte("null"), nil
	}
}

// Cell is a single populated cell of a sheet.
type Cell struct {
	// Row is the row index (1-based).
	Row int `json:"r"`
	// Col is the column index (1-based).
	Col int `json:"c"`
	// Value is the computed cell value.
	Value CellValue `json:"v"`
}

// Coord is a (row, column) pair, both 1-based.
type Coord struct {
	Row int
	Col int
}
