package models

import "time"

// Workbook is a parsed spreadsheet document.
type Workbook struct {
	// Path is the absolute path the workbook was read from.
	Path string `json:"path"`
	// BookName is the workbook file name (no directory).
	BookName string `json:"book_name"`
	// ModTime is the source file modification time at parse time.
	ModTime time.Time `json:"mod_time"`
	// LoadedAt is when the workbook was parsed.
	LoadedAt time.Time `json:"loaded_at"`
	// Sheets maps sheet name to sheet contents.
	Sheets map[string]*Sheet `json:"sheets"`
	// SheetOrder lists sheet names in workbook order.
	SheetOrder []string `json:"sheet_order"`
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := w.Sheets[name]
	return s, ok
}
