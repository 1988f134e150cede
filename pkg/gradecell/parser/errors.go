package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every engine failure wraps exactly one of them.
var (
	// ErrFileLoad indicates the document is missing, unreadable or not a spreadsheet.
	ErrFileLoad = errors.New("cannot load workbook")
	// ErrSheetNotFound indicates the configured sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrHeaderBlockNotFound indicates no merged range matched the header geometry and anchor text.
	ErrHeaderBlockNotFound = errors.New("header block not found")
	// ErrStudentNotFound indicates no roster row matched the student name.
	ErrStudentNotFound = errors.New("student not found")
	// ErrActivityNotFound indicates the activity label is not in the mapping.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrTermIndexOutOfRange is returned instead of the first-term fallback under StrictTerms.
	ErrTermIndexOutOfRange = errors.New("term index out of range")
	// ErrCellRead indicates a structurally invalid cell address.
	ErrCellRead = errors.New("invalid cell address")
)

// Operation names carried by LookupError.
const (
	OpLoad    = "load"
	OpMapping = "mapping"
	OpStudent = "student"
	OpResolve = "resolve"
	OpRead    = "read"
)

// LookupError reports a failed engine operation with enough context for a
// user-facing message.
type LookupError struct {
	Op    string
	Path  string
	Sheet string
	Query string
	Err   error
}

func (e *LookupError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Sheet != "" {
		fmt.Fprintf(&b, " sheet %q", e.Sheet)
	}
	if e.Query != "" {
		fmt.Fprintf(&b, " %q", e.Query)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
