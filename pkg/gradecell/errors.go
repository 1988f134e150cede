package gradecell

import (
	"errors"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/parser"
)

// Errors returned by the Locator. Use errors.Is to classify them and
// errors.As with *LookupError to get the path, sheet and query involved.
var (
	ErrFileLoad            = parser.ErrFileLoad
	ErrSheetNotFound       = parser.ErrSheetNotFound
	ErrHeaderBlockNotFound = parser.ErrHeaderBlockNotFound
	ErrStudentNotFound     = parser.ErrStudentNotFound
	ErrActivityNotFound    = parser.ErrActivityNotFound
	ErrTermIndexOutOfRange = parser.ErrTermIndexOutOfRange
	ErrCellRead            = parser.ErrCellRead
)

// LookupError carries the context of a failed operation.
type LookupError = parser.LookupError

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrFileLoad, "file_load"},
	{ErrSheetNotFound, "sheet_not_found"},
	{ErrHeaderBlockNotFound, "header_block_not_found"},
	{ErrStudentNotFound, "student_not_found"},
	{ErrActivityNotFound, "activity_not_found"},
	{ErrTermIndexOutOfRange, "term_index_out_of_range"},
	{ErrCellRead, "cell_read"},
	{ErrInvalidTerm, "invalid_term"},
}

// ErrorCode returns a stable snake_case name for the sentinel err wraps,
// or "" when it wraps none.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
