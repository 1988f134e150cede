package gradecell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTerm is returned by ParseTerm for labels it cannot read.
var ErrInvalidTerm = errors.New("invalid term")

// ParseTerm converts a term label into a zero-based term index.
// It accepts "2T", "T2" and a plain 1-based number such as "2", so all
// three return 1.
func ParseTerm(label string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "T"), "T"))
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTerm, label)
	}
	return n - 1, nil
}

// TermLabel renders a zero-based term index as "1T", "2T", ...
func TermLabel(term int) string {
	return strconv.Itoa(term+1) + "T"
}
