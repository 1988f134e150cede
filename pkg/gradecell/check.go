package gradecell

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"gopkg.in/yaml.v3"
)

// Expectation is one test case of a gradebook check file.
type Expectation struct {
	Name     string `yaml:"name" json:"name,omitempty"`
	Student  string `yaml:"student" json:"student"`
	Activity string `yaml:"activity" json:"activity"`
	// Term is a label accepted by ParseTerm. Empty means the first term.
	Term string `yaml:"term" json:"term,omitempty"`
	// Cell is the expected address, e.g. "F12".
	Cell string `yaml:"cell" json:"cell,omitempty"`
	// Value is the expected content. An empty string expects an empty cell.
	Value *string `yaml:"value" json:"value,omitempty"`
	// Error is the expected ErrorCode, e.g. "activity_not_found".
	Error string `yaml:"error" json:"error,omitempty"`
}

// CheckResult is the outcome of one Expectation.
type CheckResult struct {
	Expectation Expectation      `json:"expectation"`
	Passed      bool             `json:"passed"`
	Address     string           `json:"address,omitempty"`
	Value       models.CellValue `json:"value"`
	ErrorCode   string           `json:"error_code,omitempty"`
	Reason      string           `json:"reason,omitempty"`
}

type checkFile struct {
	Cases []Expectation `yaml:"cases"`
}

// LoadExpectations reads a YAML file with a top-level "cases" list.
func LoadExpectations(path string) ([]Expectation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases %s: %w", path, err)
	}
	var file checkFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse cases %s: %w", path, err)
	}
	for i, c := range file.Cases {
		if c.Cell == "" && c.Value == nil && c.Error == "" {
			return nil, fmt.Errorf("case %d (%s): nothing to check", i+1, c.Student)
		}
	}
	return file.Cases, nil
}

// Check evaluates every expectation against the workbook at path. Only a
// workbook that cannot be loaded fails the whole run.
func (l *Locator) Check(path string, cases []Expectation) ([]CheckResult, error) {
	wb, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, 0, len(cases))
	for _, c := range cases {
		results = append(results, l.checkOne(wb, c))
	}
	return results, nil
}

func (l *Locator) checkOne(wb *models.Workbook, c Expectation) CheckResult {
	res := CheckResult{Expectation: c}

	term := 0
	if strings.TrimSpace(c.Term) != "" {
		t, err := ParseTerm(c.Term)
		if err != nil {
			return c.judgeError(res, err)
		}
		term = t
	}

	found, err := l.locate(wb, models.GradeCellQuery{Student: c.Student, Activity: c.Activity, Term: term})
	if err != nil {
		return c.judgeError(res, err)
	}
	res.Address = found.Address.String()
	res.Value = found.Value

	switch {
	case c.Error != "":
		res.Reason = fmt.Sprintf("expected error %s, got %s", c.Error, res.Address)
	case c.Cell != "" && !strings.EqualFold(strings.TrimSpace(c.Cell), res.Address):
		res.Reason = fmt.Sprintf("expected cell %s, got %s", c.Cell, res.Address)
	case c.Value != nil && !valueMatches(*c.Value, found.Value):
		res.Reason = fmt.Sprintf("expected value %q, got %q", *c.Value, found.Value.String())
	default:
		res.Passed = true
	}
	return res
}

func (c Expectation) judgeError(res CheckResult, err error) CheckResult {
	res.ErrorCode = ErrorCode(err)
	if c.Error != "" && c.Error == res.ErrorCode {
		res.Passed = true
		return res
	}
	res.Reason = err.Error()
	return res
}

func valueMatches(want string, got models.CellValue) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return got.IsEmpty()
	}
	if got.Kind == models.KindNumber {
		if n, err := strconv.ParseFloat(want, 64); err == nil {
			return math.Abs(n-got.Number) < 1e-9
		}
	}
	return want == got.String()
}
