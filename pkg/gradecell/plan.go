package gradecell

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/roster"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
)

// Placement pairs a platform score with the gradebook cell it belongs in.
type Placement struct {
	StudentID int     `json:"student_id"`
	Student   string  `json:"student,omitempty"`
	Activity  string  `json:"activity"`
	Score     float64 `json:"score"`
	// Address is nil when the score could not be placed.
	Address *models.CellAddress `json:"address,omitempty"`
	// Current is the cell's content before any write.
	Current   models.CellValue `json:"current"`
	ErrorCode string           `json:"error_code,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Placed reports whether the score was matched to a cell.
func (p Placement) Placed() bool {
	return p.Address != nil
}

// Plan matches every score to its cell in the workbook at path for term.
// Students are looked up by their sortable name first, then by display
// name. Scores that cannot be placed keep their error and do not stop the
// plan. The workbook is never modified.
func (l *Locator) Plan(path string, students []roster.Student, scores []roster.Score, term int) ([]Placement, error) {
	wb, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if _, err := l.BuildMapping(wb); err != nil {
		return nil, err
	}

	byID := make(map[int]roster.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	placements := make([]Placement, 0, len(scores))
	for _, sc := range scores {
		p := Placement{StudentID: sc.StudentID, Activity: sc.Activity, Score: sc.Score}
		student, ok := byID[sc.StudentID]
		if !ok {
			p.Error = fmt.Sprintf("student %d is not enrolled", sc.StudentID)
			placements = append(placements, p)
			continue
		}

		res, err := l.locateStudent(wb, student, sc.Activity, term)
		if err != nil {
			p.Student = displayName(student)
			p.ErrorCode = ErrorCode(err)
			p.Error = err.Error()
		} else {
			p.Student = res.Query.Student
			addr := res.Address
			p.Address = &addr
			p.Current = res.Value
		}
		l.observer.Observe(trace.Event{
			Name:  trace.PlacementPlanned,
			Level: slog.LevelDebug,
			Fields: map[string]any{
				"student_id": sc.StudentID,
				"activity":   sc.Activity,
				"placed":     p.Placed(),
			},
		})
		placements = append(placements, p)
	}
	return placements, nil
}

// locateStudent tries each of the student's names in turn and returns the
// first lookup that does not fail on the name.
func (l *Locator) locateStudent(wb *models.Workbook, s roster.Student, activity string, term int) (*Result, error) {
	var lastErr error
	for _, name := range candidateNames(s) {
		res, err := l.locate(wb, models.GradeCellQuery{Student: name, Activity: activity, Term: term})
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !errors.Is(err, ErrStudentNotFound) {
			break
		}
	}
	return nil, lastErr
}

func candidateNames(s roster.Student) []string {
	var names []string
	if s.SortableName != "" {
		names = append(names, s.SortableName)
	}
	if s.Name != "" && s.Name != s.SortableName {
		names = append(names, s.Name)
	}
	if len(names) == 0 {
		names = append(names, "")
	}
	return names
}

func displayName(s roster.Student) string {
	if s.SortableName != "" {
		return s.SortableName
	}
	return s.Name
}
