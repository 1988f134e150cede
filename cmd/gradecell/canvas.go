package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/roster"
)

type course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newCanvasClient() (*roster.CanvasClient, error) {
	client, err := roster.NewCanvasClient(roster.LoadConfig(), newObserver())
	if err != nil {
		return nil, fmt.Errorf("%w: set GRADECELL_CANVAS_URL and GRADECELL_CANVAS_TOKEN", err)
	}
	return client, nil
}

func parseCourseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid course id: %s", s)
	}
	return id, nil
}

func newCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List the Canvas courses of the token owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newCanvasClient()
			if err != nil {
				return err
			}
			byID, err := client.ListCourses(cmd.Context())
			if err != nil {
				return err
			}
			courses := make([]course, 0, len(byID))
			for id, name := range byID {
				courses = append(courses, course{ID: id, Name: name})
			}
			sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
			return writeResult(courses)
		},
	}
}

func newRosterCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "roster <course-id>",
		Short: "List the students enrolled in a Canvas course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := fetchStudents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == "csv" {
				rows := make([][]string, 0, len(students))
				for _, s := range students {
					rows = append(rows, []string{strconv.Itoa(s.ID), s.Name, s.SortableName})
				}
				return writeCSV([]string{"id", "name", "sortable_name"}, rows)
			}
			return writeResult(students)
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newScoresCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "scores <course-id>",
		Short: "List the scored submissions of a Canvas course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scores, err := fetchScores(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == "csv" {
				rows := make([][]string, 0, len(scores))
				for _, s := range scores {
					rows = append(rows, []string{
						s.Course,
						s.Activity,
						strconv.Itoa(s.StudentID),
						strconv.FormatFloat(s.Score, 'f', -1, 64),
					})
				}
				return writeCSV([]string{"course", "activity", "student_id", "score"}, rows)
			}
			return writeResult(scores)
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newPlanCmd() *cobra.Command {
	var term termOpts
	cmd := &cobra.Command{
		Use:   "plan <input.xlsx> <course-id>",
		Short: "Match Canvas scores to gradebook cells without writing them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := term.resolve(cmd)
			if err != nil {
				return err
			}
			loc, err := newLocator()
			if err != nil {
				return err
			}
			// Fail on the workbook before spending requests on Canvas.
			if _, err := loc.Mapping(args[0]); err != nil {
				return err
			}

			courseID, err := parseCourseID(args[1])
			if err != nil {
				return err
			}
			client, err := newCanvasClient()
			if err != nil {
				return err
			}
			students, scores, err := fetchCourse(cmd.Context(), client, courseID)
			if err != nil {
				return err
			}
			placements, err := loc.Plan(args[0], students, scores, idx)
			if err != nil {
				return err
			}
			return writeResult(placements)
		},
	}
	term.register(cmd)
	return cmd
}

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", "json", "Output format: json, csv")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if *format != "json" && *format != "csv" {
			return fmt.Errorf("invalid format: %s (must be json or csv)", *format)
		}
		return nil
	}
}

func fetchStudents(ctx context.Context, courseArg string) ([]roster.Student, error) {
	id, err := parseCourseID(courseArg)
	if err != nil {
		return nil, err
	}
	client, err := newCanvasClient()
	if err != nil {
		return nil, err
	}
	return client.ListStudents(ctx, id)
}

func fetchScores(ctx context.Context, courseArg string) ([]roster.Score, error) {
	id, err := parseCourseID(courseArg)
	if err != nil {
		return nil, err
	}
	client, err := newCanvasClient()
	if err != nil {
		return nil, err
	}
	return client.ListScores(ctx, id)
}

// fetchCourse reads the roster and the scores of one course through src.
func fetchCourse(ctx context.Context, src roster.Source, courseID int) ([]roster.Student, []roster.Score, error) {
	students, err := src.ListStudents(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	scores, err := src.ListScores(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	return students, scores, nil
}
