package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gradecell-go/pkg/gradecell"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/parser"
)

// termOpts is shared by commands that take a term.
type termOpts struct {
	label string
	index int
}

func (t *termOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.label, "term", "1T", "Term label: 1T, 2T, ... or a 1-based number")
	cmd.Flags().IntVar(&t.index, "term-index", 0, "Zero-based term index (overrides --term)")
}

func (t *termOpts) resolve(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("term-index") {
		return t.index, nil
	}
	return gradecell.ParseTerm(t.label)
}

func newMappingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mapping <input.xlsx>",
		Short: "List activity labels and their header cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := newLocator()
			if err != nil {
				return err
			}
			mapping, err := loc.Mapping(args[0])
			if err != nil {
				return err
			}
			return writeResult(mapping)
		},
	}
}

func newStudentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "students <input.xlsx>",
		Short: "List the roster column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := newLocator()
			if err != nil {
				return err
			}
			wb, err := loc.Load(args[0])
			if err != nil {
				return err
			}
			rows, err := loc.Students(wb)
			if err != nil {
				return err
			}
			return writeResult(rows)
		},
	}
}

func newLocateCmd() *cobra.Command {
	var (
		student  string
		activity string
		term     termOpts
	)
	cmd := &cobra.Command{
		Use:   "locate <input.xlsx>",
		Short: "Find the grade cell of a student, activity and term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := term.resolve(cmd)
			if err != nil {
				return err
			}
			loc, err := newLocator()
			if err != nil {
				return err
			}
			res, err := loc.Locate(args[0], models.GradeCellQuery{Student: student, Activity: activity, Term: idx})
			if err != nil {
				return err
			}
			return writeResult(res)
		},
	}
	cmd.Flags().StringVarP(&student, "student", "s", "", "Student name as written in the roster")
	cmd.Flags().StringVarP(&activity, "activity", "a", "", "Activity label")
	term.register(cmd)
	cmd.MarkFlagRequired("student")
	cmd.MarkFlagRequired("activity")
	return cmd
}

type readResult struct {
	Sheet   string             `json:"sheet"`
	Address models.CellAddress `json:"address"`
	Value   models.CellValue   `json:"value"`
	Kind    string             `json:"kind"`
}

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <input.xlsx> <cell>",
		Short: "Print the current value of a cell in the evaluation sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parser.ParseAddress(args[1])
			if err != nil {
				return err
			}
			loc, err := newLocator()
			if err != nil {
				return err
			}
			wb, err := loc.Load(args[0])
			if err != nil {
				return err
			}
			v, err := loc.ReadValue(wb, addr)
			if err != nil {
				return err
			}
			return writeResult(readResult{Sheet: loc.Layout().Sheet, Address: addr, Value: v, Kind: v.Kind.String()})
		},
	}
}

type checkSummary struct {
	Passed  int                     `json:"passed"`
	Failed  int                     `json:"failed"`
	Results []gradecell.CheckResult `json:"results"`
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <input.xlsx> <cases.yaml>",
		Short: "Verify expected cells and values against a workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := gradecell.LoadExpectations(args[1])
			if err != nil {
				return err
			}
			loc, err := newLocator()
			if err != nil {
				return err
			}
			results, err := loc.Check(args[0], cases)
			if err != nil {
				return err
			}

			summary := checkSummary{Results: results}
			for _, r := range results {
				if r.Passed {
					summary.Passed++
				} else {
					summary.Failed++
				}
			}
			if err := writeResult(summary); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d checks failed", summary.Failed, len(results))
			}
			return nil
		},
	}
}
