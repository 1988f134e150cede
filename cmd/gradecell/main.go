// Package main provides the CLI entry point for gradecell.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	outputPath string
	pretty     bool
	verbose    bool
	traceRows  bool
	layoutOpts layoutFlags
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gradecell",
		Short: "Locate grade cells in evaluation workbooks",
		Long: `gradecell finds the cell holding a student's grade for an activity and
term in an evaluation workbook, and matches Canvas scores to those cells.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log cache and lookup events to stderr")
	pf.BoolVar(&traceRows, "trace", false, "Also log every scanned row and header cell")
	addLayoutFlags(pf, &layoutOpts)

	rootCmd.AddCommand(
		newMappingCmd(),
		newStudentsCmd(),
		newLocateCmd(),
		newReadCmd(),
		newCheckCmd(),
		newCoursesCmd(),
		newRosterCmd(),
		newScoresCmd(),
		newPlanCmd(),
	)
	return rootCmd
}
