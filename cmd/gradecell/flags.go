package main

import (
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/ukaji3/gradecell-go/pkg/gradecell"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/output"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
)

// layoutFlags override fields of the layout file or the default layout.
type layoutFlags struct {
	file          string
	sheet         string
	anchor        string
	headerRows    []int
	activityRow   int
	studentColumn string
	startRow      int
	strict        bool
	flags         *pflag.FlagSet
}

func addLayoutFlags(fs *pflag.FlagSet, f *layoutFlags) {
	def := gradecell.DefaultLayout()
	fs.StringVar(&f.file, "layout", "", "YAML layout file")
	fs.StringVar(&f.sheet, "sheet", def.Sheet, "Evaluation sheet name")
	fs.StringVar(&f.anchor, "anchor", def.Header.Anchor, "Text identifying activity header blocks")
	fs.IntSliceVar(&f.headerRows, "header-rows", []int{def.Header.FirstRow, def.Header.LastRow}, "First and last row of the merged header block")
	fs.IntVar(&f.activityRow, "activity-row", def.Header.ActivityRow, "Row holding activity labels")
	fs.StringVar(&f.studentColumn, "student-column", def.Students.Column, "Column holding student names")
	fs.IntVar(&f.startRow, "start-row", def.Students.StartRow, "First student row")
	fs.BoolVar(&f.strict, "strict-terms", false, "Fail on terms an activity does not have instead of using the first term")
	f.flags = fs
}

// layout returns the layout file (or the default) with explicitly set flags
// applied on top.
func (f *layoutFlags) layout() (gradecell.Layout, error) {
	l := gradecell.DefaultLayout()
	if f.file != "" {
		var err error
		if l, err = gradecell.LoadLayout(f.file); err != nil {
			return l, err
		}
	}

	changed := f.flags.Changed
	if changed("sheet") {
		l.Sheet = f.sheet
	}
	if changed("anchor") {
		l.Header.Anchor = f.anchor
	}
	if changed("header-rows") {
		switch len(f.headerRows) {
		case 1:
			l.Header.FirstRow, l.Header.LastRow = f.headerRows[0], f.headerRows[0]
		case 2:
			l.Header.FirstRow, l.Header.LastRow = f.headerRows[0], f.headerRows[1]
		default:
			l.Header.FirstRow, l.Header.LastRow = 0, 0
		}
	}
	if changed("activity-row") {
		l.Header.ActivityRow = f.activityRow
	}
	if changed("student-column") {
		l.Students.Column = f.studentColumn
	}
	if changed("start-row") {
		l.Students.StartRow = f.startRow
	}
	if changed("strict-terms") {
		l.StrictTerms = f.strict
	}
	return l, nil
}

func newObserver() trace.Observer {
	switch {
	case traceRows:
		return trace.NewLogObserver(os.Stderr, trace.LevelTrace)
	case verbose:
		return trace.NewLogObserver(os.Stderr, slog.LevelDebug)
	}
	return trace.Noop{}
}

func newLocator() (*gradecell.Locator, error) {
	l, err := layoutOpts.layout()
	if err != nil {
		return nil, err
	}
	return gradecell.New(gradecell.Options{Layout: l, Observer: newObserver()})
}

func writeResult(v any) error {
	w, closeFn, err := output.Open(outputPath)
	if err != nil {
		return err
	}
	if err := output.Write(w, v, pretty); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func writeCSV(header []string, rows [][]string) error {
	w, closeFn, err := output.Open(outputPath)
	if err != nil {
		return err
	}
	if err := output.WriteCSV(w, header, rows); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
