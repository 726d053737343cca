package testing

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Status is the outcome of a single test case.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASS"
	case StatusFailed:
		return "FAIL"
	default:
		return "ERROR"
	}
}

// TestResult is the outcome of one named field of a test file's top-level
// record.
type TestResult struct {
	Name        string
	Status      Status
	FailMessage string
	Error       error
	Duration    time.Duration
}

// FileResult is every test case discovered in one *_test.lev file, or the
// error that kept it from being evaluated at all.
type FileResult struct {
	Filename string
	LoadErr  error
	Tests    []*TestResult
}

// Summary aggregates every FileResult in a run.
type Summary struct {
	Files    []*FileResult
	Passed   int
	Failed   int
	Errors   int
	Duration time.Duration
}

// ComputeTotals tallies Passed/Failed/Errors from Files.
func (s *Summary) ComputeTotals() {
	s.Passed, s.Failed, s.Errors = 0, 0, 0
	for _, f := range s.Files {
		for _, t := range f.Tests {
			switch t.Status {
			case StatusPassed:
				s.Passed++
			case StatusFailed:
				s.Failed++
			case StatusError:
				s.Errors++
			}
		}
		if f.LoadErr != nil {
			s.Errors++
		}
	}
}

// Success reports whether every test case passed and every file loaded.
func (s *Summary) Success() bool {
	return s.Failed == 0 && s.Errors == 0
}

// Output formats and prints a Summary in a go-test-like style.
type Output struct {
	w        io.Writer
	verbose  bool
	useColor bool
}

// NewOutput creates an Output writing to w.
func NewOutput(w io.Writer, verbose, useColor bool) *Output {
	return &Output{w: w, verbose: verbose, useColor: useColor}
}

// PrintResults prints every file's test cases followed by the summary line.
func (o *Output) PrintResults(summary *Summary) {
	for _, file := range summary.Files {
		if file.LoadErr != nil {
			fmt.Fprintf(o.w, "%s %s\n    %s\n", o.colorize(color.FgRed, "LOAD ERROR:"), file.Filename, file.LoadErr)
			continue
		}
		for _, t := range file.Tests {
			o.printCase(file.Filename, t)
		}
	}
	o.printSummary(summary)
}

func (o *Output) printCase(filename string, t *TestResult) {
	if t.Status == StatusPassed && !o.verbose {
		return
	}
	var label string
	switch t.Status {
	case StatusPassed:
		label = o.colorize(color.FgGreen, "--- PASS:")
	case StatusFailed:
		label = o.colorize(color.FgRed, "--- FAIL:")
	default:
		label = o.colorize(color.FgRed, "--- ERROR:")
	}
	fmt.Fprintf(o.w, "%s %s/%s (%.3fs)\n", label, filename, t.Name, t.Duration.Seconds())
	if t.Status == StatusFailed && t.FailMessage != "" {
		fmt.Fprintf(o.w, "    %s\n", t.FailMessage)
	}
	if t.Status == StatusError && t.Error != nil {
		fmt.Fprintf(o.w, "    %s\n", t.Error)
	}
}

func (o *Output) printSummary(summary *Summary) {
	fmt.Fprintln(o.w)
	if summary.Success() {
		fmt.Fprintln(o.w, o.colorize(color.FgGreen, "PASS"))
	} else {
		fmt.Fprintln(o.w, o.colorize(color.FgRed, "FAIL"))
	}
	fmt.Fprintf(o.w, "%d passed, %d failed, %d errors in %.3fs\n",
		summary.Passed, summary.Failed, summary.Errors, summary.Duration.Seconds())
}

func (o *Output) colorize(c color.Attribute, s string) string {
	if !o.useColor {
		return s
	}
	return color.New(c).Sprint(s)
}
