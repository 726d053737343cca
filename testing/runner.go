// Package testing discovers and runs *_test.lev files: each file is a
// single Leverr program (language spec §3, "the program is a single
// expression") whose top-level value must be a record; every field is one
// named test case, and a case passes when its value is Bool(true) or
// Ok(_), fails on Bool(false) or Err(_), and is an error for anything else
// or for a diagnostic raised while evaluating the file.
package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/leverr-lang/leverr"
	"github.com/leverr-lang/leverr/eval"
)

// Config holds configuration for a test run.
type Config struct {
	// Patterns specifies files or directories to search for tests.
	// Default is the current directory.
	Patterns []string

	// RunPattern filters test case names by regex.
	RunPattern string

	// Verbose includes passing cases in the printed output.
	Verbose bool
}

// DiscoverTestFiles finds all *_test.lev files matching the given patterns.
func DiscoverTestFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if strings.Contains(pattern, "*") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			for _, m := range matches {
				if isTestFile(m) && !seen[m] {
					files = append(files, m)
					seen[m] = true
				}
			}
			continue
		}

		info, err := os.Stat(pattern)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path not found: %s", pattern)
			}
			return nil, err
		}

		if info.IsDir() {
			entries, err := os.ReadDir(pattern)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !e.IsDir() && isTestFile(e.Name()) {
					path := filepath.Join(pattern, e.Name())
					if !seen[path] {
						files = append(files, path)
						seen[path] = true
					}
				}
			}
		} else if isTestFile(pattern) && !seen[pattern] {
			files = append(files, pattern)
			seen[pattern] = true
		}
	}

	return files, nil
}

func isTestFile(path string) bool {
	return strings.HasSuffix(path, "_test.lev")
}

// Run executes every discovered test file and returns the aggregate
// Summary.
func Run(cfg *Config) (*Summary, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	files, err := DiscoverTestFiles(cfg.Patterns)
	if err != nil {
		return nil, err
	}

	var runRe *regexp.Regexp
	if cfg.RunPattern != "" {
		runRe, err = regexp.Compile(cfg.RunPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid run pattern: %w", err)
		}
	}

	summary := &Summary{}
	start := time.Now()
	for _, file := range files {
		summary.Files = append(summary.Files, runTestFile(file, runRe))
	}
	summary.Duration = time.Since(start)
	summary.ComputeTotals()

	return summary, nil
}

// runTestFile evaluates one test file and scores each field of its
// top-level record as an independent test case.
func runTestFile(filename string, runRe *regexp.Regexp) *FileResult {
	result := &FileResult{Filename: filename}

	source, err := os.ReadFile(filename)
	if err != nil {
		result.LoadErr = err
		return result
	}

	start := time.Now()
	v, err := leverr.Eval(string(source), leverr.WithFilename(filename))
	if err != nil {
		result.LoadErr = err
		return result
	}

	record, ok := v.(*eval.Record)
	if !ok {
		result.LoadErr = fmt.Errorf("%s: top-level expression must be a record of named test cases, got %s", filename, v)
		return result
	}

	for _, field := range record.Fields {
		if runRe != nil && !runRe.MatchString(field.Name) {
			continue
		}
		result.Tests = append(result.Tests, scoreCase(field.Name, field.Value, time.Since(start)))
	}
	return result
}

func scoreCase(name string, v eval.Value, duration time.Duration) *TestResult {
	result := &TestResult{Name: name, Duration: duration}
	switch x := v.(type) {
	case eval.Bool:
		if bool(x) {
			result.Status = StatusPassed
		} else {
			result.Status = StatusFailed
		}
	case *eval.Tag:
		switch x.Name {
		case "Ok":
			result.Status = StatusPassed
		case "Err":
			result.Status = StatusFailed
			result.FailMessage, _ = eval.ErrMessage(x)
		default:
			result.Status = StatusError
			result.Error = fmt.Errorf("test case %q: unexpected tag %s, want Bool, Ok(_), or Err(_)", name, x.Name)
		}
	default:
		result.Status = StatusError
		result.Error = fmt.Errorf("test case %q: unexpected value %s, want Bool, Ok(_), or Err(_)", name, v)
	}
	return result
}
