// Package leverr is the embedding API for the language: it wires the
// lexer, parser, inferencer, and evaluator into the parse -> infer ->
// evaluate pipeline and exposes the two collaborator-facing entry points
// named in language spec §6 — a line evaluator for an interactive shell,
// and a whole-source runner for a file runner — plus a lower-level Eval
// for callers that just want the resulting runtime value.
package leverr

import (
	"fmt"
	"io"
	"os"

	"github.com/leverr-lang/leverr/builtins"
	"github.com/leverr-lang/leverr/errors"
	"github.com/leverr-lang/leverr/eval"
	"github.com/leverr-lang/leverr/infer"
	"github.com/leverr-lang/leverr/parser"
	"github.com/leverr-lang/leverr/types"
)

// Option configures an evaluation.
type Option func(*config)

type config struct {
	globals  map[string]eval.Value
	filename string
	stdout   io.Writer
}

func collectOptions(opts ...Option) *config {
	cfg := &config{globals: map[string]eval.Value{}, stdout: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithGlobal binds one additional name in the environment, alongside the
// built-in library.
func WithGlobal(name string, value eval.Value) Option {
	return func(cfg *config) { cfg.globals[name] = value }
}

// WithGlobals binds a whole map of additional names, alongside the
// built-in library. Additive: later options layer on top of earlier ones.
func WithGlobals(globals map[string]eval.Value) Option {
	return func(cfg *config) {
		for k, v := range globals {
			cfg.globals[k] = v
		}
	}
}

// WithFilename records a filename on the evaluation's configuration.
// Diagnostics are rendered without it: the name does not appear in their
// text.
func WithFilename(filename string) Option {
	return func(cfg *config) { cfg.filename = filename }
}

// WithStdout redirects the sink the print built-in writes to (language
// spec §6, "a standard-output sink is required by the print built-in").
// Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(cfg *config) { cfg.stdout = w }
}

func (cfg *config) environment() eval.Environment {
	env := builtins.Environment(cfg.stdout)
	for k, v := range cfg.globals {
		env = env.Extend(k, v)
	}
	return env
}

func (cfg *config) typeEnv() infer.Env {
	env := infer.BuiltinEnv()
	for k := range cfg.globals {
		// An injected global carries no declared type, so it is given the
		// fully polymorphic scheme forall a. a; its uses are not type-checked.
		env = env.Extend(k, &types.Scheme{Vars: []int{-1}, Type: &types.Var{ID: -1}})
	}
	return env
}

// Eval parses, type-checks, and evaluates source, returning its top-level
// runtime value. A lexical, parse, type, or runtime Diagnostic aborts the
// pipeline at the stage it was raised (language spec §7).
func Eval(source string, opts ...Option) (eval.Value, error) {
	cfg := collectOptions(opts...)

	expr, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	if _, err := infer.Infer(expr, cfg.typeEnv()); err != nil {
		return nil, err
	}
	return eval.Evaluate(expr, cfg.environment())
}

// render turns a successful Eval result into language spec §6's rendered
// form, and a failing one into its three-line diagnostic block (falling
// back to the plain error text when the failure carries no span, e.g. an
// I/O-level failure that never reached the pipeline).
func render(source string, v eval.Value, err error) (string, error) {
	if err != nil {
		if diag, ok := err.(*errors.Diagnostic); ok {
			return diag.Render(source), err
		}
		return err.Error(), err
	}
	return eval.Render(v), nil
}

// EvalLine implements the shell's eval(line) collaborator interface
// (language spec §6): it evaluates one line of source against the built-in
// library plus any configured globals and
// returns the rendered result or a diagnostic block. Colon-prefixed shell
// commands (type inspection, environment listing, exit) are the shell's
// own concern and are not part of this interface.
func EvalLine(line string, opts ...Option) (string, error) {
	v, err := Eval(line, opts...)
	return render(line, v, err)
}

// RunSource implements the file runner's runSource(text) collaborator
// interface (language spec §6): it evaluates the whole file and returns
// the rendered top-level value, or a diagnostic block paired with a
// non-nil error so the caller can set a non-zero exit status.
func RunSource(text string, opts ...Option) (string, error) {
	v, err := Eval(text, opts...)
	return render(text, v, err)
}

// RunFile reads path and evaluates it via RunSource, passing path on with
// WithFilename (rendered diagnostics do not include it).
func RunFile(path string, opts ...Option) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	opts = append(opts, WithFilename(path))
	return RunSource(string(data), opts...)
}
