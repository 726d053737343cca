package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gofrs/uuid"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/leverr-lang/leverr"
	"github.com/leverr-lang/leverr/infer"
	"github.com/leverr-lang/leverr/parser"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "repl",
		Short:  "Start the interactive shell",
		Hidden: true, // the root command starts the REPL automatically when stdin is a terminal
		RunE: func(cmd *cobra.Command, args []string) error {
			processColorFlag()
			return runRepl()
		},
	}
}

// runRepl implements the shell's eval(line) collaborator interface
// (language spec §6): each line is rendered or diagnosed by leverr.EvalLine,
// plus three colon-prefixed commands the spec assigns to the shell itself —
// type inspection, environment listing, and exit.
func runRepl() error {
	sessionID := uuid.Must(uuid.NewV4())
	log.Debug().Str("session", sessionID.String()).Msg("repl started")

	historyPath, err := historyFilePath()
	if err != nil {
		historyPath = ""
	}
	history := loadHistory(historyPath)

	stdout := os.Stdout
	fmt.Fprintln(stdout, "leverr shell — :type <expr>, :env, :quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(stdout, color.CyanString("leverr> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		history = append(history, line)

		switch {
		case line == ":quit" || line == ":exit":
			saveHistory(historyPath, history)
			return nil
		case line == ":env":
			printEnv(stdout)
			continue
		case strings.HasPrefix(line, ":type "):
			printType(stdout, strings.TrimPrefix(line, ":type "))
			continue
		}

		out, err := leverr.EvalLine(line, leverr.WithStdout(stdout))
		if err != nil {
			printDiagnostic(out)
			continue
		}
		fmt.Fprintln(stdout, out)
	}
	saveHistory(historyPath, history)
	return scanner.Err()
}

func printEnv(w *os.File) {
	names := make([]string, 0, len(infer.BuiltinEnv()))
	for name := range infer.BuiltinEnv() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func printType(w *os.File, src string) {
	expr, err := parser.Parse(src)
	if err != nil {
		printDiagnostic(err.Error())
		return
	}
	t, err := infer.Infer(expr, infer.BuiltinEnv())
	if err != nil {
		printDiagnostic(err.Error())
		return
	}
	fmt.Fprintln(w, t.String())
}

func historyFilePath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".leverr_history"), nil
}

func loadHistory(path string) []string {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func saveHistory(path string, lines []string) {
	if path == "" || len(lines) == 0 {
		return
	}
	_ = os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}
