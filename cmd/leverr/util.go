package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/leverr-lang/leverr/errors"
)

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}

func processColorFlag() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
}

func printFatal(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("%s", err))
}

func printDiagnostic(block string) {
	if color.NoColor {
		fmt.Fprintln(os.Stderr, block)
		return
	}
	fmt.Fprintln(os.Stderr, errors.RenderBlockColor(block))
}
