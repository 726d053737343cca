package errors

import (
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgRed, color.Bold)
	caretColor  = color.New(color.FgRed, color.Bold)
)

// RenderBlockColor highlights the header and caret lines of an
// already-rendered diagnostic block (the output of Diagnostic.Render), for
// use by the shell and file-runner collaborators when their output is
// attached to a terminal.
func RenderBlockColor(block string) string {
	lines := strings.Split(block, "\n")
	if len(lines) == 0 {
		return block
	}
	lines[0] = headerColor.Sprint(lines[0])
	if len(lines) == 3 {
		lines[2] = caretColor.Sprint(lines[2])
	}
	return strings.Join(lines, "\n")
}
