package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leverr-lang/leverr"
)

func runRoot(cmd *cobra.Command, args []string) error {
	processColorFlag()

	if shouldRunRepl(cmd, args) {
		return runRepl()
	}

	source, err := sourceToRun(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	opts := []leverr.Option{leverr.WithStdout(os.Stdout)}
	if len(args) > 0 {
		opts = append(opts, leverr.WithFilename(args[0]))
	}
	rendered, evalErr := leverr.RunSource(source, opts...)
	if viper.GetBool("verbose") {
		log.Info().Dur("elapsed", time.Since(start)).Msg("evaluation finished")
	}
	if evalErr != nil {
		printDiagnostic(rendered)
		return fmt.Errorf("evaluation failed")
	}
	fmt.Println(rendered)
	return nil
}

func shouldRunRepl(cmd *cobra.Command, args []string) bool {
	if viper.GetBool("stdin") {
		return false
	}
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		return false
	}
	if len(args) > 0 {
		return false
	}
	return isTerminalIO()
}

// sourceToRun determines which of the three input sources (--code, --stdin,
// a file argument) supplies the program text; at most one may be given,
// and with none the --code value (empty by default) is returned.
func sourceToRun(cmd *cobra.Command, args []string) (string, error) {
	codeSet := cmd.Flags().Changed("code")
	stdinSet := viper.GetBool("stdin")
	fileGiven := len(args) > 0

	count := 0
	for _, set := range []bool{codeSet, stdinSet, fileGiven} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", goerrors.New("multiple input sources specified")
	}

	switch {
	case stdinSet:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case fileGiven:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return viper.GetString("code"), nil
	}
}
