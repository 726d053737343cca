package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	lvtesting "github.com/leverr-lang/leverr/testing"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [patterns...]",
		Short: "Run *_test.lev files",
		RunE:  runTest,
	}
	cmd.Flags().StringP("run", "r", "", "run only test cases matching this pattern")
	viper.BindPFlags(cmd.Flags())
	return cmd
}

func runTest(cmd *cobra.Command, args []string) error {
	processColorFlag()

	cfg := &lvtesting.Config{
		Patterns:   args,
		RunPattern: viper.GetString("run"),
		Verbose:    viper.GetBool("verbose"),
	}

	summary, err := lvtesting.Run(cfg)
	if err != nil {
		return err
	}

	out := lvtesting.NewOutput(os.Stdout, cfg.Verbose, !viper.GetBool("no-color"))
	out.PrintResults(summary)

	if !summary.Success() {
		os.Exit(1)
	}
	return nil
}
