// Command leverr is the file runner and interactive shell for the
// language (language spec §6's two collaborator interfaces: runSource for
// files, eval(line) for the shell).
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:     "leverr [file]",
		Short:   "Run or explore Leverr source",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runRoot,
	}

	root.PersistentFlags().String("code", "", "code to evaluate")
	root.PersistentFlags().Bool("stdin", false, "read code from stdin")
	root.PersistentFlags().Bool("no-color", false, "disable colored diagnostics")
	root.PersistentFlags().Bool("verbose", false, "log pipeline stage timing to stderr")
	viper.BindPFlags(root.PersistentFlags())
	viper.BindEnv("no-color", "NO_COLOR")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("leverr %s (%s)\n", version, commit)
		},
	})
	root.AddCommand(newReplCmd())
	root.AddCommand(newTestCmd())

	if err := root.Execute(); err != nil {
		printFatal(err)
		os.Exit(1)
	}
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
