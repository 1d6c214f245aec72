// Command driven runs 8080 program images against the emulator core,
// either to completion, interactively under the debugger, or as a one-shot
// register/flag dump after a fixed number of steps.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"driven/log"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "driven",
		Short: "An Intel 8080 emulator core, debugger, and loader.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.SetLevel(level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd(), newDebugCmd(), newDumpCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
