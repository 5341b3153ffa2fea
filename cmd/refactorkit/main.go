// Command refactorkit is the command-line caller of the refactor
// pipeline. The pipeline itself is a library; this binary owns the
// concerns the library refuses to: flag parsing, provider resolution,
// rendering, and exit codes.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"refactorkit/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "refactorkit",
	Short: "Multi-pass, model-driven code refactoring",
	Long: `refactorkit pushes a source file through one model-driven rewrite per
enabled concern (security, performance, memory, correctness,
maintainability, reliability), each pass consuming the previous pass's
output, and reports the final code with per-concern rationale.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	os.Exit(run())
}

// run owns the exit code so deferred cleanup still fires; os.Exit
// inside a subcommand would skip the log flush.
func run() int {
	defer logging.CloseAll()

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newConcernsCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHalted) {
			// Halts already printed their banner and message.
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
