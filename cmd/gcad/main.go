// Command gcad compiles a CAD script into a G-code program.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fpgaminer/gcad"
	"github.com/fpgaminer/gcad/pkg/evaluator"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gcad <script>",
	Short: "Compile a gcad CAD script into G-code",
	Long: `gcad compiles a CAD script describing machining operations
(pockets, drills, grooves) into a metric, absolute-coordinate G-code
program with material-appropriate feeds and speeds.`,
	Version: gcad.Version(),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}

		out, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()

		err = gcad.Generate(string(source), out,
			evaluator.WithLogger(logger),
			evaluator.WithDebug(verbose),
		)
		if err != nil {
			return err
		}

		logger.Debug("wrote G-code", "path", outputPath)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output G-code file (required)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.MarkFlagRequired("output")
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
