package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "analyze-text [text]",
		Short: "Score pitch text without creating a session",
		Long: `Scores raw pitch text and returns feedback. No session is created and
no daily quota is consumed. Text can be passed as an argument, read
from a file with --file, or piped on stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, file)
			if err != nil {
				return err
			}

			analysis, err := apiClient.Analysis().AnalyzeText(context.Background(), text)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(analysis)
			}

			fmt.Printf("Overall:   %d\n", analysis.OverallScore)
			fmt.Printf("Tone:      %d\n", analysis.ToneScore)
			fmt.Printf("Clarity:   %d\n", analysis.ClarityScore)
			fmt.Printf("Structure: %d\n", analysis.StructureScore)
			fmt.Println()
			fmt.Println("Feedback:")
			fmt.Printf("  %s\n", analysis.Feedback)
			if len(analysis.Suggestions) > 0 {
				fmt.Println()
				fmt.Println("Suggestions:")
				for _, s := range analysis.Suggestions {
					fmt.Printf("  - %s\n", s)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read pitch text from a file")

	return cmd
}

func readText(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	// Fall back to stdin for piped input
	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("no text provided: pass as argument, --file, or stdin")
}
