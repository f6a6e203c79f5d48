package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newTipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tips",
		Short: "Get daily coaching tips",
		RunE: func(cmd *cobra.Command, args []string) error {
			tips, err := apiClient.Analysis().Tips(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get tips: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(map[string][]string{"tips": tips})
			}

			fmt.Println("Today's coaching tips:")
			for i, tip := range tips {
				fmt.Printf("  %d. %s\n", i+1, tip)
			}
			return nil
		},
	}
}
