package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show an account summary",
		Long:  `Shows the server health, your subscription state, and recent sessions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			fmt.Println("PitchPal Status")
			fmt.Println("===============")
			fmt.Println()

			if err := apiClient.Health().Check(ctx); err != nil {
				fmt.Printf("Server: unreachable (%v)\n", err)
				return nil
			}
			fmt.Println("Server: healthy")
			fmt.Println()

			sub, err := apiClient.Subscriptions().Get(ctx, userID())
			if err != nil {
				fmt.Printf("Subscription: unavailable (%v)\n", err)
			} else {
				remaining := "unlimited"
				if sub.Limits.DailySessions >= 0 {
					left := sub.Limits.DailySessions - sub.Usage.SessionsToday
					if left < 0 {
						left = 0
					}
					remaining = strconv.Itoa(left)
				}
				fmt.Printf("Tier:               %s\n", sub.User.SubscriptionTier)
				fmt.Printf("Sessions today:     %d\n", sub.Usage.SessionsToday)
				fmt.Printf("Remaining today:    %s\n", remaining)
				fmt.Printf("Sessions (30 days): %d\n", sub.Usage.SessionsThisMonth)
			}
			fmt.Println()

			sessions, err := apiClient.Sessions().List(ctx, userID())
			if err != nil {
				fmt.Printf("Sessions: unavailable (%v)\n", err)
				return nil
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions yet. Create one with: pitchpal session create")
				return nil
			}

			fmt.Println("Recent sessions:")
			table := NewTable("ID", "TITLE", "SCORE", "CREATED")
			max := 5
			if len(sessions) < max {
				max = len(sessions)
			}
			for _, s := range sessions[:max] {
				table.AddRow(
					strconv.FormatInt(s.ID, 10),
					truncate(s.Title, 40),
					formatScore(s.OverallScore),
					s.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()
			return nil
		},
	}
}
