package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSubscriptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub"},
		Short:   "Manage your subscription",
	}

	cmd.AddCommand(newSubscriptionGetCmd())
	cmd.AddCommand(newSubscriptionUpgradeCmd())

	return cmd
}

func newSubscriptionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show your subscription tier, limits, and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := apiClient.Subscriptions().Get(context.Background(), userID())
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(sub)
			}

			fmt.Printf("User: %s\n", sub.User.ID)
			fmt.Printf("Tier: %s\n", sub.User.SubscriptionTier)
			fmt.Println()
			fmt.Println("Limits:")
			fmt.Printf("  Daily sessions: %s\n", formatLimit(sub.Limits.DailySessions))
			fmt.Printf("  History:        %s days\n", formatLimit(sub.Limits.HistoryDays))
			fmt.Printf("  Features:       %s\n", strings.Join(sub.Limits.Features, ", "))
			if sub.Limits.MaxUsers > 0 {
				fmt.Printf("  Max users:      %d\n", sub.Limits.MaxUsers)
			}
			fmt.Println()
			fmt.Println("Usage:")
			fmt.Printf("  Sessions today:      %d\n", sub.Usage.SessionsToday)
			fmt.Printf("  Sessions this month: %d\n", sub.Usage.SessionsThisMonth)
			return nil
		},
	}
}

func newSubscriptionUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <tier>",
		Short: "Change your subscription tier (free, pro, team)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier := strings.ToLower(args[0])

			user, err := apiClient.Subscriptions().Upgrade(context.Background(), userID(), tier)
			if err != nil {
				return fmt.Errorf("failed to change tier: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(user)
			}

			fmt.Printf("Subscription changed to %s\n", user.SubscriptionTier)
			return nil
		},
	}
}
