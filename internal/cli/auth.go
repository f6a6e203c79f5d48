package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
	}

	cmd.AddCommand(newAuthTokenCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid := userID()

			token, err := apiClient.Auth().Token(context.Background(), uid, email)
			if err != nil {
				return fmt.Errorf("failed to mint token: %w", err)
			}

			viper.Set("auth.token", token.AccessToken)
			viper.Set("user_id", uid)
			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Authenticated as %s (token expires in %ds)\n", uid, token.ExpiresIn)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email to associate with the user")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			if err := writeConfig(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid := userID()
			sub, err := apiClient.Subscriptions().Get(context.Background(), uid)
			if err != nil {
				return fmt.Errorf("failed to fetch user: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(sub.User)
			}

			fmt.Printf("User:  %s\n", sub.User.ID)
			if sub.User.Email != nil {
				fmt.Printf("Email: %s\n", *sub.User.Email)
			}
			fmt.Printf("Tier:  %s\n", sub.User.SubscriptionTier)
			if viper.GetString("auth.token") != "" {
				fmt.Println("Token: stored")
			} else {
				fmt.Println("Token: none (requests use the userId query parameter)")
			}
			return nil
		},
	}
}
