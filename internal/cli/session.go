package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UnatyNomsa/pitchpal/pkg/client"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Manage practice sessions",
	}

	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionDeleteCmd())
	cmd.AddCommand(newSessionAnalyzeCmd())

	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your practice sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := apiClient.Sessions().List(context.Background(), userID())
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(sessions)
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions found")
				return nil
			}

			table := NewTable("ID", "TITLE", "SCORE", "DURATION", "CREATED")
			for _, s := range sessions {
				duration := "-"
				if s.Duration != nil {
					duration = fmt.Sprintf("%ds", *s.Duration)
				}
				table.AddRow(
					strconv.FormatInt(s.ID, 10),
					truncate(s.Title, 40),
					formatScore(s.OverallScore),
					duration,
					s.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newSessionCreateCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new practice session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := apiClient.Sessions().Create(context.Background(), &client.CreateSessionRequest{
				UserID: userID(),
				Title:  title,
			})
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(session)
			}

			fmt.Printf("Created session %d: %s\n", session.ID, session.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "session title (defaults to a timestamped name)")

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a session with its analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session ID: %s", args[0])
			}

			session, err := apiClient.Sessions().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get session: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(session)
			}

			fmt.Printf("Session %d: %s\n", session.ID, session.Title)
			fmt.Printf("Created:  %s\n", session.CreatedAt.Format("2006-01-02 15:04:05"))
			if !session.Analyzed() {
				fmt.Println("Status:   pending analysis")
				return nil
			}

			fmt.Printf("Duration: %ds\n", *session.Duration)
			fmt.Println()
			fmt.Printf("Overall:   %s\n", formatScore(session.OverallScore))
			fmt.Printf("Tone:      %s\n", formatScore(session.ToneScore))
			fmt.Printf("Clarity:   %s\n", formatScore(session.ClarityScore))
			fmt.Printf("Structure: %s\n", formatScore(session.StructureScore))
			if session.Feedback != nil {
				fmt.Println()
				fmt.Println("Feedback:")
				fmt.Printf("  %s\n", *session.Feedback)
			}
			if len(session.Suggestions) > 0 {
				fmt.Println()
				fmt.Println("Suggestions:")
				for _, s := range session.Suggestions {
					fmt.Printf("  - %s\n", s)
				}
			}
			fmt.Println()
			fmt.Println("Transcript:")
			fmt.Printf("  %s\n", strings.TrimSpace(*session.Transcript))
			return nil
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session ID: %s", args[0])
			}

			if !force {
				fmt.Printf("Delete session %d? (y/N): ", id)
				var answer string
				fmt.Scanln(&answer)
				if strings.ToLower(answer) != "y" {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := apiClient.Sessions().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}

			fmt.Printf("Deleted session %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func newSessionAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <id> <audio-file>",
		Short: "Upload a recording for a session and analyze it",
		Long: `Uploads a pitch recording for an existing session. The recording is
transcribed and scored, and one daily quota slot is consumed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session ID: %s", args[0])
			}

			audio, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open audio file: %w", err)
			}
			defer audio.Close()

			fmt.Println("Analyzing recording...")
			session, err := apiClient.Sessions().Analyze(context.Background(), id, audio, filepath.Base(args[1]))
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(session)
			}

			fmt.Printf("Session %d analyzed\n", session.ID)
			fmt.Printf("Overall:   %s\n", formatScore(session.OverallScore))
			fmt.Printf("Tone:      %s\n", formatScore(session.ToneScore))
			fmt.Printf("Clarity:   %s\n", formatScore(session.ClarityScore))
			fmt.Printf("Structure: %s\n", formatScore(session.StructureScore))
			if session.Feedback != nil {
				fmt.Printf("Feedback:  %s\n", *session.Feedback)
			}
			return nil
		},
	}
}
