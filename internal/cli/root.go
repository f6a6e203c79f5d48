package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/UnatyNomsa/pitchpal/pkg/client"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	actingUser   string
	apiClient    *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "pitchpal",
	Short: "PitchPal CLI - Sales Pitch Practice and Coaching",
	Long: `PitchPal CLI provides command-line access to the PitchPal platform
for practicing sales pitches, analyzing recordings and text, tracking
subscription usage, and getting coaching tips.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config commands never need a client
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}
		return initClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.pitchpal/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&actingUser, "user", "u", "", "acting user ID (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	// Register all subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newSubscriptionCmd())
	rootCmd.AddCommand(newTipsCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		configDir := home + "/.pitchpal"
		_ = os.MkdirAll(configDir, 0700)
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PITCHPAL")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")
	viper.SetDefault("user_id", "demo-user")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
		Token:   viper.GetString("auth.token"),
	})
	return nil
}

// userID returns the acting user: flag first, then stored config
func userID() string {
	if actingUser != "" {
		return actingUser
	}
	return viper.GetString("user_id")
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
