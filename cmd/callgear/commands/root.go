package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/callgear/pkg/cli"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "callgear",
	Short: "Bridge live phone calls to speech and language AI services",
	Long: `callgear - A real-time bridge between phone calls and AI services.

The server answers the telephony provider's call-setup webhook, opens a
duplex media stream per call, and runs each call through speech
recognition, chat completion, and speech synthesis. When a reply indicates
scheduling intent, a follow-up text message with the booking link is sent.

Configuration lives in ~/.callgear/config.yaml and can be overridden with
environment variables (OPENAI_API_KEY, TWILIO_*, CALLGEAR_*).

Examples:
  # Run the server on the configured port
  callgear serve

  # Run with a specific config file
  callgear serve --config ./config.yaml

  # Inspect the resolved configuration (secrets redacted)
  callgear config`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.callgear/config.yaml)")
}

// loadConfig loads the configuration honoring the --config flag.
func loadConfig() (*cli.Config, error) {
	if configPath != "" {
		cfg, err := cli.LoadConfigWithPath(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := cli.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
