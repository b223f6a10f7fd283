package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/callgear/pkg/cli"
)

var configOutputFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration (secrets redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Println(cli.KV("config", cfg.Path()))
		if !cfg.DispatchEnabled() {
			fmt.Println(cli.Warnln("follow-up dispatch disabled: scheduling link, contact, or telephony credentials missing"))
		}
		return cli.Output(cfg.Redacted(), cli.OutputOptions{
			Format: cli.OutputFormat(configOutputFormat),
		})
	},
}

func init() {
	configCmd.Flags().StringVarP(&configOutputFormat, "output", "o", "yaml", "output format (yaml, json)")
	rootCmd.AddCommand(configCmd)
}
