// Package cli provides configuration loading and terminal output helpers for
// the callgear command-line tool.
//
// Configuration is stored in ~/.callgear/config.yaml and may be overridden
// per field with environment variables, so the server can run fully
// env-configured in containers.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig()
//
//	cli.Output(cfg.Redacted(), cli.OutputOptions{Format: cli.FormatYAML})
package cli
