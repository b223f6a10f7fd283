package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	// FormatYAML outputs as YAML (default for terminal).
	FormatYAML OutputFormat = "yaml"
	// FormatJSON outputs as JSON.
	FormatJSON OutputFormat = "json"
)

// OutputOptions configures output behavior.
type OutputOptions struct {
	// Format is the output format (yaml, json).
	Format OutputFormat

	// Writer is an optional custom writer. Defaults to stdout.
	Writer io.Writer
}

// Output writes the result to the configured destination.
func Output(result any, opts OutputOptions) error {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("cli: encode json: %w", err)
		}
	case FormatYAML, "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("cli: encode yaml: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cli: unsupported output format %q", opts.Format)
	}
	return nil
}
