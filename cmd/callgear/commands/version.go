package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/haivivi/callgear/pkg/cli"
)

// Version is the build version, overridable with -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(cli.KV("version", Version))
		fmt.Println(cli.KV("go", runtime.Version()))
		fmt.Println(cli.KV("platform", runtime.GOOS+"/"+runtime.GOARCH))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
