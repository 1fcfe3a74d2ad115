package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ladderbot/ladderbot/pkg/version"
)

func init() {
	RootCmd.AddCommand(VersionCmd)
}

var VersionCmd = &cobra.Command{
	Use:          "version",
	Short:        "show version name",
	SilenceUsage: true,

	// version does not need the config file or credentials
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },

	Run: func(cmd *cobra.Command, args []string) {
		if version.BuildTime != "" {
			fmt.Printf("%s (built %s)\n", version.Version, version.BuildTime)
			return
		}
		fmt.Println(version.Version)
	},
}
