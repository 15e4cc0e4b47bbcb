package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "santa",
		Short:        "santa — draws a Secret Santa and emails every participant their match",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .santa/logs/santa.log")

	cmd.AddCommand(runCmd(&debug))
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
