package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for telscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telscan",
		Short: "Audit the phone links of a web page",
		Long: `telscan checks that every tel: link on a web page dials one of the
correct phone numbers of the site, and that the text shown for the link
is the same number.

Each link is reported as Pass, Warning (dials a correct number but shows
something else), Critical Mistake (dials a number that is not in the list),
or N/A when no reference numbers were given.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
