package app

import (
	"github.com/spf13/cobra"
)

// NewCheckCmd returns a new cobra command running the pre-flight checks only.
func NewCheckCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the pre-flight checks without publishing anything",
		Long: `
Verify that the release tool is installed and the prebuilt asset exists at
the configured path. Nothing is pushed, tagged or published.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.Check(cmd.Context())
		},
	}

	return cmd
}
