package app

import (
	"time"

	"github.com/spf13/cobra"
)

// NewPublishCmd returns a new cobra command running the full publish workflow.
func NewPublishCmd(mgr Manager) *cobra.Command {
	var waitAsset time.Duration

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the configured release to the forge",
		Long: `
Run the whole release workflow: verify the release tool and the prebuilt
asset (pre-flight, before anything mutates), repoint the remote, rebase and
push the primary branch, force-move the release tag, then replace the hosted
release with the asset attached.

Re-running with unchanged inputs leaves the remote, tag and release exactly
as a single run would. Re-running after new commits moves the tag and
rebuilds the release against them.`,
		Args: cobra.NoArgs,
		Example: `
relpub publish
relpub publish --wait-asset 2m`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.Publish(cmd.Context(), PublishOptions{WaitForAsset: waitAsset})
		},
	}

	cmd.Flags().DurationVar(&waitAsset, "wait-asset", 0,
		"wait up to this long for the release asset to appear instead of failing pre-flight")

	return cmd
}
