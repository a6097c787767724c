package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mkaran/relpub/internal/config"
)

// NewInitCmd returns a new cobra command for creating a publisher configuration.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   InitCmdName + " [dirpath]",
		Short: "Create a default relpub configuration file",
		Long:  `Write a commented default relpub.yml into the given directory (default: current directory).`,
		Args:  cobra.MaximumNArgs(1),
		Example: `
relpub init
relpub init ./my-project
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirpath := "."
			if len(args) > 0 {
				dirpath = args[0]
			}

			if err := os.MkdirAll(dirpath, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

			configPath := filepath.Join(dirpath, config.ConfigFileName)

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("configuration already exists: %s", configPath)
			}

			if err := os.WriteFile(configPath, []byte(config.DefaultConfigContent), 0o600); err != nil {
				return fmt.Errorf("failed to write configuration file: %w", err)
			}

			cmd.Printf("Successfully created configuration at: %s\n", configPath)
			cmd.Println("\nEdit repositoryUrl, tag and asset, then verify with:")
			cmd.Printf("  relpub check\n")

			return nil
		},
	}

	return cmd
}
