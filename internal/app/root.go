package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkaran/relpub/internal/artifact"
	"github.com/mkaran/relpub/internal/config"
	"github.com/mkaran/relpub/internal/forge"
	"github.com/mkaran/relpub/internal/repo"
	"github.com/mkaran/relpub/internal/validator"
)

// Version is the current version of relpub, set at build time.
var Version = "dev"

const InitCmdName = "init"

var LongDescription = `
relpub publishes a prebuilt single-binary archive as a hosted release on a
git forge. One command repoints the remote, synchronizes the primary branch,
force-moves the release tag and replaces the hosted release with the new
artifact attached. Every stage is idempotent or force-overwriting, so a
failed run can simply be re-run.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer) *cobra.Command {
	var debug bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "relpub",
		Short:         "Publish a prebuilt release archive to a git forge",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help, completion and init commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitCmdName {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			// 2. Build Dependencies
			compiler := validator.NewSanthoshCompiler()

			cfg, err := config.Load(resolveConfigPath(configPath), compiler)
			if err != nil {
				return err
			}

			logger, _, err := setupLogger(stderr, ll, cfg.BaseDir())
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			gitter := repo.NewCLIGitter(cfg.BaseDir())
			releaser := forge.NewCLIReleaser(cfg.BaseDir())
			locator := artifact.NewLocator(cfg.BuildHint)
			waiter := artifact.NewWaiter(logger)

			// 3. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, cfg, gitter, releaser, locator, waiter)
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "f", "", "path to configuration file (overrides env/default)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	// Subcommands
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewPublishCmd(lazy))
	rootCmd.AddCommand(NewCheckCmd(lazy))

	return rootCmd
}

// resolveConfigPath picks the configuration file: flag, then environment
// variable, then relpub.yml in the current directory.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(config.ConfigEnvVar); envValue != "" {
		return envValue
	}
	return config.ConfigFileName
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
