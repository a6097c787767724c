package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mkaran/relpub/internal/artifact"
	"github.com/mkaran/relpub/internal/forge"
)

func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)

	// Local lazy instance ensures t.Parallel() safety
	lazy := &LazyManager{}

	rootCmd := NewRootCmd(lazy, logLevel, stderr)
	rootCmd.SetArgs(args[1:]) // Skip the program name
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print error to stderr for script tests and CLI users (SilenceErrors is set)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}

	return nil
}

// ExitCode maps a Run error to the process exit status. The two pre-flight
// failure classes get distinct codes so callers can tell "build the asset"
// apart from "install the tool".
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var missingAsset *artifact.MissingAssetError
	var missingTool *forge.ToolMissingError
	switch {
	case errors.As(err, &missingAsset):
		return 2
	case errors.As(err, &missingTool):
		return 3
	default:
		return 1
	}
}
