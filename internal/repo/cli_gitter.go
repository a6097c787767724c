package repo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIGitter is the concrete implementation of Gitter using the git CLI.
// Every command runs with the repository directory pinned, so behaviour does
// not depend on the caller's working directory.
type CLIGitter struct {
	dir string
}

// NewCLIGitter creates a new CLIGitter operating on the repository at dir.
func NewCLIGitter(dir string) *CLIGitter {
	return &CLIGitter{dir: dir}
}

// git runs a git subcommand and returns its combined output. Failures carry
// the underlying tool's output so conflicts and auth errors surface verbatim.
func (g *CLIGitter) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s failed: %w (output: %s)",
			args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

func (g *CLIGitter) SetRemote(ctx context.Context, name, url string) error {
	// Removal of an absent binding fails; that is the expected first-run
	// state, so the error is deliberately dropped.
	_, _ = g.git(ctx, "remote", "remove", name)

	if _, err := g.git(ctx, "remote", "add", name, url); err != nil {
		return err
	}
	return nil
}

func (g *CLIGitter) SyncBranch(ctx context.Context, remote, branch string) error {
	if _, err := g.git(ctx, "fetch", remote, branch); err != nil {
		return err
	}
	if _, err := g.git(ctx, "pull", "--rebase", remote, branch); err != nil {
		return err
	}
	if _, err := g.git(ctx, "push", "-u", remote, branch); err != nil {
		return err
	}
	return nil
}

func (g *CLIGitter) ForceTag(ctx context.Context, tag string) error {
	_, err := g.git(ctx, "tag", "-f", tag)
	return err
}

func (g *CLIGitter) PushTagForce(ctx context.Context, remote, tag string) error {
	_, err := g.git(ctx, "push", "-f", remote, tag)
	return err
}

func (g *CLIGitter) Head(ctx context.Context) (Revision, error) {
	out, err := g.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("could not resolve HEAD: %w", err)
	}
	return Revision(strings.TrimSpace(out)), nil
}
