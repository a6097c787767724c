package forge

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	toolName    = "gh"
	installHint = "https://cli.github.com/"
)

// lookPath is a variable for exec.LookPath to allow mocking in tests.
var lookPath = exec.LookPath

// runnerFunc executes the release tool and returns its combined output.
type runnerFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

func runTool(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, toolName, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// CLIReleaser is the concrete implementation of Releaser using the gh CLI.
// Authentication is delegated entirely to the tool's own credential store.
type CLIReleaser struct {
	dir string
	run runnerFunc
}

// NewCLIReleaser creates a CLIReleaser operating on the repository at dir.
func NewCLIReleaser(dir string) *CLIReleaser {
	return &CLIReleaser{dir: dir, run: runTool}
}

func (r *CLIReleaser) Available() error {
	if _, err := lookPath(toolName); err != nil {
		return &ToolMissingError{Tool: toolName, Hint: installHint}
	}
	return nil
}

func (r *CLIReleaser) View(ctx context.Context, tag string) (*Release, error) {
	out, err := r.run(ctx, r.dir, "release", "view", tag, "--json", "tagName,name,body,assets")
	if err != nil {
		if isNotFound(out) {
			return nil, &ReleaseNotFoundError{Tag: tag}
		}
		return nil, fmt.Errorf("%s release view failed: %w (output: %s)",
			toolName, err, strings.TrimSpace(string(out)))
	}

	rel := &Release{
		TagName: gjson.GetBytes(out, "tagName").String(),
		Title:   gjson.GetBytes(out, "name").String(),
		Notes:   gjson.GetBytes(out, "body").String(),
	}
	gjson.GetBytes(out, "assets").ForEach(func(_, a gjson.Result) bool {
		rel.Assets = append(rel.Assets, Asset{
			Name: a.Get("name").String(),
			Size: a.Get("size").Int(),
			URL:  a.Get("url").String(),
		})
		return true
	})
	return rel, nil
}

func (r *CLIReleaser) Delete(ctx context.Context, tag string) error {
	out, err := r.run(ctx, r.dir, "release", "delete", tag, "--yes")
	if err != nil {
		if isNotFound(out) {
			return &ReleaseNotFoundError{Tag: tag}
		}
		return fmt.Errorf("%s release delete failed: %w (output: %s)",
			toolName, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (r *CLIReleaser) Create(ctx context.Context, rel Release, assetPath string) error {
	args := []string{"release", "create", rel.TagName, assetPath, "--title", rel.Title}
	if rel.Notes != "" {
		args = append(args, "--notes", rel.Notes)
	}

	out, err := r.run(ctx, r.dir, args...)
	if err != nil {
		return fmt.Errorf("%s release create failed: %w (output: %s)",
			toolName, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// isNotFound recognises the tool's not-found diagnostics. gh prints
// "release not found" on view/delete of a missing release.
func isNotFound(out []byte) bool {
	s := strings.ToLower(string(out))
	return strings.Contains(s, "release not found") || strings.Contains(s, "could not find")
}
