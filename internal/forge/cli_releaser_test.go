package forge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner records invocations and replays canned responses.
type stubRunner struct {
	calls [][]string
	out   []byte
	err   error
}

func (s *stubRunner) run(_ context.Context, _ string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, args)
	return s.out, s.err
}

func newStubReleaser(out []byte, err error) (*CLIReleaser, *stubRunner) {
	stub := &stubRunner{out: out, err: err}
	r := NewCLIReleaser("/repo")
	r.run = stub.run
	return r, stub
}

func TestCLIReleaser_Available(t *testing.T) {
	origLookPath := lookPath
	defer func() { lookPath = origLookPath }()

	t.Run("tool present", func(t *testing.T) {
		lookPath = func(string) (string, error) { return "/usr/bin/gh", nil }
		r := NewCLIReleaser("/repo")
		require.NoError(t, r.Available())
	})

	t.Run("tool missing", func(t *testing.T) {
		lookPath = func(string) (string, error) { return "", errors.New("not found") }
		r := NewCLIReleaser("/repo")

		err := r.Available()
		require.Error(t, err)

		var missing *ToolMissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "gh", missing.Tool)
		assert.Contains(t, err.Error(), "https://cli.github.com/")
	})
}

func TestCLIReleaser_View(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("parses release JSON", func(t *testing.T) {
		t.Parallel()
		out := []byte(`{
			"tagName": "v0.1",
			"name": "App v0.1",
			"body": "First cut.",
			"assets": [
				{"name": "app.zip", "size": 1234, "url": "https://example.com/app.zip"}
			]
		}`)
		r, stub := newStubReleaser(out, nil)

		rel, err := r.View(ctx, "v0.1")
		require.NoError(t, err)

		assert.Equal(t, "v0.1", rel.TagName)
		assert.Equal(t, "App v0.1", rel.Title)
		assert.Equal(t, "First cut.", rel.Notes)
		require.Len(t, rel.Assets, 1)
		assert.Equal(t, "app.zip", rel.Assets[0].Name)
		assert.Equal(t, int64(1234), rel.Assets[0].Size)

		require.Len(t, stub.calls, 1)
		assert.Equal(t, []string{"release", "view", "v0.1", "--json", "tagName,name,body,assets"}, stub.calls[0])
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		r, _ := newStubReleaser([]byte("release not found"), errors.New("exit status 1"))

		_, err := r.View(ctx, "v0.1")
		var notFound *ReleaseNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "v0.1", notFound.Tag)
	})

	t.Run("other failure propagated with output", func(t *testing.T) {
		t.Parallel()
		r, _ := newStubReleaser([]byte("HTTP 502"), errors.New("exit status 1"))

		_, err := r.View(ctx, "v0.1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "release view failed")
		assert.Contains(t, err.Error(), "HTTP 502")
	})
}

func TestCLIReleaser_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		r, stub := newStubReleaser(nil, nil)

		require.NoError(t, r.Delete(ctx, "v0.1"))
		require.Len(t, stub.calls, 1)
		assert.Equal(t, []string{"release", "delete", "v0.1", "--yes"}, stub.calls[0])
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		r, _ := newStubReleaser([]byte("release not found"), errors.New("exit status 1"))

		err := r.Delete(ctx, "v0.1")
		var notFound *ReleaseNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("other failure propagated", func(t *testing.T) {
		t.Parallel()
		r, _ := newStubReleaser([]byte("HTTP 403"), errors.New("exit status 1"))

		err := r.Delete(ctx, "v0.1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "release delete failed")
	})
}

func TestCLIReleaser_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("with notes", func(t *testing.T) {
		t.Parallel()
		r, stub := newStubReleaser(nil, nil)

		rel := Release{TagName: "v0.1", Title: "App v0.1", Notes: "First cut."}
		require.NoError(t, r.Create(ctx, rel, "/repo/dist/app.zip"))

		require.Len(t, stub.calls, 1)
		assert.Equal(t, []string{
			"release", "create", "v0.1", "/repo/dist/app.zip",
			"--title", "App v0.1", "--notes", "First cut.",
		}, stub.calls[0])
	})

	t.Run("without notes", func(t *testing.T) {
		t.Parallel()
		r, stub := newStubReleaser(nil, nil)

		require.NoError(t, r.Create(ctx, Release{TagName: "v0.1", Title: "v0.1"}, "a.zip"))
		assert.NotContains(t, stub.calls[0], "--notes")
	})

	t.Run("failure propagated", func(t *testing.T) {
		t.Parallel()
		r, _ := newStubReleaser([]byte("asset upload failed"), errors.New("exit status 1"))

		err := r.Create(ctx, Release{TagName: "v0.1", Title: "v0.1"}, "a.zip")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "release create failed")
		assert.Contains(t, err.Error(), "asset upload failed")
	})
}
