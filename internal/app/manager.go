package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkaran/relpub/internal/artifact"
	"github.com/mkaran/relpub/internal/config"
	"github.com/mkaran/relpub/internal/forge"
	"github.com/mkaran/relpub/internal/repo"
)

// PublishOptions adjusts a single publish run.
type PublishOptions struct {
	// WaitForAsset, when non-zero, waits up to this long for the release
	// asset to appear instead of failing pre-flight immediately.
	WaitForAsset time.Duration
}

// Manager defines the business logic for publishing releases.
type Manager interface {
	// Publish runs the whole workflow: pre-flight, remote bind, branch
	// sync, tag move, release replace. First failure aborts the run.
	Publish(ctx context.Context, opts PublishOptions) error

	// Check runs the pre-flight checks only, mutating nothing.
	Check(ctx context.Context) error

	Config() *config.Config
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation,
// allowing for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Publish(ctx context.Context, opts PublishOptions) error {
	return l.check().Publish(ctx, opts)
}

func (l *LazyManager) Check(ctx context.Context) error {
	return l.check().Check(ctx)
}

func (l *LazyManager) Config() *config.Config {
	return l.check().Config()
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger   *slog.Logger
	cfg      *config.Config
	gitter   repo.Gitter
	releaser forge.Releaser
	locator  *artifact.Locator
	waiter   *artifact.Waiter
	out      io.Writer
}

func NewCLIManager(
	l *slog.Logger,
	cfg *config.Config,
	g repo.Gitter,
	r forge.Releaser,
	loc *artifact.Locator,
	w *artifact.Waiter,
) *CLIManager {
	return &CLIManager{
		logger:   l,
		cfg:      cfg,
		gitter:   g,
		releaser: r,
		locator:  loc,
		waiter:   w,
		out:      os.Stdout,
	}
}

func (m *CLIManager) Config() *config.Config {
	return m.cfg
}

// preflight verifies the release tool and the asset before anything mutates.
// Both checks are independent, so they run concurrently; the first failure
// wins and nothing downstream executes.
func (m *CLIManager) preflight(ctx context.Context, opts PublishOptions) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.releaser.Available()
	})
	g.Go(func() error {
		if opts.WaitForAsset > 0 {
			return m.waiter.Wait(gctx, m.cfg.AssetPath(), opts.WaitForAsset)
		}
		return m.locator.Locate(m.cfg.AssetPath())
	})

	return g.Wait()
}

func (m *CLIManager) Publish(ctx context.Context, opts PublishOptions) error {
	m.logger.Debug("publishing release", "tag", m.cfg.Tag, "remote", m.cfg.Remote,
		"url", m.cfg.RepositoryURL, "asset", m.cfg.AssetPath())

	if err := m.preflight(ctx, opts); err != nil {
		return err
	}

	m.logger.Debug("binding remote", "remote", m.cfg.Remote, "url", m.cfg.RepositoryURL)
	if err := m.gitter.SetRemote(ctx, m.cfg.Remote, m.cfg.RepositoryURL); err != nil {
		return err
	}

	m.logger.Debug("synchronizing branch", "remote", m.cfg.Remote, "branch", m.cfg.Branch)
	if err := m.gitter.SyncBranch(ctx, m.cfg.Remote, m.cfg.Branch); err != nil {
		return err
	}

	m.logger.Debug("moving tag", "tag", m.cfg.Tag)
	if err := m.gitter.ForceTag(ctx, m.cfg.Tag); err != nil {
		return err
	}
	if err := m.gitter.PushTagForce(ctx, m.cfg.Remote, m.cfg.Tag); err != nil {
		return err
	}

	// Best-effort delete. On a first-ever publish there is nothing to
	// delete; that is not an error.
	if err := m.releaser.Delete(ctx, m.cfg.Tag); err != nil {
		if !isReleaseNotFound(err) {
			m.logger.Debug("previous release not deleted", "tag", m.cfg.Tag, "reason", err)
		}
	}

	rel := forge.Release{
		TagName: m.cfg.Tag,
		Title:   m.cfg.Release.Title,
		Notes:   m.cfg.Release.Notes,
	}
	if err := m.releaser.Create(ctx, rel, m.cfg.AssetPath()); err != nil {
		return err
	}

	head, err := m.gitter.Head(ctx)
	if err != nil {
		head = "HEAD"
	}
	fmt.Fprintf(m.out, "🚀 Published release %s at %s\n", m.cfg.Tag, head)
	return nil
}

func (m *CLIManager) Check(ctx context.Context) error {
	m.logger.Debug("running pre-flight checks", "tag", m.cfg.Tag, "asset", m.cfg.AssetPath())

	if err := m.preflight(ctx, PublishOptions{}); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "✅ Release tool available and asset present: %s\n", m.cfg.AssetPath())

	// Read-only presence check: tells the operator whether publish will
	// create the release or replace an existing one.
	rel, err := m.releaser.View(ctx, m.cfg.Tag)
	switch {
	case err == nil && rel != nil:
		fmt.Fprintf(m.out, "ℹ️  Release %s exists with %d asset(s); publish will replace it\n",
			rel.TagName, len(rel.Assets))
	case isReleaseNotFound(err):
		fmt.Fprintf(m.out, "ℹ️  No release exists yet for %s; publish will create it\n", m.cfg.Tag)
	default:
		m.logger.Debug("could not query existing release", "tag", m.cfg.Tag, "reason", err)
	}
	return nil
}

func isReleaseNotFound(err error) bool {
	var notFound *forge.ReleaseNotFoundError
	return errors.As(err, &notFound)
}
