package app

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/mkaran/relpub/internal/config"
	"github.com/mkaran/relpub/internal/forge"
	"github.com/mkaran/relpub/internal/repo"
)

type MockManager struct {
	mock.Mock
	cfg *config.Config
}

func (m *MockManager) Publish(ctx context.Context, opts PublishOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func (m *MockManager) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockManager) Config() *config.Config {
	return m.cfg
}

// FakeGitter records git operations in order; any error field set makes the
// corresponding operation fail.
type FakeGitter struct {
	Calls []string

	SetRemoteErr error
	SyncErr      error
	TagErr       error
	PushTagErr   error
	HeadRev      repo.Revision
}

func (f *FakeGitter) SetRemote(_ context.Context, name, url string) error {
	f.Calls = append(f.Calls, fmt.Sprintf("set-remote %s %s", name, url))
	return f.SetRemoteErr
}

func (f *FakeGitter) SyncBranch(_ context.Context, remote, branch string) error {
	f.Calls = append(f.Calls, fmt.Sprintf("sync %s %s", remote, branch))
	return f.SyncErr
}

func (f *FakeGitter) ForceTag(_ context.Context, tag string) error {
	f.Calls = append(f.Calls, "tag "+tag)
	return f.TagErr
}

func (f *FakeGitter) PushTagForce(_ context.Context, remote, tag string) error {
	f.Calls = append(f.Calls, fmt.Sprintf("push-tag %s %s", remote, tag))
	return f.PushTagErr
}

func (f *FakeGitter) Head(_ context.Context) (repo.Revision, error) {
	f.Calls = append(f.Calls, "head")
	if f.HeadRev == "" {
		return "abc1234", nil
	}
	return f.HeadRev, nil
}

// FakeReleaser records release operations in order.
type FakeReleaser struct {
	Calls []string

	AvailableErr error
	ViewRelease  *forge.Release
	ViewErr      error
	DeleteErr    error
	CreateErr    error
}

func (f *FakeReleaser) Available() error {
	f.Calls = append(f.Calls, "available")
	return f.AvailableErr
}

func (f *FakeReleaser) View(_ context.Context, tag string) (*forge.Release, error) {
	f.Calls = append(f.Calls, "view "+tag)
	if f.ViewRelease == nil && f.ViewErr == nil {
		return nil, &forge.ReleaseNotFoundError{Tag: tag}
	}
	return f.ViewRelease, f.ViewErr
}

func (f *FakeReleaser) Delete(_ context.Context, tag string) error {
	f.Calls = append(f.Calls, "delete "+tag)
	return f.DeleteErr
}

func (f *FakeReleaser) Create(_ context.Context, rel forge.Release, assetPath string) error {
	f.Calls = append(f.Calls, fmt.Sprintf("create %s %s", rel.TagName, assetPath))
	return f.CreateErr
}
