package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkaran/relpub/internal/artifact"
)

func TestCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("runs pre-flight only", func(t *testing.T) {
		t.Parallel()
		mgr := &MockManager{}
		mgr.On("Check", mock.Anything).Return(nil)

		root, _, _ := newTestRootCmd(mgr)
		root.SetArgs([]string{"check"})

		require.NoError(t, root.Execute())
		mgr.AssertExpectations(t)
		mgr.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("propagates a missing asset", func(t *testing.T) {
		t.Parallel()
		wantErr := &artifact.MissingAssetError{Path: "dist/app.zip"}
		mgr := &MockManager{}
		mgr.On("Check", mock.Anything).Return(wantErr)

		root, _, _ := newTestRootCmd(mgr)
		root.SetArgs([]string{"check"})

		err := root.Execute()
		var missing *artifact.MissingAssetError
		require.ErrorAs(t, err, &missing)
	})

	t.Run("propagates other errors", func(t *testing.T) {
		t.Parallel()
		mgr := &MockManager{}
		mgr.On("Check", mock.Anything).Return(errors.New("boom"))

		root, _, _ := newTestRootCmd(mgr)
		root.SetArgs([]string{"check"})

		require.Error(t, root.Execute())
	})
}
