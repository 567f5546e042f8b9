//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/manfetch/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager(t *testing.T) {
	t.Parallel()

	t.Run("recycles browser after max pages", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(2, "")
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		require.NotNil(t, first)

		manager.PageDone()
		manager.PageDone()

		second := manager.Browser()
		require.NotNil(t, second)
		assert.NotSame(t, first, second)
	})

	t.Run("keeps browser below max pages", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(5, "")
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		manager.PageDone()

		assert.Same(t, first, manager.Browser())
	})

	t.Run("returns nil browser after close", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(0, "")
		require.NoError(t, err)
		require.NoError(t, manager.Close())

		assert.Nil(t, manager.Browser())
	})
}
