package nevent

import (
	"reflect"
	"testing"

	"github.com/juchiast/neovide/internal/ntest"
	"github.com/juchiast/neovide/nchan"
	"github.com/stretchr/testify/require"
)

func TestAggregator_mismatchedEntriesPanic(t *testing.T) {
	t.Parallel()

	t.Run("sender", func(t *testing.T) {
		t.Parallel()

		a := New(ntest.NewLogger(t), Config{})

		tx, _ := nchan.New[string]()
		a.senders[reflect.TypeFor[int]()] = nchan.AttachTyped(a.log, tx)

		require.Panics(t, func() {
			_ = Send(a, 1)
		})
	})

	t.Run("receiver", func(t *testing.T) {
		t.Parallel()

		a := New(ntest.NewLogger(t), Config{})

		_, rx := nchan.New[string]()
		a.unclaimed[reflect.TypeFor[int]()] = rx

		require.Panics(t, func() {
			_ = Register[int](a)
		})
	})
}
