package cart_test

import (
	"testing"

	"github.com/niksmo/shop-assistant/internal/adapter/catalog"
	"github.com/niksmo/shop-assistant/internal/client/cart"
	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	successes []string
	errors    []string
	followUps []string
}

func (n *recordingNotifier) Success(msg string)  { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)    { n.errors = append(n.errors, msg) }
func (n *recordingNotifier) FollowUp(msg string) { n.followUps = append(n.followUps, msg) }

func newDispatcher(t *testing.T) (*cart.Dispatcher, *recordingNotifier) {
	t.Helper()

	c, err := catalog.New()
	require.NoError(t, err)

	n := &recordingNotifier{}
	return cart.NewDispatcher(c, domain.VariantAngular, n), n
}

func addToCart(params domain.ActionParams) domain.Action {
	return domain.Action{Type: domain.ActionAddToCart, Params: params}
}

func TestDispatch(t *testing.T) {
	t.Run("ResolveByID", func(t *testing.T) {
		d, n := newDispatcher(t)

		err := d.Dispatch(addToCart(domain.ActionParams{
			ProductID: "6631", Quantity: 1,
		}))
		require.NoError(t, err)

		lines := d.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, domain.CartLine{ProductID: "6631", Quantity: 1}, lines[0])
		require.Len(t, n.successes, 1)
		assert.Contains(t, n.successes[0], "Angular T-shirt")
		assert.Len(t, n.followUps, 1)
	})

	t.Run("ResolveByNameTable", func(t *testing.T) {
		d, _ := newDispatcher(t)

		err := d.Dispatch(addToCart(domain.ActionParams{
			ProductName: "Angular T-shirt", Quantity: 1,
		}))
		require.NoError(t, err)

		lines := d.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "6631", lines[0].ProductID)
	})

	t.Run("NoIDNoNameIsRejected", func(t *testing.T) {
		d, n := newDispatcher(t)

		err := d.Dispatch(addToCart(domain.ActionParams{Quantity: 1}))
		require.Error(t, err)
		assert.ErrorIs(t, err, cart.ErrUnresolvedProduct)
		assert.Empty(t, d.Lines())
		assert.Len(t, n.errors, 1)
		assert.Empty(t, n.successes)
	})

	t.Run("UnknownNameIsRejected", func(t *testing.T) {
		d, n := newDispatcher(t)

		err := d.Dispatch(addToCart(domain.ActionParams{
			ProductName: "Vue T-shirt", Quantity: 1,
		}))
		require.Error(t, err)
		assert.Empty(t, d.Lines())
		assert.Len(t, n.errors, 1)
	})

	t.Run("UnknownIDIsRejected", func(t *testing.T) {
		d, n := newDispatcher(t)

		err := d.Dispatch(addToCart(domain.ActionParams{
			ProductID: "0000", Quantity: 1,
		}))
		require.Error(t, err)
		assert.Empty(t, d.Lines())
		assert.Len(t, n.errors, 1)
	})

	t.Run("UnknownActionType", func(t *testing.T) {
		d, _ := newDispatcher(t)

		err := d.Dispatch(domain.Action{Type: "removeFromCart"})
		assert.ErrorIs(t, err, cart.ErrUnknownAction)
	})

	t.Run("QuantityClamping", func(t *testing.T) {
		d, _ := newDispatcher(t)

		require.NoError(t, d.Dispatch(addToCart(domain.ActionParams{
			ProductID: "6631", Quantity: 0,
		})))
		require.NoError(t, d.Dispatch(addToCart(domain.ActionParams{
			ProductID: "1002", Quantity: 25,
		})))

		// lines sort by product id: 1002 first, 6631 second
		lines := d.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, 10, lines[0].Quantity)
		assert.Equal(t, 1, lines[1].Quantity)
	})

	t.Run("AdditiveMerge", func(t *testing.T) {
		d, _ := newDispatcher(t)

		for range 3 {
			require.NoError(t, d.Dispatch(addToCart(domain.ActionParams{
				ProductID: "6631", Quantity: 2,
			})))
		}

		lines := d.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 6, lines[0].Quantity)
	})
}
