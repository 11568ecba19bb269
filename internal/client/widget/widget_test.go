package widget_test

import (
	"testing"

	"github.com/niksmo/shop-assistant/internal/client/widget"
	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewport = widget.Size{Width: 1920, Height: 1080}

func newPanel(t *testing.T) *widget.Panel {
	t.Helper()
	return widget.NewPanel(widget.NewMemoryStore(), viewport)
}

func TestOpenCloseTransitions(t *testing.T) {
	p := newPanel(t)

	assert.Equal(t, widget.StateClosed, p.State())
	assert.Equal(t, widget.StateOpen, p.ToggleOpen())
	assert.Equal(t, widget.StateClosed, p.ToggleOpen())
}

func TestMaximize(t *testing.T) {
	t.Run("ToggleFromOpen", func(t *testing.T) {
		p := newPanel(t)
		p.ToggleOpen()

		assert.Equal(t, widget.StateMaximized, p.ToggleMaximize())
		r := p.Rect()
		assert.Greater(t, r.Width, viewport.Width/2)
		assert.Equal(t, widget.StateOpen, p.ToggleMaximize())
	})

	t.Run("ClosedPanelIgnoresMaximize", func(t *testing.T) {
		p := newPanel(t)
		assert.Equal(t, widget.StateClosed, p.ToggleMaximize())
	})

	t.Run("MaximizeClearsCustomGeometry", func(t *testing.T) {
		store := widget.NewMemoryStore()
		p := widget.NewPanel(store, viewport)
		p.ToggleOpen()

		p.BeginResize(widget.HandleW)
		p.Resize(-50, 0)
		p.EndResize()
		require.True(t, p.CustomGeometry())

		p.ToggleMaximize()
		assert.False(t, p.CustomGeometry())
		_, ok := store.Load()
		assert.False(t, ok)
	})
}

func TestResize(t *testing.T) {
	t.Run("WestHandleGrowsLeft", func(t *testing.T) {
		p := newPanel(t)
		p.ToggleOpen()
		before := p.Rect()

		p.BeginResize(widget.HandleW)
		r := p.Resize(-100, 0)
		p.EndResize()

		assert.Equal(t, before.Width+100, r.Width)
		assert.Equal(t, before.X-100, r.X)
		assert.Equal(t, before.Height, r.Height)
	})

	t.Run("NorthEastHandle", func(t *testing.T) {
		p := newPanel(t)
		p.ToggleOpen()
		before := p.Rect()

		p.BeginResize(widget.HandleNE)
		r := p.Resize(40, -60)
		p.EndResize()

		assert.Equal(t, before.Width+40, r.Width)
		assert.Equal(t, before.Height+60, r.Height)
		assert.Equal(t, before.Y-60, r.Y)
		assert.Equal(t, before.X, r.X)
	})

	t.Run("MinimumSize", func(t *testing.T) {
		p := newPanel(t)
		p.ToggleOpen()

		p.BeginResize(widget.HandleSE)
		r := p.Resize(-2000, -2000)
		p.EndResize()

		assert.Equal(t, 300, r.Width)
		assert.Equal(t, 300, r.Height)
	})

	t.Run("ViewportBound", func(t *testing.T) {
		p := newPanel(t)
		p.ToggleOpen()

		p.BeginResize(widget.HandleSE)
		r := p.Resize(5000, 5000)
		p.EndResize()

		assert.LessOrEqual(t, r.Width, viewport.Width)
		assert.LessOrEqual(t, r.Height, viewport.Height)
	})

	t.Run("ResizeWithoutBeginIsNoop", func(t *testing.T) {
		p := newPanel(t)
		p.ToggleOpen()
		before := p.Rect()

		assert.Equal(t, before, p.Resize(100, 100))
	})

	t.Run("EndResizePersists", func(t *testing.T) {
		store := widget.NewMemoryStore()
		p := widget.NewPanel(store, viewport)
		p.ToggleOpen()

		p.BeginResize(widget.HandleE)
		p.Resize(50, 0)
		p.EndResize()

		saved, ok := store.Load()
		require.True(t, ok)
		assert.Equal(t, p.Rect(), saved)
		assert.True(t, p.CustomGeometry())
	})
}

func TestGeometryRestore(t *testing.T) {
	t.Run("VisibleRectIsRestored", func(t *testing.T) {
		store := widget.NewMemoryStore()
		saved := widget.Rect{X: 100, Y: 100, Width: 400, Height: 400}
		store.Save(saved)

		p := widget.NewPanel(store, viewport)
		assert.Equal(t, saved, p.Rect())
		assert.True(t, p.CustomGeometry())
	})

	t.Run("OffscreenRectResetsToDefault", func(t *testing.T) {
		store := widget.NewMemoryStore()
		store.Save(widget.Rect{X: 5000, Y: 5000, Width: 400, Height: 400})

		p := widget.NewPanel(store, viewport)
		assert.False(t, p.CustomGeometry())

		r := p.Rect()
		assert.GreaterOrEqual(t, r.X, 0)
		assert.GreaterOrEqual(t, r.Y, 0)

		_, ok := store.Load()
		assert.False(t, ok, "stale geometry should be cleared")
	})

	t.Run("ViewportShrinkResets", func(t *testing.T) {
		store := widget.NewMemoryStore()
		store.Save(widget.Rect{X: 1500, Y: 900, Width: 400, Height: 400})

		p := widget.NewPanel(store, viewport)
		require.True(t, p.CustomGeometry())

		p.SetViewport(widget.Size{Width: 800, Height: 600})
		assert.False(t, p.CustomGeometry())
	})

	t.Run("ViewportShrinkKeepsVisiblePanel", func(t *testing.T) {
		store := widget.NewMemoryStore()
		store.Save(widget.Rect{X: 50, Y: 50, Width: 400, Height: 400})

		p := widget.NewPanel(store, viewport)
		p.SetViewport(widget.Size{Width: 800, Height: 600})
		assert.True(t, p.CustomGeometry())
	})
}

func TestTranscript(t *testing.T) {
	p := newPanel(t)

	p.Append("hola", domain.SenderUser)
	p.Append("¡Hola! ¿Cómo te llamas?", domain.SenderBot)

	tr := p.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, domain.SenderUser, tr[0].By)
	assert.Equal(t, domain.SenderBot, tr[1].By)

	// returned slice is a copy
	tr[0].Text = "mutated"
	assert.Equal(t, "hola", p.Transcript()[0].Text)
}

func TestAutoGreet(t *testing.T) {
	t.Run("FiresOnceForNewUser", func(t *testing.T) {
		widget.ResetGreeting()
		p := newPanel(t)

		msg, ok := p.AutoGreet(domain.NewProfile())
		require.True(t, ok)
		assert.Equal(t, widget.AutoGreeting, msg)

		_, ok = p.AutoGreet(domain.NewProfile())
		assert.False(t, ok)
	})

	t.Run("GlobalLatchBlocksRemount", func(t *testing.T) {
		widget.ResetGreeting()
		first := newPanel(t)
		_, ok := first.AutoGreet(domain.NewProfile())
		require.True(t, ok)

		remounted := newPanel(t)
		_, ok = remounted.AutoGreet(domain.NewProfile())
		assert.False(t, ok)
	})

	t.Run("KnownUserGetsNoGreeting", func(t *testing.T) {
		widget.ResetGreeting()
		p := newPanel(t)

		_, ok := p.AutoGreet(domain.Profile{Name: "Carlos"})
		assert.False(t, ok)
	})
}
