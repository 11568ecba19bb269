// Package widget models the chat panel lifecycle: open/maximize state,
// drag-resize geometry with visibility clamping, and the one-shot
// auto-greeting for new shoppers.
package widget

import (
	"sync"
	"sync/atomic"

	"github.com/niksmo/shop-assistant/internal/core/domain"
)

type State string

const (
	StateClosed    State = "closed"
	StateOpen      State = "open"
	StateMaximized State = "maximized"
)

// A Handle names one of the eight resize grips on the panel border.
type Handle string

const (
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"
	HandleNW Handle = "nw"
)

const (
	minWidth  = 300
	minHeight = 300

	// visibleGuard keeps at least this many pixels of the panel inside
	// the viewport on each axis while dragging.
	visibleGuard = 100

	defaultWidth  = 400
	defaultHeight = 560
	defaultMargin = 24

	maximizedMargin = 48
)

type Rect struct {
	X, Y          int
	Width, Height int
}

type Size struct {
	Width, Height int
}

// GeometryStore persists the user-dragged panel rectangle between
// sessions.
type GeometryStore interface {
	Load() (Rect, bool)
	Save(r Rect)
	Clear()
}

// greetedOnce is the process-global auto-greeting latch, shared by
// every panel mounted in the same process.
var greetedOnce atomic.Bool

// ResetGreeting clears the process-global greeting latch. Test helper.
func ResetGreeting() {
	greetedOnce.Store(false)
}

// AutoGreeting is the scripted first message shown to new shoppers.
const AutoGreeting = "hola"

// A Panel is the chat widget state machine. Methods are safe for
// concurrent use, though the UI drives them from a single goroutine.
type Panel struct {
	mu         sync.Mutex
	state      State
	custom     bool
	rect       Rect
	drag       *dragSession
	viewport   Size
	store      GeometryStore
	greeted    bool
	transcript []domain.ChatMessage
}

type dragSession struct {
	handle Handle
	origin Rect
}

// NewPanel restores persisted geometry when it is still at least
// partially visible in the viewport, otherwise starts from the default
// bottom-right placement.
func NewPanel(store GeometryStore, viewport Size) *Panel {
	p := &Panel{
		state:    StateClosed,
		viewport: viewport,
		store:    store,
	}

	if r, ok := store.Load(); ok && partiallyVisible(r, viewport) {
		p.rect = r
		p.custom = true
	} else {
		p.rect = defaultRect(viewport)
		store.Clear()
	}
	return p
}

func defaultRect(v Size) Rect {
	return Rect{
		X:      v.Width - defaultWidth - defaultMargin,
		Y:      v.Height - defaultHeight - defaultMargin,
		Width:  defaultWidth,
		Height: defaultHeight,
	}
}

func maximizedRect(v Size) Rect {
	return Rect{
		X:      maximizedMargin,
		Y:      maximizedMargin,
		Width:  v.Width - 2*maximizedMargin,
		Height: v.Height - 2*maximizedMargin,
	}
}

func partiallyVisible(r Rect, v Size) bool {
	return r.X < v.Width && r.X+r.Width > 0 &&
		r.Y < v.Height && r.Y+r.Height > 0
}

func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Panel) Rect() Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rect
}

// CustomGeometry reports whether the current rectangle came from a
// user drag rather than the default or maximized placement.
func (p *Panel) CustomGeometry() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.custom
}

// ToggleOpen flips between closed and the last open state.
func (p *Panel) ToggleOpen() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateClosed {
		p.state = StateOpen
	} else {
		p.state = StateClosed
	}
	return p.state
}

// ToggleMaximize switches between the viewport-relative maximized
// rectangle and the previous geometry. Entering maximized clears any
// user-dragged geometry.
func (p *Panel) ToggleMaximize() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateMaximized:
		p.state = StateOpen
		p.rect = defaultRect(p.viewport)
	case StateOpen:
		p.state = StateMaximized
		p.rect = maximizedRect(p.viewport)
		p.custom = false
		p.store.Clear()
	}
	return p.state
}

// BeginResize captures the rectangle the drag started from.
func (p *Panel) BeginResize(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateOpen {
		return
	}
	p.drag = &dragSession{handle: h, origin: p.rect}
}

// Resize recomputes the rectangle for the pointer delta since
// BeginResize, clamped to the minimum size, the viewport bounds and
// the on-screen guard.
func (p *Panel) Resize(dx, dy int) Rect {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drag == nil {
		return p.rect
	}

	r := applyDelta(p.drag.origin, p.drag.handle, dx, dy)
	p.rect = clampRect(r, p.viewport)
	return p.rect
}

// EndResize releases the drag, marks the geometry as custom and
// persists it.
func (p *Panel) EndResize() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drag == nil {
		return
	}
	p.drag = nil
	p.custom = true
	p.store.Save(p.rect)
}

func applyDelta(r Rect, h Handle, dx, dy int) Rect {
	switch h {
	case HandleE, HandleNE, HandleSE:
		r.Width += dx
	case HandleW, HandleNW, HandleSW:
		r.X += dx
		r.Width -= dx
	}

	switch h {
	case HandleS, HandleSE, HandleSW:
		r.Height += dy
	case HandleN, HandleNE, HandleNW:
		r.Y += dy
		r.Height -= dy
	}
	return r
}

func clampRect(r Rect, v Size) Rect {
	if r.Width < minWidth {
		r.Width = minWidth
	}
	if r.Height < minHeight {
		r.Height = minHeight
	}
	if r.Width > v.Width {
		r.Width = v.Width
	}
	if r.Height > v.Height {
		r.Height = v.Height
	}

	// Keep at least visibleGuard pixels of the panel on screen.
	if r.X+r.Width < visibleGuard {
		r.X = visibleGuard - r.Width
	}
	if r.X > v.Width-visibleGuard {
		r.X = v.Width - visibleGuard
	}
	if r.Y+r.Height < visibleGuard {
		r.Y = visibleGuard - r.Height
	}
	if r.Y > v.Height-visibleGuard {
		r.Y = v.Height - visibleGuard
	}
	return r
}

// SetViewport re-validates the rectangle after a window resize and
// falls back to the default placement when the panel drifted fully
// off screen.
func (p *Panel) SetViewport(v Size) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.viewport = v
	if p.state == StateMaximized {
		p.rect = maximizedRect(v)
		return
	}
	if !partiallyVisible(p.rect, v) {
		p.rect = defaultRect(v)
		p.custom = false
		p.store.Clear()
	}
}

// Append adds one turn to the transient transcript. The transcript
// lives only as long as the panel, like the original in-memory chat
// history.
func (p *Panel) Append(text string, by domain.Sender) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transcript = append(p.transcript, domain.ChatMessage{Text: text, By: by})
}

func (p *Panel) Transcript() []domain.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.ChatMessage, len(p.transcript))
	copy(out, p.transcript)
	return out
}

// AutoGreet returns the scripted greeting exactly once per process for
// a new shopper. Both a panel-local and the process-global latch must
// be clear for it to fire.
func (p *Panel) AutoGreet(profile domain.Profile) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !profile.IsNewUser || p.greeted {
		return "", false
	}
	if !greetedOnce.CompareAndSwap(false, true) {
		return "", false
	}
	p.greeted = true
	return AutoGreeting, true
}
