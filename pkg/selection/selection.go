// Package selection holds the transient UI state of a feature map: the
// currently selected feature and whether the help overlay is visible.
//
// Both surfaces (the browser script emitted by the renderer and the terminal
// explorer) follow the same policy, implemented here:
//
//   - Select always succeeds and closes a visible help overlay.
//   - While a feature is selected the info toggle is disabled, so
//     ToggleHelp is a no-op.
//   - Clear on an empty selection is a no-op.
//
// At most one of the detail panel and the help overlay is therefore visible
// at any time. A Controller is owned by a single event loop and is not safe
// for concurrent use.
package selection

import "github.com/matzehuels/featuremap/pkg/sitemap"

// Surface identifies what is shown on top of the map.
type Surface int

const (
	SurfaceNone Surface = iota
	SurfaceDetail
	SurfaceHelp
)

func (s Surface) String() string {
	switch s {
	case SurfaceDetail:
		return "detail"
	case SurfaceHelp:
		return "help"
	default:
		return "none"
	}
}

// State is a snapshot of the controller.
type State struct {
	Selected    sitemap.Feature // zero when nothing is selected
	HelpVisible bool
}

// HasSelection reports whether a feature is selected.
func (s State) HasSelection() bool {
	return !s.Selected.IsZero()
}

// Surface returns what the state puts on screen.
func (s State) Surface() Surface {
	switch {
	case s.HasSelection():
		return SurfaceDetail
	case s.HelpVisible:
		return SurfaceHelp
	default:
		return SurfaceNone
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithHelpVisible starts the controller with the help overlay open.
func WithHelpVisible() Option {
	return func(c *Controller) { c.state.HelpVisible = true }
}

// WithOnChange registers an observer called after every state change.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.observers = append(c.observers, fn) }
}

// Controller mediates the detail panel and help overlay.
type Controller struct {
	state     State
	observers []func(State)
}

// New creates a controller with nothing selected and help hidden.
func New(opts ...Option) *Controller {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select makes f the current selection and closes the help overlay.
// Selecting the already selected feature changes nothing.
func (c *Controller) Select(f sitemap.Feature) {
	if f.IsZero() {
		c.Clear()
		return
	}
	if c.state.Selected.ID == f.ID {
		return
	}
	c.state.Selected = f.Clone()
	c.state.HelpVisible = false
	c.notify()
}

// Clear drops the current selection.
func (c *Controller) Clear() {
	if !c.state.HasSelection() {
		return
	}
	c.state.Selected = sitemap.Feature{}
	c.notify()
}

// ToggleHelp flips the help overlay and reports whether it did. It is
// disabled while a feature is selected.
func (c *Controller) ToggleHelp() bool {
	if c.state.HasSelection() {
		return false
	}
	c.state.HelpVisible = !c.state.HelpVisible
	c.notify()
	return true
}

// HideHelp closes the help overlay.
func (c *Controller) HideHelp() {
	if !c.state.HelpVisible {
		return
	}
	c.state.HelpVisible = false
	c.notify()
}

// HelpEnabled reports whether the info toggle currently does anything.
func (c *Controller) HelpEnabled() bool {
	return !c.state.HasSelection()
}

// Selected returns the current selection.
func (c *Controller) Selected() (sitemap.Feature, bool) {
	if !c.state.HasSelection() {
		return sitemap.Feature{}, false
	}
	return c.state.Selected.Clone(), true
}

// HelpVisible reports whether the help overlay is shown.
func (c *Controller) HelpVisible() bool {
	return c.state.HelpVisible
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	s := c.state
	s.Selected = s.Selected.Clone()
	return s
}

// Surface returns what is currently shown on top of the map.
func (c *Controller) Surface() Surface {
	return c.state.Surface()
}

func (c *Controller) notify() {
	for _, fn := range c.observers {
		fn(c.State())
	}
}
