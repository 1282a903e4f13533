// Package gizmo implements the transform controller used in dev mode: it
// attaches to a model, turns pointer drags into translate, rotate or scale
// edits, and snaps the result to the floor grid.
package gizmo

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/logger"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// ErrTargetGone is returned when the attached node has left the scene.
var ErrTargetGone = errors.New("gizmo target is no longer in the scene")

// Mode is a transform mode.
type Mode int

const (
	Translate Mode = iota
	Rotate
	Scale
)

func (m Mode) String() string {
	switch m {
	case Translate:
		return "translate"
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// State is the controller's state.
type State int

const (
	Idle State = iota
	Translating
	Rotating
	Scaling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Translating:
		return "translating"
	case Rotating:
		return "rotating"
	case Scaling:
		return "scaling"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func stateFor(m Mode) State {
	switch m {
	case Rotate:
		return Rotating
	case Scale:
		return Scaling
	default:
		return Translating
	}
}

// Key is a dev-mode keyboard command.
type Key int

const (
	KeyTranslate  Key = iota // G
	KeyRotate                // R
	KeyScale                 // S
	KeyDetach                // Escape
	KeyCycle                 // Tab
	KeyToggleSnap            // N
)

// Drag sensitivities.
const (
	RotatePerPixel = 0.01  // radians
	ScalePerPixel  = 0.005 // fraction of the starting scale
	MinScale       = 0.05
)

// Controller is the transform/snap state machine.
type Controller struct {
	grid     *scene.GridConfig
	debounce time.Duration
	log      *zap.Logger

	// Selectable lists the models Tab cycles through and a mode key may
	// attach to.
	Selectable func() []*scene.Node
	// OnDraggingChanged fires when a drag starts or ends. The camera
	// orbit is disabled while dragging.
	OnDraggingChanged func(dragging bool)
	// OnChange fires after each debounced snap.
	OnChange func(n *scene.Node)

	state  State
	mode   Mode
	target *scene.Node
	last   *scene.Node

	dragging      bool
	dragPointer   math.Vec2
	dragHit       math.Vec3
	dragHitOK     bool
	startPosition math.Vec3
	startRotation math.Euler
	startScale    math.Vec3

	pending   bool
	lastFlush time.Time
}

// New creates an idle controller. Snapping reads grid on every change, so
// panel edits take effect immediately.
func New(grid *scene.GridConfig, debounce time.Duration, log *zap.Logger) *Controller {
	log = logger.OrNop(log)
	return &Controller{
		grid:     grid,
		debounce: debounce,
		log:      log,
		mode:     Translate,
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Mode returns the last used mode.
func (c *Controller) Mode() Mode { return c.mode }

// Target returns the attached node, or nil when idle.
func (c *Controller) Target() *scene.Node { return c.target }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Attach selects n using the last used mode.
func (c *Controller) Attach(n *scene.Node) {
	if n == nil {
		c.Detach()
		return
	}
	if c.dragging {
		c.endDrag(time.Now())
	}
	c.target = n
	c.last = n
	c.setState(stateFor(c.mode))
	c.log.Debug("gizmo attached", zap.String("model", n.Meta.ModelName), zap.Stringer("mode", c.mode))
}

// Detach returns to idle. An in-progress drag is finished first, so the
// target keeps a snapped position.
func (c *Controller) Detach() {
	if c.dragging {
		c.endDrag(time.Now())
	}
	if c.target != nil {
		c.log.Debug("gizmo detached", zap.String("model", c.target.Meta.ModelName))
	}
	c.target = nil
	c.pending = false
	c.setState(Idle)
}

// SetMode switches mode. While attached the state follows; while idle
// the mode is recorded and the controller re-attaches to the most recent
// selection (or the first selectable model) when there is one.
func (c *Controller) SetMode(m Mode) {
	c.mode = m
	if c.target != nil {
		c.setState(stateFor(m))
		return
	}
	if n := c.reattachCandidate(); n != nil {
		c.Attach(n)
	}
}

func (c *Controller) reattachCandidate() *scene.Node {
	if c.last != nil && c.last.Parent != nil && c.last.VisibleInTree() {
		return c.last
	}
	if c.Selectable == nil {
		return nil
	}
	if roots := c.Selectable(); len(roots) > 0 {
		return roots[0]
	}
	return nil
}

// CycleNext attaches to the model after the current one in Selectable
// order, wrapping around.
func (c *Controller) CycleNext() *scene.Node {
	if c.Selectable == nil {
		return nil
	}
	roots := c.Selectable()
	if len(roots) == 0 {
		return nil
	}

	next := roots[0]
	for i, r := range roots {
		if r == c.target {
			next = roots[(i+1)%len(roots)]
			break
		}
	}
	c.Attach(next)
	return next
}

// HandleKey applies a keyboard command and reports whether it changed
// anything.
func (c *Controller) HandleKey(k Key) bool {
	switch k {
	case KeyTranslate:
		c.SetMode(Translate)
	case KeyRotate:
		c.SetMode(Rotate)
	case KeyScale:
		c.SetMode(Scale)
	case KeyDetach:
		attached := c.target != nil
		c.Detach()
		return attached
	case KeyCycle:
		return c.CycleNext() != nil
	case KeyToggleSnap:
		if c.grid == nil {
			return false
		}
		c.grid.Snap = !c.grid.Snap
		c.log.Debug("snap toggled", zap.Bool("snap", c.grid.Snap))
	default:
		return false
	}
	return true
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.log.Debug("gizmo state", zap.Stringer("from", c.state), zap.Stringer("to", s))
	c.state = s
}
