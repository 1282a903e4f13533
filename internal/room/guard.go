package room

import (
	"errors"
	"fmt"
)

// ErrStopped is returned by FrameGuard.Run once the guard has tripped.
var ErrStopped = errors.New("frame loop stopped after repeated errors")

// DefaultMaxFrameErrors is the number of consecutive failed frames that
// stops the loop.
const DefaultMaxFrameErrors = 5

// FrameGuard counts consecutive failed frames. When the count reaches Max
// the guard trips: OnStop runs once and every later Run returns ErrStopped.
type FrameGuard struct {
	Max    int
	OnStop func(last error)

	consecutive int
	stopped     bool
}

// Run executes one frame. A panic inside fn counts as a failed frame.
func (g *FrameGuard) Run(fn func() error) (err error) {
	if g.stopped {
		return ErrStopped
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame panic: %v", r)
		}
		g.record(err)
	}()
	return fn()
}

func (g *FrameGuard) record(err error) {
	if err == nil {
		g.consecutive = 0
		return
	}
	g.consecutive++

	max := g.Max
	if max <= 0 {
		max = DefaultMaxFrameErrors
	}
	if g.consecutive >= max && !g.stopped {
		g.stopped = true
		if g.OnStop != nil {
			g.OnStop(err)
		}
	}
}

// Consecutive returns the current run of failed frames.
func (g *FrameGuard) Consecutive() int {
	return g.consecutive
}

// Stopped reports whether the guard has tripped.
func (g *FrameGuard) Stopped() bool {
	return g.stopped
}
