// Package assets loads room models from OBJ/MTL files. Loads run on
// goroutines; their results are queued and delivered on the frame-loop
// goroutine by Drain, so the scene graph is only touched from one thread.
package assets

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/layout"
	"github.com/Faultbox/pastel-room/internal/logger"
)

// Callbacks receive load events. All of them run inside Drain. Any field
// may be nil.
type Callbacks struct {
	OnStart    func(name string)
	OnProgress func(name string, loaded, total int64)
	// OnOverall reports how many placements have finished, successfully
	// or not.
	OnOverall func(done, total int)
	OnLoaded  func(p layout.Placement, node *scene.Node)
	// OnFrames delivers the frames of an animated placement after its
	// placeholder. It is not called when any frame fails.
	OnFrames func(p layout.Placement, frames []*scene.Node)
	OnError  func(name string, err error)
	// OnComplete fires exactly once, after every other callback of the
	// batch.
	OnComplete func(loaded, failed int)
}

// Loader loads models by logical name.
type Loader struct {
	src Source
	log *zap.Logger

	mu    sync.Mutex
	queue []func()

	wg sync.WaitGroup
}

// NewLoader creates a loader reading from src.
func NewLoader(src Source, log *zap.Logger) *Loader {
	log = logger.OrNop(log)
	return &Loader{src: src, log: log}
}

// Load reads and builds a single model synchronously. The returned node
// is detached; it gets its ID when added to a scene.
func (l *Loader) Load(name string, progress ProgressFunc) (*scene.Node, error) {
	obj, mtl, textures, err := l.modelFiles(name, progress)
	if err != nil {
		return nil, err
	}
	return BuildModel(name, obj, mtl, textures)
}

// LoadPlacement loads the model for p and applies its transform.
func (l *Loader) LoadPlacement(p layout.Placement, progress ProgressFunc) (*scene.Node, error) {
	n, err := l.Load(p.Name, progress)
	if err != nil {
		return nil, err
	}
	ApplyPlacement(n, p)
	return n, nil
}

// LoadFrames loads every animation frame of p. Frame nodes carry no
// transform; the animated replacement node owns it.
func (l *Loader) LoadFrames(p layout.Placement) ([]*scene.Node, error) {
	frames := make([]*scene.Node, 0, p.Frames)
	for i := 0; i < p.Frames; i++ {
		n, err := l.Load(p.FrameName(i), nil)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, n)
	}
	return frames, nil
}

// LoadAll starts one goroutine per placement and returns immediately.
// Results arrive through cb as Drain is called. A shared counter advances
// on success and on failure, so OnComplete is reached even when some
// models fail. ctx is only checked before each load starts.
func (l *Loader) LoadAll(ctx context.Context, placements []layout.Placement, cb Callbacks) {
	total := len(placements)
	if total == 0 {
		l.post(func() {
			if cb.OnComplete != nil {
				cb.OnComplete(0, 0)
			}
		})
		return
	}

	var done, loaded, failed atomic.Int32
	finish := func(ok bool) {
		if ok {
			loaded.Add(1)
		} else {
			failed.Add(1)
		}
		n := int(done.Add(1))
		l.post(func() {
			if cb.OnOverall != nil {
				cb.OnOverall(n, total)
			}
		})
		if n == total {
			ld, fl := int(loaded.Load()), int(failed.Load())
			l.log.Info("models loaded", zap.Int("loaded", ld), zap.Int("failed", fl))
			l.post(func() {
				if cb.OnComplete != nil {
					cb.OnComplete(ld, fl)
				}
			})
		}
	}

	l.log.Info("loading models", zap.Int("count", total))
	for _, p := range placements {
		l.wg.Add(1)
		go func(p layout.Placement) {
			defer l.wg.Done()
			finish(l.loadOne(ctx, p, cb))
		}(p)
	}
}

func (l *Loader) loadOne(ctx context.Context, p layout.Placement, cb Callbacks) bool {
	if err := ctx.Err(); err != nil {
		l.fail(p.Name, err, cb)
		return false
	}

	l.post(func() {
		if cb.OnStart != nil {
			cb.OnStart(p.Name)
		}
	})
	progress := func(loaded, total int64) {
		l.post(func() {
			if cb.OnProgress != nil {
				cb.OnProgress(p.Name, loaded, total)
			}
		})
	}

	node, err := l.LoadPlacement(p, progress)
	if err != nil {
		l.fail(p.Name, err, cb)
		return false
	}
	l.log.Debug("model loaded", zap.String("model", p.Name), zap.Int("meshes", len(node.Children)))
	l.post(func() {
		if cb.OnLoaded != nil {
			cb.OnLoaded(p, node)
		}
	})

	if p.Animated() {
		frames, err := l.LoadFrames(p)
		if err != nil {
			// The placeholder stays; the model itself loaded fine.
			l.log.Warn("animation frames failed", zap.String("model", p.Name), zap.Error(err))
			l.post(func() {
				if cb.OnError != nil {
					cb.OnError(p.Name, err)
				}
			})
		} else {
			l.post(func() {
				if cb.OnFrames != nil {
					cb.OnFrames(p, frames)
				}
			})
		}
	}
	return true
}

func (l *Loader) fail(name string, err error, cb Callbacks) {
	l.log.Warn("model failed to load", zap.String("model", name), zap.Error(err))
	l.post(func() {
		if cb.OnError != nil {
			cb.OnError(name, err)
		}
	})
}

func (l *Loader) post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Drain runs every queued callback in arrival order and returns how many
// ran. Call it once per frame from the frame loop.
func (l *Loader) Drain() int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Wait blocks until every started load has finished. Queued callbacks
// still need a Drain.
func (l *Loader) Wait() {
	l.wg.Wait()
}
