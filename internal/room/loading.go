package room

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/assets"
	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/engine/tween"
	"github.com/Faultbox/pastel-room/internal/layout"
)

// Load starts loading placements in the background. Models appear as the
// frame loop drains the loader.
func (r *Room) Load(ctx context.Context, placements []layout.Placement) {
	if r.loader == nil {
		r.log.Warn("no model loader configured")
		return
	}
	r.Progress = Progress{Total: len(placements)}
	r.loader.LoadAll(ctx, placements, r.callbacks())
}

func (r *Room) callbacks() assets.Callbacks {
	return assets.Callbacks{
		OnStart: func(name string) {
			r.Progress.Current = name
			r.Progress.Loaded, r.Progress.Size = 0, 0
		},
		OnProgress: func(name string, loaded, total int64) {
			r.Progress.Current = name
			r.Progress.Loaded, r.Progress.Size = loaded, total
		},
		OnOverall: func(done, total int) {
			r.Progress.Done, r.Progress.Total = done, total
		},
		OnLoaded: r.AddModel,
		OnFrames: r.ReplaceWithFlipbook,
		OnError: func(name string, err error) {
			r.Progress.Failed = append(r.Progress.Failed, name)
		},
		OnComplete: func(loaded, failed int) {
			r.Progress.Complete = true
			r.Progress.Current = ""
			r.log.Info("room ready", zap.Int("models", loaded), zap.Int("failed", failed))
		},
	}
}

// AddModel inserts a loaded model. A name that is already placed is
// skipped, so a reload racing an earlier batch cannot duplicate it.
func (r *Room) AddModel(p layout.Placement, n *scene.Node) {
	if r.model(p.Name) != nil {
		r.log.Debug("model already placed", zap.String("model", p.Name))
		return
	}
	r.Scene.Add(nil, n)
	r.Scene.RebuildClickables()
}

// ReplaceWithFlipbook hides the placeholder for p and adds a node that
// cycles through frames at p.FrameRate. The replacement takes over the
// placeholder's current transform and selection.
func (r *Room) ReplaceWithFlipbook(p layout.Placement, frames []*scene.Node) {
	placeholder := r.model(p.Name)
	if placeholder == nil || len(frames) == 0 {
		return
	}

	repl := scene.NewNode(p.Name+"_animated", scene.KindModel)
	repl.Position = placeholder.Position
	repl.Rotation = placeholder.Rotation
	repl.Scale = placeholder.Scale
	for _, f := range frames {
		f.Kind = scene.KindGroup
		repl.AddChild(f)
	}
	repl.SetModelName(p.Name)
	repl.Meta.Frames = p.Frames
	repl.Meta.FrameRate = p.FrameRate

	r.Scene.Add(nil, repl)
	placeholder.Visible = false
	if r.Gizmo.Target() == placeholder {
		r.Gizmo.Attach(repl)
	}
	r.flipbooks = append(r.flipbooks, NewFlipbook(repl, p.FrameRate, r.now))
	r.Scene.RebuildClickables()
	r.log.Info("animated model swapped in", zap.String("model", p.Name), zap.Int("frames", len(frames)))
}

// ApplyLayout moves the room to a new layout. Models already placed tween
// to their new transform, models no longer listed are removed and new
// ones are loaded.
func (r *Room) ApplyLayout(ctx context.Context, placements []layout.Placement) {
	wanted := make(map[string]layout.Placement, len(placements))
	for _, p := range placements {
		wanted[p.Name] = p
	}

	placed := make(map[string]bool)
	for _, n := range r.Scene.ModelRoots() {
		name := n.Meta.ModelName
		p, ok := wanted[name]
		if !ok {
			r.removeModel(n)
			continue
		}
		if !n.Visible {
			continue
		}
		placed[name] = true
		r.Tweens.Add(tween.Transform(n, p.Position, p.Rotation, p.Scale.Vec3(), LayoutTween), r.now)
	}

	var missing []layout.Placement
	for _, p := range placements {
		if !placed[p.Name] {
			missing = append(missing, p)
		}
	}
	r.Scene.RebuildClickables()
	r.log.Info("layout applied",
		zap.Int("moved", len(placed)), zap.Int("new", len(missing)))
	if len(missing) > 0 {
		r.Load(ctx, missing)
	}
}

func (r *Room) removeModel(n *scene.Node) {
	if r.Gizmo.Target() == n {
		r.Gizmo.Detach()
	}
	kept := r.flipbooks[:0]
	for _, f := range r.flipbooks {
		if f.Node != n {
			kept = append(kept, f)
		}
	}
	r.flipbooks = kept

	if err := r.Scene.Remove(n); err != nil {
		r.log.Warn("removing model", zap.String("model", n.Meta.ModelName), zap.Error(err))
	}
}
