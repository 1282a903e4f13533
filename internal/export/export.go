// Package export reads the current model transforms back out of the scene
// in the placement format the room loads from.
package export

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/layout"
	"github.com/Faultbox/pastel-room/internal/logger"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Rounding applied to exported values.
const (
	PositionDecimals = 2
	RotationDecimals = 4
	ScaleDecimals    = 4
)

// ErrNoClipboard is returned by Export when no clipboard is configured.
var ErrNoClipboard = errors.New("no clipboard available")

// Clipboard receives exported text.
type Clipboard interface {
	SetText(text string) error
}

// Key is the identity of an exported object.
func Key(n *scene.Node) string {
	return fmt.Sprintf("%s#%d", n.Meta.ModelName, n.ID)
}

// Collect returns one placement per tagged direct child of the root.
// Hidden children are placeholders that were replaced and are skipped.
func Collect(s *scene.Scene) []layout.Placement {
	seen := make(map[string]bool)
	var out []layout.Placement

	for _, n := range s.Root.Children {
		if n.Meta.ModelName == "" || !n.Visible {
			continue
		}
		key := Key(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, placementOf(n))
	}
	return out
}

func placementOf(n *scene.Node) layout.Placement {
	return layout.Placement{
		Name: n.Meta.ModelName,
		Position: math.Vec3{
			X: math.RoundTo(n.Position.X, PositionDecimals),
			Y: math.RoundTo(n.Position.Y, PositionDecimals),
			Z: math.RoundTo(n.Position.Z, PositionDecimals),
		},
		Rotation: math.Euler{
			X: math.RoundTo(n.Rotation.X, RotationDecimals),
			Y: math.RoundTo(n.Rotation.Y, RotationDecimals),
			Z: math.RoundTo(n.Rotation.Z, RotationDecimals),
		},
		Scale: layout.Scale{
			X: math.RoundTo(n.Scale.X, ScaleDecimals),
			Y: math.RoundTo(n.Scale.Y, ScaleDecimals),
			Z: math.RoundTo(n.Scale.Z, ScaleDecimals),
		},
		Frames:    n.Meta.Frames,
		FrameRate: n.Meta.FrameRate,
	}
}

// JSON formats placements as the canonical manifest: an indented array.
func JSON(placements []layout.Placement) ([]byte, error) {
	if placements == nil {
		placements = []layout.Placement{}
	}
	return json.MarshalIndent(placements, "", "  ")
}

// YAML formats placements as a layout file.
func YAML(placements []layout.Placement) ([]byte, error) {
	return layout.Marshal(placements)
}

// Result is the outcome of an export.
type Result struct {
	Placements []layout.Placement
	JSON       string
	YAML       string
}

// Exporter writes exports to the log and a clipboard.
type Exporter struct {
	Clipboard Clipboard
	log       *zap.Logger
}

// New creates an exporter. clip may be nil.
func New(clip Clipboard, log *zap.Logger) *Exporter {
	log = logger.OrNop(log)
	return &Exporter{Clipboard: clip, log: log}
}

// Export collects the scene, logs both formats and copies the JSON
// manifest to the clipboard. A clipboard failure is returned alongside a
// complete Result.
func (e *Exporter) Export(s *scene.Scene) (Result, error) {
	placements := Collect(s)

	js, err := JSON(placements)
	if err != nil {
		return Result{}, fmt.Errorf("encoding json: %w", err)
	}
	ym, err := YAML(placements)
	if err != nil {
		return Result{}, fmt.Errorf("encoding yaml: %w", err)
	}
	res := Result{Placements: placements, JSON: string(js), YAML: string(ym)}

	e.log.Info("layout exported", zap.Int("models", len(placements)))
	e.log.Info("layout json\n" + res.JSON)
	e.log.Debug("layout yaml\n" + res.YAML)

	if e.Clipboard == nil {
		return res, ErrNoClipboard
	}
	if err := e.Clipboard.SetText(res.JSON); err != nil {
		return res, fmt.Errorf("copying to clipboard: %w", err)
	}
	return res, nil
}
