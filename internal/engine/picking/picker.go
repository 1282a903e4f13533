package picking

import (
	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Hit is the nearest intersection found by a pick.
type Hit struct {
	Point    math.Vec3
	Distance float32
	Mesh     *scene.Node
	Owner    *scene.Node // Top-level model, nil for surface picks
	Name     string
}

// Pick intersects the ray with registry meshes only and returns the
// nearest hit. Floor, walls and helpers are never in the registry.
func Pick(r Ray, registry []scene.Clickable) (Hit, bool) {
	var best Hit
	found := false
	for _, c := range registry {
		t, ok := intersectNode(r, c.Mesh, bestDistance(best, found))
		if !ok {
			continue
		}
		best = Hit{Point: r.At(t), Distance: t, Mesh: c.Mesh, Owner: c.Owner, Name: c.Name}
		found = true
	}
	return best, found
}

// PickSurface intersects the ray with arbitrary triangle meshes. It backs
// the hover coordinate readout.
func PickSurface(r Ray, nodes []*scene.Node) (Hit, bool) {
	var best Hit
	found := false
	for _, n := range nodes {
		t, ok := intersectNode(r, n, bestDistance(best, found))
		if !ok {
			continue
		}
		best = Hit{Point: r.At(t), Distance: t, Mesh: n, Name: n.Meta.ModelName}
		found = true
	}
	return best, found
}

func bestDistance(h Hit, found bool) float32 {
	if !found {
		return float32(1e30)
	}
	return h.Distance
}

// intersectNode tests a mesh node in world space, returning the nearest
// triangle hit closer than limit.
func intersectNode(r Ray, n *scene.Node, limit float32) (float32, bool) {
	m := n.Mesh
	if m == nil || m.Primitive != scene.Triangles || m.TriangleCount() == 0 {
		return 0, false
	}

	world := n.WorldMatrix()
	box := TransformAABB(m.Min, m.Max, world)
	if _, ok := r.IntersectAABB(box); !ok {
		return 0, false
	}

	best := limit
	hit := false
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		t, ok := r.IntersectTriangle(world.TransformVec3(a), world.TransformVec3(b), world.TransformVec3(c))
		if ok && t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}
