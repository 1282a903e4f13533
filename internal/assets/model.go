package assets

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/engine/texture"
	"github.com/Faultbox/pastel-room/internal/layout"
	"github.com/Faultbox/pastel-room/pkg/formats"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// ErrNoMesh is returned when a model produced no drawable geometry.
var ErrNoMesh = errors.New("model has no meshes")

// ModelPath returns the OBJ path for a logical model name.
func ModelPath(name string) string {
	return name + ".obj"
}

// MaterialPath returns the conventional MTL path for a logical model name.
func MaterialPath(name string) string {
	return name + ".mtl"
}

// BuildModel converts a parsed OBJ into a model node with one mesh child
// per group and material. Textures are looked up by material name in
// textures; a missing entry leaves the mesh with its diffuse colour.
func BuildModel(name string, obj *formats.OBJ, mtl *formats.MTL, textures map[string]*texture.Image) (*scene.Node, error) {
	root := scene.NewNode(name, scene.KindModel)

	for _, g := range obj.Groups {
		// Split the group by material, keeping first-use order.
		var order []string
		byMat := make(map[string][]formats.OBJTriangle)
		for _, tri := range g.Triangles {
			if _, ok := byMat[tri.Material]; !ok {
				order = append(order, tri.Material)
			}
			byMat[tri.Material] = append(byMat[tri.Material], tri)
		}

		for _, matName := range order {
			mat := mtl.Lookup(matName)
			mesh := buildMesh(obj, byMat[matName], mat)
			if tex := textures[mat.Name]; tex != nil {
				mesh.Texture = tex.RGBA
				mesh.TextureName = tex.Name
			}

			nodeName := g.Name
			if len(order) > 1 && matName != "" {
				nodeName = g.Name + "/" + matName
			}
			child := scene.NewNode(nodeName, scene.KindMesh)
			child.Mesh = mesh
			root.AddChild(child)
		}
	}

	if len(root.Children) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoMesh)
	}
	root.SetModelName(name)
	return root, nil
}

func buildMesh(obj *formats.OBJ, tris []formats.OBJTriangle, mat formats.Material) *scene.Mesh {
	n := len(tris) * 3
	positions := make([]math.Vec3, 0, n)
	normals := make([]math.Vec3, 0, n)
	var uvs []math.Vec2

	hasNormals := true
	hasUVs := true
	for _, tri := range tris {
		for i := 0; i < 3; i++ {
			if tri.N[i] < 0 {
				hasNormals = false
			}
			if tri.UV[i] < 0 {
				hasUVs = false
			}
		}
	}
	if hasUVs {
		uvs = make([]math.Vec2, 0, n)
	}

	for _, tri := range tris {
		for i := 0; i < 3; i++ {
			positions = append(positions, obj.Positions[tri.V[i]])
			if hasNormals {
				normals = append(normals, obj.Normals[tri.N[i]])
			}
			if hasUVs {
				uv := obj.UVs[tri.UV[i]]
				// OBJ puts the UV origin at the bottom left; images start at the top.
				uvs = append(uvs, math.Vec2{X: uv.X, Y: 1 - uv.Y})
			}
		}
	}
	if !hasNormals {
		normals = nil
	}

	mesh := scene.NewTriangleMesh(positions, normals, uvs, mat.Diffuse)
	mesh.Opacity = mat.Opacity
	return mesh
}

// ApplyPlacement copies a placement's transform onto a model node.
func ApplyPlacement(n *scene.Node, p layout.Placement) {
	n.Position = p.Position
	n.Rotation = p.Rotation
	n.Scale = p.Scale.Vec3()
}

// modelFiles loads the OBJ, its material library and textures for name.
// A missing or malformed material library or texture fails the whole
// model, so the caller skips it.
func (l *Loader) modelFiles(name string, progress ProgressFunc) (*formats.OBJ, *formats.MTL, map[string]*texture.Image, error) {
	objPath := ModelPath(name)
	data, err := l.src.Read(objPath, progress)
	if err != nil {
		return nil, nil, nil, err
	}
	obj, err := formats.ParseOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", objPath, err)
	}
	for _, w := range obj.Warnings {
		l.log.Debug("obj warning", zap.String("model", name), zap.String("warning", w))
	}

	dir := path.Dir(objPath)
	mtlPath := MaterialPath(name)
	if obj.MaterialLib != "" {
		mtlPath = path.Join(dir, obj.MaterialLib)
	}
	mtlData, err := l.src.Read(mtlPath, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("material library %s: %w", mtlPath, err)
	}
	mtl, err := formats.ParseMTL(bytes.NewReader(mtlData))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", mtlPath, err)
	}

	// Sorted so the first failure reported is stable.
	names := make([]string, 0, len(mtl.Materials))
	for n := range mtl.Materials {
		names = append(names, n)
	}
	sort.Strings(names)

	textures := make(map[string]*texture.Image)
	for _, matName := range names {
		m := mtl.Materials[matName]
		if m.DiffuseMap == "" {
			continue
		}
		texPath := path.Join(dir, m.DiffuseMap)
		texData, err := l.src.Read(texPath, nil)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("texture %s: %w", texPath, err)
		}
		img, err := texture.Decode(texData, texPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("texture %s: %w", texPath, err)
		}
		textures[matName] = &texture.Image{Name: texPath, RGBA: img}
	}
	return obj, mtl, textures, nil
}
