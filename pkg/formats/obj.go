package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/pastel-room/pkg/math"
)

// ErrNoGeometry is returned when an OBJ file contains no faces.
var ErrNoGeometry = errors.New("obj: no faces")

// OBJ is a parsed Wavefront OBJ file. Faces are triangulated on load.
type OBJ struct {
	MaterialLib string
	Positions   []math.Vec3
	Normals     []math.Vec3
	UVs         []math.Vec2
	Groups      []OBJGroup
	Warnings    []string
}

// OBJGroup is an `o` or `g` block. A group switches material with `usemtl`,
// so triangles carry their own material name.
type OBJGroup struct {
	Name      string
	Triangles []OBJTriangle
}

// OBJTriangle holds per-corner indices into the OBJ arrays. Missing UV or
// normal indices are -1.
type OBJTriangle struct {
	V        [3]int
	UV       [3]int
	N        [3]int
	Material string
	Smooth   bool
}

type objParser struct {
	obj      *OBJ
	line     int
	group    *OBJGroup
	material string
	smooth   bool
}

// ParseOBJ reads an OBJ file. Unsupported statements are collected as
// warnings; malformed data is an error.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	if p.obj.TriangleCount() == 0 {
		return nil, ErrNoGeometry
	}
	return p.obj, nil
}

func (p *objParser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.obj.Positions = append(p.obj.Positions, v)
	case "vn":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.obj.Normals = append(p.obj.Normals, v)
	case "vt":
		if len(fields) < 3 {
			return errors.New("texture coordinate needs 2 values")
		}
		u, err := parseFloat(fields[1])
		if err != nil {
			return err
		}
		v, err := parseFloat(fields[2])
		if err != nil {
			return err
		}
		p.obj.UVs = append(p.obj.UVs, math.Vec2{X: u, Y: v})
	case "f":
		return p.parseFace(fields[1:])
	case "o", "g":
		name := "default"
		if len(fields) > 1 {
			name = strings.Join(fields[1:], " ")
		}
		p.startGroup(name)
	case "usemtl":
		if len(fields) < 2 {
			return errors.New("usemtl without name")
		}
		p.material = fields[1]
	case "mtllib":
		if len(fields) < 2 {
			return errors.New("mtllib without file")
		}
		p.obj.MaterialLib = strings.Join(fields[1:], " ")
	case "s":
		p.smooth = len(fields) > 1 && fields[1] != "0" && fields[1] != "off"
	default:
		p.obj.Warnings = append(p.obj.Warnings, fmt.Sprintf("line %d: unsupported %q", p.line, fields[0]))
	}
	return nil
}

func (p *objParser) startGroup(name string) {
	p.obj.Groups = append(p.obj.Groups, OBJGroup{Name: name})
	p.group = &p.obj.Groups[len(p.obj.Groups)-1]
}

// parseFace parses `f v[/vt][/vn] ...` and fan-triangulates polygons.
func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return errors.New("face needs at least 3 vertices")
	}
	if p.group == nil {
		p.startGroup("default")
	}

	type corner struct{ v, uv, n int }
	corners := make([]corner, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		v, err := resolveIndex(parts[0], len(p.obj.Positions))
		if err != nil {
			return fmt.Errorf("face vertex: %w", err)
		}
		c := corner{v: v, uv: -1, n: -1}
		if len(parts) > 1 && parts[1] != "" {
			if c.uv, err = resolveIndex(parts[1], len(p.obj.UVs)); err != nil {
				return fmt.Errorf("face uv: %w", err)
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if c.n, err = resolveIndex(parts[2], len(p.obj.Normals)); err != nil {
				return fmt.Errorf("face normal: %w", err)
			}
		}
		corners[i] = c
	}

	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		p.group.Triangles = append(p.group.Triangles, OBJTriangle{
			V:        [3]int{a.v, b.v, c.v},
			UV:       [3]int{a.uv, b.uv, c.uv},
			N:        [3]int{a.n, b.n, c.n},
			Material: p.material,
			Smooth:   p.smooth,
		})
	}
	return nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index to a
// 0-based index into an array of length count.
func resolveIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx = count + idx
	default:
		return 0, errors.New("index 0 is invalid")
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, count)
	}
	return idx, nil
}

// TriangleCount returns the number of triangles across all groups.
func (o *OBJ) TriangleCount() int {
	n := 0
	for i := range o.Groups {
		n += len(o.Groups[i].Triangles)
	}
	return n
}

// Bounds returns the axis-aligned bounds of all positions.
func (o *OBJ) Bounds() (lo, hi math.Vec3) {
	if len(o.Positions) == 0 {
		return lo, hi
	}
	lo, hi = o.Positions[0], o.Positions[0]
	for _, p := range o.Positions[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, errors.New("need 3 components")
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = f
	}
	return math.FromArray(out), nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}
