package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Material is one `newmtl` block of an MTL file.
type Material struct {
	Name       string
	Ambient    [3]float32
	Diffuse    [3]float32
	Specular   [3]float32
	Shininess  float32
	Opacity    float32
	Illum      int
	DiffuseMap string
}

// DefaultMaterial is used when a model has no material library or names a
// material the library does not define.
var DefaultMaterial = Material{
	Name:      "default",
	Ambient:   [3]float32{0.63, 0.63, 0.63},
	Diffuse:   [3]float32{0.63, 0.63, 0.63},
	Specular:  [3]float32{0.5, 0.5, 0.5},
	Shininess: 30,
	Opacity:   1,
}

// MTL is a parsed material library.
type MTL struct {
	Materials map[string]*Material
	Warnings  []string
}

// Lookup returns the named material or DefaultMaterial.
func (m *MTL) Lookup(name string) Material {
	if m != nil {
		if mat, ok := m.Materials[name]; ok {
			return *mat
		}
	}
	return DefaultMaterial
}

// ParseMTL reads a Wavefront material library.
func ParseMTL(r io.Reader) (*MTL, error) {
	lib := &MTL{Materials: make(map[string]*Material)}
	var cur *Material

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("mtl line %d: newmtl without name", line)
			}
			mat := DefaultMaterial
			mat.Name = fields[1]
			cur = &mat
			lib.Materials[mat.Name] = cur
			continue
		}
		if cur == nil {
			lib.Warnings = append(lib.Warnings, fmt.Sprintf("line %d: %q before newmtl", line, fields[0]))
			continue
		}

		var err error
		switch fields[0] {
		case "Ka":
			cur.Ambient, err = parseColor(fields[1:])
		case "Kd":
			cur.Diffuse, err = parseColor(fields[1:])
		case "Ks":
			cur.Specular, err = parseColor(fields[1:])
		case "Ns":
			cur.Shininess, err = parseScalar(fields[1:])
		case "d":
			cur.Opacity, err = parseScalar(fields[1:])
		case "Tr":
			var tr float32
			tr, err = parseScalar(fields[1:])
			cur.Opacity = 1 - tr
		case "illum":
			if len(fields) > 1 {
				cur.Illum, err = strconv.Atoi(fields[1])
			}
		case "map_Kd":
			if len(fields) > 1 {
				// Options like -s/-o are skipped; the file name is last.
				cur.DiffuseMap = fields[len(fields)-1]
			}
		default:
			lib.Warnings = append(lib.Warnings, fmt.Sprintf("line %d: unsupported %q", line, fields[0]))
		}
		if err != nil {
			return nil, fmt.Errorf("mtl line %d: %s: %w", line, fields[0], err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mtl: %w", err)
	}
	return lib, nil
}

func parseColor(fields []string) ([3]float32, error) {
	var c [3]float32
	if len(fields) < 3 {
		return c, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return c, err
		}
		c[i] = f
	}
	return c, nil
}

func parseScalar(fields []string) (float32, error) {
	if len(fields) < 1 {
		return 0, fmt.Errorf("missing value")
	}
	return parseFloat(fields[0])
}
