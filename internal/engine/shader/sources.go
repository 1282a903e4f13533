package shader

import _ "embed"

// MeshVertexShader transforms lit, optionally textured triangles.
//
//go:embed glsl/mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades with one ambient and one directional light.
//
//go:embed glsl/mesh.frag
var MeshFragmentShader string

// LineVertexShader passes per-vertex colours for grid and axis lines.
//
//go:embed glsl/line.vert
var LineVertexShader string

// LineFragmentShader writes the interpolated line colour.
//
//go:embed glsl/line.frag
var LineFragmentShader string
