package shader

import (
	"strings"
	"testing"
)

func TestEmbeddedSources(t *testing.T) {
	sources := map[string]string{
		"mesh.vert": MeshVertexShader,
		"mesh.frag": MeshFragmentShader,
		"line.vert": LineVertexShader,
		"line.frag": LineFragmentShader,
	}
	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing #version 410 core header", name)
		}
		if !strings.Contains(src, "void main()") {
			t.Errorf("%s: missing main", name)
		}
	}
}

func TestMeshUniforms(t *testing.T) {
	// Uniform names set by the renderer must exist in the sources.
	for _, u := range []string{"uViewProj", "uModel"} {
		if !strings.Contains(MeshVertexShader, u) || !strings.Contains(LineVertexShader, u) {
			t.Errorf("vertex shaders missing %s", u)
		}
	}
	for _, u := range []string{"uColor", "uOpacity", "uHasTexture", "uTexture", "uLightDir", "uAmbient", "uMain", "uTint"} {
		if !strings.Contains(MeshFragmentShader, u) {
			t.Errorf("mesh fragment shader missing %s", u)
		}
	}
}
