package shader

import (
	"fmt"
	"os"
)

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
in vec3 aPosition;
in vec3 aColor;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
out vec3 vColor;
void main() {
    gl_Position = uProjectionMatrix * uModelViewMatrix * vec4(aPosition, 1.0);
    vColor = aColor;
}
`

const fragmentShaderSourceGL = `#version 410 core
in vec3 vColor;
out vec4 fragColor;
void main() { fragColor = vec4(vColor, 1.0); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

// The GLES sources are also what the translator consumes (WebGL2 dialect).

const vertexShaderSourceGLES = `#version 300 es
in vec3 aPosition;
in vec3 aColor;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
out vec3 vColor;
void main() {
    gl_Position = uProjectionMatrix * uModelViewMatrix * vec4(aPosition, 1.0);
    vColor = aColor;
}
`

const fragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec3 vColor;
out vec4 fragColor;
void main() { fragColor = vec4(vColor, 1.0); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

// Sources is a vertex/fragment pair.
type Sources struct {
	Vertex   string
	Fragment string
}

func vertexSource(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func fragmentSource(isGLES bool) string {
	if isGLES {
		return fragmentShaderSourceGLES
	}
	return fragmentShaderSourceGL
}

// DefaultSources returns the built-in shaders in the requested dialect.
func DefaultSources(isGLES bool) Sources {
	return Sources{
		Vertex:   vertexSource(isGLES),
		Fragment: fragmentSource(isGLES),
	}
}

// LoadSources replaces the stages of base whose path is non-empty with the
// contents of that file.
func LoadSources(base Sources, vertexPath, fragmentPath string) (Sources, error) {
	if vertexPath != "" {
		data, err := os.ReadFile(vertexPath)
		if err != nil {
			return Sources{}, fmt.Errorf("failed to read vertex shader: %w", err)
		}
		base.Vertex = string(data)
	}
	if fragmentPath != "" {
		data, err := os.ReadFile(fragmentPath)
		if err != nil {
			return Sources{}, fmt.Errorf("failed to read fragment shader: %w", err)
		}
		base.Fragment = string(data)
	}
	return base, nil
}
