package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is an RGBA colour with components in [0,1]. In YAML it is either a
// hex string ("#ff8000") or a list of three or four numbers.
type Color [4]float32

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		hex, err := colorful.Hex(s)
		if err != nil {
			return fmt.Errorf("line %d: invalid colour %q: %w", value.Line, s, err)
		}
		*c = Color{float32(hex.R), float32(hex.G), float32(hex.B), 1}
		return nil
	case yaml.SequenceNode:
		var parts []float32
		if err := value.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("line %d: colour needs 3 or 4 components, got %d", value.Line, len(parts))
		}
		*c = Color{parts[0], parts[1], parts[2], 1}
		if len(parts) == 4 {
			c[3] = parts[3]
		}
		return nil
	}
	return fmt.Errorf("line %d: colour must be a hex string or a list", value.Line)
}

// RGB drops the alpha component.
func (c Color) RGB() [3]float32 {
	return [3]float32{c[0], c[1], c[2]}
}

// AnimationConfig holds the per-tick oscillator steps.
type AnimationConfig struct {
	AngleStep   float64 `yaml:"angle_step"`
	OffsetStep  float64 `yaml:"offset_step"`
	OffsetBound float64 `yaml:"offset_bound"`
}

// SquareConfig describes the rotating square. An empty Colors list selects
// the built-in per-vertex palette.
type SquareConfig struct {
	HalfSize float32 `yaml:"half_size"`
	Colors   []Color `yaml:"colors"`
}

// FanConfig describes the bouncing fan. An empty Ring list selects the
// built-in palette for six segments and an HSV sweep otherwise.
type FanConfig struct {
	Radius   float32 `yaml:"radius"`
	Segments int     `yaml:"segments"`
	AnchorX  float32 `yaml:"anchor_x"`
	Scale    float32 `yaml:"scale"`
	Apex     *Color  `yaml:"apex"`
	Ring     []Color `yaml:"ring"`
}

// ShaderConfig names optional source files replacing the built-in shaders.
// They are GLSL ES 3.00 when translation is on and GLSL 4.10 otherwise.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// Scene is the YAML scene file.
type Scene struct {
	ClearColor Color           `yaml:"clear_color"`
	ViewBox    float32         `yaml:"view_box"`
	DepthTest  bool            `yaml:"depth_test"`
	Animation  AnimationConfig `yaml:"animation"`
	Square     SquareConfig    `yaml:"square"`
	Fan        FanConfig       `yaml:"fan"`
	Shaders    ShaderConfig    `yaml:"shaders"`
}

// DefaultScene returns the scene used when no file is given.
func DefaultScene() Scene {
	return Scene{
		ClearColor: Color{0.1, 0.1, 0.1, 1},
		ViewBox:    1,
		Animation: AnimationConfig{
			AngleStep:   0.02,
			OffsetStep:  0.01,
			OffsetBound: 0.7,
		},
		Square: SquareConfig{HalfSize: 0.25},
		Fan: FanConfig{
			Radius:   0.3,
			Segments: 6,
			AnchorX:  0.6,
			Scale:    1,
		},
	}
}

// LoadScene reads a scene file. Keys missing from the file keep their defaults.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to read scene file: %w", err)
	}
	scene, err := ParseScene(data)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// ParseScene decodes YAML on top of DefaultScene and validates the result.
func ParseScene(data []byte) (Scene, error) {
	scene := DefaultScene()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&scene); err != nil && !errors.Is(err, io.EOF) {
		return Scene{}, fmt.Errorf("invalid scene: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return Scene{}, err
	}
	return scene, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate reports the first setting that cannot produce a drawable scene.
func (s Scene) Validate() error {
	switch {
	case !(s.ViewBox > 0):
		return fmt.Errorf("view_box must be positive, got %v", s.ViewBox)
	case !finite(s.Animation.AngleStep):
		return fmt.Errorf("animation.angle_step must be finite")
	case !finite(s.Animation.OffsetStep) || s.Animation.OffsetStep < 0:
		return fmt.Errorf("animation.offset_step must be a non-negative number, got %v", s.Animation.OffsetStep)
	case !(s.Animation.OffsetBound > 0) || !finite(s.Animation.OffsetBound):
		return fmt.Errorf("animation.offset_bound must be positive, got %v", s.Animation.OffsetBound)
	case !(s.Square.HalfSize > 0):
		return fmt.Errorf("square.half_size must be positive, got %v", s.Square.HalfSize)
	case len(s.Square.Colors) != 0 && len(s.Square.Colors) != 6:
		return fmt.Errorf("square.colors needs 6 entries, got %d", len(s.Square.Colors))
	case s.Fan.Segments < 3:
		return fmt.Errorf("fan.segments must be at least 3, got %d", s.Fan.Segments)
	case !(s.Fan.Radius > 0):
		return fmt.Errorf("fan.radius must be positive, got %v", s.Fan.Radius)
	case s.Fan.Scale == 0:
		return fmt.Errorf("fan.scale must not be zero")
	case len(s.Fan.Ring) != 0 && len(s.Fan.Ring) != s.Fan.Segments+1:
		return fmt.Errorf("fan.ring needs %d entries for %d segments, got %d", s.Fan.Segments+1, s.Fan.Segments, len(s.Fan.Ring))
	}
	return nil
}
