package options

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSceneIsValid(t *testing.T) {
	if err := DefaultScene().Validate(); err != nil {
		t.Fatalf("default scene invalid: %v", err)
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	scene, err := ParseScene(nil)
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	want := DefaultScene()
	if scene.Animation != want.Animation || scene.ViewBox != want.ViewBox || scene.Fan.Segments != 6 {
		t.Fatalf("got %+v, want defaults", scene)
	}
}

func TestParseOverridesAndColours(t *testing.T) {
	src := `
clear_color: "#ff8000"
depth_test: true
animation:
  angle_step: 0.05
fan:
  segments: 8
  apex: [0.5, 0.5, 0.5]
square:
  colors: ["#ff0000", "#00ff00", "#0000ff", [0, 0, 1, 0.5], "#00ff00", "#ff0000"]
`
	scene, err := ParseScene([]byte(src))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if c := scene.ClearColor; c[0] != 1 || math.Abs(float64(c[1])-128.0/255.0) > 1e-6 || c[2] != 0 || c[3] != 1 {
		t.Errorf("clear colour = %v", c)
	}
	if !scene.DepthTest {
		t.Error("depth_test not set")
	}
	if scene.Animation.AngleStep != 0.05 || scene.Animation.OffsetStep != 0.01 {
		t.Errorf("animation = %+v", scene.Animation)
	}
	if scene.Fan.Segments != 8 || scene.Fan.Radius != 0.3 {
		t.Errorf("fan = %+v", scene.Fan)
	}
	if scene.Fan.Apex == nil || *scene.Fan.Apex != (Color{0.5, 0.5, 0.5, 1}) {
		t.Errorf("apex = %v", scene.Fan.Apex)
	}
	if got := scene.Square.Colors[3]; got != (Color{0, 0, 1, 0.5}) {
		t.Errorf("square colour 3 = %v", got)
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "colour: red\n", "field colour not found"},
		{"bad hex", "clear_color: \"#zzz\"\n", "invalid colour"},
		{"short colour", "clear_color: [1, 0]\n", "3 or 4 components"},
		{"view box", "view_box: 0\n", "view_box"},
		{"offset bound", "animation: {offset_bound: -1}\n", "offset_bound"},
		{"negative step", "animation: {offset_step: -0.01}\n", "offset_step"},
		{"segments", "fan: {segments: 2}\n", "fan.segments"},
		{"ring length", "fan: {segments: 4, ring: ['#fff']}\n", "fan.ring needs 5"},
		{"square colours", "square: {colors: ['#fff']}\n", "square.colors"},
		{"zero scale", "fan: {scale: 0}\n", "fan.scale"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tc.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("view_box: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	scene, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if scene.ViewBox != 2 {
		t.Fatalf("view_box = %v", scene.ViewBox)
	}

	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExampleSceneMatchesDefaults(t *testing.T) {
	scene, err := LoadScene(filepath.Join("..", "scene.example.yaml"))
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	def := DefaultScene()
	if scene.Animation != def.Animation || scene.ViewBox != def.ViewBox || scene.Fan.Segments != def.Fan.Segments {
		t.Errorf("example scene drifted from defaults: %+v", scene)
	}
	if len(scene.Square.Colors) != 6 || len(scene.Fan.Ring) != 7 {
		t.Errorf("palette lengths = %d, %d", len(scene.Square.Colors), len(scene.Fan.Ring))
	}
}
