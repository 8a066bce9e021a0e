// Package geometry builds the vertex data for the square and the fan and
// uploads it to the device once.
package geometry

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/richinsley/glshapes/graphics"
)

// RGB is a colour with components in [0,1].
type RGB [3]float32

var (
	// DefaultSquareColors gives each of the six square vertices its own colour.
	DefaultSquareColors = []RGB{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{0, 0, 1}, {0, 1, 0}, {1, 0, 0},
	}
	DefaultFanApex = RGB{1, 1, 1}
	// DefaultFanRing is red, orange, yellow, green, blue, violet and red again.
	DefaultFanRing = []RGB{
		{1, 0, 0}, {1, 0.5, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {0.5, 0, 1}, {1, 0, 0},
	}
)

// DefaultFanSegments is the ring subdivision of the fan: 60 degree steps.
const DefaultFanSegments = 6

// Shape is CPU-side vertex data ready for upload.
type Shape struct {
	Name      string
	Positions []float32
	Colors    []float32
	Mode      graphics.Topology
}

// VertexCount is the number of position triples.
func (s Shape) VertexCount() int {
	return len(s.Positions) / ComponentsPerVertex
}

// Vertex returns position i.
func (s Shape) Vertex(i int) [3]float32 {
	return [3]float32{s.Positions[3*i], s.Positions[3*i+1], s.Positions[3*i+2]}
}

// Upload sends both arrays to the device with static usage.
func (s Shape) Upload(dev graphics.Device) (*Mesh, error) {
	positions, err := Upload(dev, s.Positions, graphics.StaticDraw)
	if err != nil {
		return nil, fmt.Errorf("%s positions: %w", s.Name, err)
	}
	colors, err := Upload(dev, s.Colors, graphics.StaticDraw)
	if err != nil {
		return nil, fmt.Errorf("%s colours: %w", s.Name, err)
	}
	return NewMesh(s.Name, positions, colors, s.Mode)
}

func flatten(colors []RGB) []float32 {
	out := make([]float32, 0, len(colors)*3)
	for _, c := range colors {
		out = append(out, c[0], c[1], c[2])
	}
	return out
}

// Square is two triangles covering [-halfSize, halfSize]^2. colors must have
// six entries; nil selects DefaultSquareColors.
func Square(halfSize float32, colors []RGB) (Shape, error) {
	if colors == nil {
		colors = DefaultSquareColors
	}
	if len(colors) != 6 {
		return Shape{}, fmt.Errorf("square needs 6 colours, got %d", len(colors))
	}
	h := halfSize
	return Shape{
		Name: "square",
		Positions: []float32{
			-h, h, 0,
			-h, -h, 0,
			h, h, 0,

			h, h, 0,
			-h, -h, 0,
			h, -h, 0,
		},
		Colors: flatten(colors),
		Mode:   graphics.Triangles,
	}, nil
}

// RingColors returns segments+1 colours for a fan ring, the last repeating
// the first. Six segments use DefaultFanRing; other counts sweep the hue wheel.
func RingColors(segments int) []RGB {
	if segments == DefaultFanSegments {
		return append([]RGB(nil), DefaultFanRing...)
	}
	ring := make([]RGB, segments+1)
	for i := 0; i < segments; i++ {
		c := colorful.Hsv(360*float64(i)/float64(segments), 1, 1).Clamped()
		ring[i] = RGB{float32(c.R), float32(c.G), float32(c.B)}
	}
	ring[segments] = ring[0]
	return ring
}

// Fan is an apex at the origin followed by segments+1 ring vertices of the
// given radius, counter-clockwise from angle 0. The closing ring vertex is a
// copy of the first so the last triangle meets the first exactly.
//
// ring must have segments+1 entries; nil selects RingColors(segments).
func Fan(radius float32, segments int, apex RGB, ring []RGB) (Shape, error) {
	if segments < 3 {
		return Shape{}, fmt.Errorf("fan needs at least 3 segments, got %d", segments)
	}
	if ring == nil {
		ring = RingColors(segments)
	}
	if len(ring) != segments+1 {
		return Shape{}, fmt.Errorf("fan with %d segments needs %d ring colours, got %d", segments, segments+1, len(ring))
	}

	positions := make([]float32, 0, (segments+2)*3)
	positions = append(positions, 0, 0, 0)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		a := float64(i) * step
		positions = append(positions,
			radius*float32(math.Cos(a)),
			radius*float32(math.Sin(a)),
			0)
	}
	positions = append(positions, positions[3], positions[4], positions[5])

	colors := make([]RGB, 0, segments+2)
	colors = append(colors, apex)
	colors = append(colors, ring...)

	return Shape{
		Name:      "fan",
		Positions: positions,
		Colors:    flatten(colors),
		Mode:      graphics.TriangleFan,
	}, nil
}
