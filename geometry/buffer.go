package geometry

import (
	"fmt"

	"github.com/richinsley/glshapes/graphics"
)

// ComponentsPerVertex is the float count per position or colour entry.
const ComponentsPerVertex = 3

// Buffer is a device buffer of float triples. Its contents never change
// after Upload.
type Buffer struct {
	ID       uint32
	Vertices int
}

// Upload copies data into a new device buffer.
func Upload(dev graphics.Device, data []float32, usage graphics.Usage) (*Buffer, error) {
	if len(data) == 0 || len(data)%ComponentsPerVertex != 0 {
		return nil, fmt.Errorf("buffer data length %d is not a positive multiple of %d", len(data), ComponentsPerVertex)
	}
	return &Buffer{
		ID:       dev.CreateBuffer(data, usage),
		Vertices: len(data) / ComponentsPerVertex,
	}, nil
}

// Mesh pairs index-aligned position and colour buffers with a topology.
type Mesh struct {
	Name      string
	Positions *Buffer
	Colors    *Buffer
	Mode      graphics.Topology
}

// NewMesh checks that both buffers describe the same vertices.
func NewMesh(name string, positions, colors *Buffer, mode graphics.Topology) (*Mesh, error) {
	if positions.Vertices != colors.Vertices {
		return nil, fmt.Errorf("%s: %d positions but %d colours", name, positions.Vertices, colors.Vertices)
	}
	return &Mesh{Name: name, Positions: positions, Colors: colors, Mode: mode}, nil
}

// Count is the number of vertices a draw call consumes.
func (m *Mesh) Count() int {
	return m.Positions.Vertices
}
