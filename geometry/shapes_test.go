package geometry

import (
	"math"
	"testing"

	"github.com/richinsley/glshapes/graphics"
	"github.com/richinsley/glshapes/graphics/graphicstest"
)

func TestSquare(t *testing.T) {
	s, err := Square(0.25, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.VertexCount() != 6 {
		t.Fatalf("square has %d vertices, want 6", s.VertexCount())
	}
	if len(s.Colors) != len(s.Positions) {
		t.Fatalf("colours %d not aligned with positions %d", len(s.Colors), len(s.Positions))
	}
	if s.Mode != graphics.Triangles {
		t.Errorf("mode = %v", s.Mode)
	}
	for i := 0; i < s.VertexCount(); i++ {
		v := s.Vertex(i)
		if math.Abs(float64(v[0])) != 0.25 || math.Abs(float64(v[1])) != 0.25 || v[2] != 0 {
			t.Errorf("vertex %d = %v is not a corner", i, v)
		}
	}
	// opposite corners each appear once per triangle
	if s.Vertex(1) != s.Vertex(4) || s.Vertex(2) != s.Vertex(3) {
		t.Error("triangles do not share the diagonal")
	}
}

func TestSquareRejectsWrongColourCount(t *testing.T) {
	if _, err := Square(0.25, []RGB{{1, 1, 1}}); err == nil {
		t.Fatal("expected error")
	}
}

func TestFanDefault(t *testing.T) {
	s, err := Fan(0.3, DefaultFanSegments, DefaultFanApex, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.VertexCount() != 8 {
		t.Fatalf("fan has %d vertices, want 8", s.VertexCount())
	}
	if s.Mode != graphics.TriangleFan {
		t.Errorf("mode = %v", s.Mode)
	}
	if apex := s.Vertex(0); apex != [3]float32{0, 0, 0} {
		t.Errorf("apex = %v", apex)
	}
	if first, last := s.Vertex(1), s.Vertex(7); first != last {
		t.Errorf("ring not closed: first %v last %v", first, last)
	}
	if first := s.Vertex(1); math.Abs(float64(first[0])-0.3) > 1e-6 || math.Abs(float64(first[1])) > 1e-6 {
		t.Errorf("first ring vertex = %v, want angle 0", first)
	}
	for i := 1; i <= 7; i++ {
		v := s.Vertex(i)
		if r := math.Hypot(float64(v[0]), float64(v[1])); math.Abs(r-0.3) > 1e-6 {
			t.Errorf("ring vertex %d at radius %v", i, r)
		}
	}
	// vertex 2 sits at 60 degrees
	v := s.Vertex(2)
	if math.Abs(float64(v[0])-0.15) > 1e-6 || math.Abs(float64(v[1])-0.3*math.Sqrt(3)/2) > 1e-6 {
		t.Errorf("vertex 2 = %v", v)
	}
	if got := s.Colors[:3]; got[0] != 1 || got[1] != 1 || got[2] != 1 {
		t.Errorf("apex colour = %v", got)
	}
	if got := s.Colors[6:9]; got[0] != 1 || got[1] != 0.5 || got[2] != 0 {
		t.Errorf("second ring colour = %v, want orange", got)
	}
}

func TestFanClosureForOtherSegmentCounts(t *testing.T) {
	for _, segments := range []int{3, 5, 7, 12, 64} {
		s, err := Fan(1, segments, DefaultFanApex, nil)
		if err != nil {
			t.Fatalf("%d segments: %v", segments, err)
		}
		if s.VertexCount() != segments+2 {
			t.Errorf("%d segments: %d vertices", segments, s.VertexCount())
		}
		if s.Vertex(1) != s.Vertex(segments+1) {
			t.Errorf("%d segments: ring not closed", segments)
		}
		n := len(s.Colors)
		if s.Colors[3] != s.Colors[n-3] || s.Colors[4] != s.Colors[n-2] || s.Colors[5] != s.Colors[n-1] {
			t.Errorf("%d segments: ring colour not closed", segments)
		}
	}
}

func TestRingColorsSweepHue(t *testing.T) {
	ring := RingColors(3)
	want := []RGB{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 0}}
	for i := range want {
		for c := 0; c < 3; c++ {
			if math.Abs(float64(ring[i][c]-want[i][c])) > 1e-6 {
				t.Fatalf("ring[%d] = %v, want %v", i, ring[i], want[i])
			}
		}
	}
}

func TestFanRejects(t *testing.T) {
	if _, err := Fan(0.3, 2, DefaultFanApex, nil); err == nil {
		t.Error("expected error for 2 segments")
	}
	if _, err := Fan(0.3, 6, DefaultFanApex, DefaultFanRing[:3]); err == nil {
		t.Error("expected error for short ring")
	}
}

func TestUploadIsStaticAndAligned(t *testing.T) {
	dev := graphicstest.NewDevice()
	s, _ := Fan(0.3, DefaultFanSegments, DefaultFanApex, nil)
	mesh, err := s.Upload(dev)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Count() != 8 {
		t.Errorf("count = %d", mesh.Count())
	}
	for _, c := range dev.Filter("CreateBuffer") {
		if c.Args[1] != graphics.StaticDraw {
			t.Errorf("buffer uploaded with %v", c.Args[1])
		}
	}
	data, ok := dev.Buffer(mesh.Positions.ID)
	if !ok || len(data) != 24 {
		t.Fatalf("position buffer = %v", data)
	}
	if data[3] != s.Positions[3] {
		t.Errorf("uploaded data differs")
	}
}

func TestUploadRejectsPartialVertex(t *testing.T) {
	dev := graphicstest.NewDevice()
	if _, err := Upload(dev, []float32{1, 2}, graphics.StaticDraw); err == nil {
		t.Fatal("expected error")
	}
	if dev.Count("CreateBuffer") != 0 {
		t.Error("buffer created for bad data")
	}
}

func TestNewMeshRejectsMisalignedBuffers(t *testing.T) {
	_, err := NewMesh("bad", &Buffer{ID: 1, Vertices: 6}, &Buffer{ID: 2, Vertices: 5}, graphics.Triangles)
	if err == nil {
		t.Fatal("expected error")
	}
}
