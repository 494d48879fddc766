package scatter

import (
	"math"

	"github.com/meshforge/scatter/pkg/geom"
)

// Triangle is a single mesh face defined by three vertices.
type Triangle struct {
	P0, P1, P2 geom.Vec3
}

// Area returns the triangle area (half the edge cross product length).
func (t Triangle) Area() float64 {
	e1 := t.P1.Sub(t.P0)
	e2 := t.P2.Sub(t.P0)
	return 0.5 * e1.Cross(e2).Length()
}

// Normal returns the unit face normal, or the zero vector for a degenerate
// triangle whose edge cross product vanishes.
func (t Triangle) Normal() geom.Vec3 {
	e1 := t.P1.Sub(t.P0)
	e2 := t.P2.Sub(t.P0)
	return e1.Cross(e2).Normalize()
}

// PointAt maps two unit random values to an area-uniform point inside the
// triangle using the square-root barycentric map: s = sqrt(r1), weights
// a = 1-s, b = r2*s, c = 1-a-b.
func (t Triangle) PointAt(r1, r2 float64) geom.Vec3 {
	s := math.Sqrt(r1)
	a := 1 - s
	b := r2 * s
	c := 1 - a - b
	return t.P0.Scale(a).Add(t.P1.Scale(b)).Add(t.P2.Scale(c))
}

// Centroid returns the vertex average.
func (t Triangle) Centroid() geom.Vec3 {
	return t.P0.Add(t.P1).Add(t.P2).Scale(1.0 / 3.0)
}

// Mesh is a triangle list target. Degenerate faces are kept in the list but
// excluded from the sampling population.
type Mesh struct {
	Triangles []Triangle
}

// NewMesh wraps a triangle list as a target.
func NewMesh(tris []Triangle) *Mesh {
	return &Mesh{Triangles: tris}
}

// NewMeshFromFaces builds a mesh from an indexed face list. Quads and
// larger polygons are fanned into triangles from their first vertex. Faces
// with fewer than three vertices or out-of-range indices are skipped.
func NewMeshFromFaces(vertices []geom.Vec3, faces [][]int) *Mesh {
	var tris []Triangle
	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		ok := true
		for _, idx := range face {
			if idx < 0 || idx >= len(vertices) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for i := 1; i+1 < len(face); i++ {
			tris = append(tris, Triangle{
				P0: vertices[face[0]],
				P1: vertices[face[i]],
				P2: vertices[face[i+1]],
			})
		}
	}
	return NewMesh(tris)
}

// Area returns the summed area of all usable (positive-area) triangles.
func (m *Mesh) Area() float64 {
	total := 0.0
	for _, tri := range m.Triangles {
		if a := tri.Area(); a > 0 {
			total += a
		}
	}
	return total
}

// Centroid returns the area-weighted centroid of the usable triangles.
// With no usable area it falls back to the plain average of all vertices,
// or the origin for an empty mesh.
func (m *Mesh) Centroid() geom.Vec3 {
	var sum geom.Vec3
	total := 0.0
	for _, tri := range m.Triangles {
		a := tri.Area()
		if a <= 0 {
			continue
		}
		sum = sum.Add(tri.Centroid().Scale(a))
		total += a
	}
	if total > 0 {
		return sum.Scale(1 / total)
	}

	if len(m.Triangles) == 0 {
		return geom.Vec3{}
	}
	for _, tri := range m.Triangles {
		sum = sum.Add(tri.Centroid())
	}
	return sum.Scale(1 / float64(len(m.Triangles)))
}
