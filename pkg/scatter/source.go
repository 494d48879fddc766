package scatter

import "github.com/meshforge/scatter/pkg/geom"

// Source is anything that can be instantiated at a point in a document.
// The two variants mirror the two kinds of scatterable object: a reusable
// block definition and plain geometry that gets duplicated per placement.
type Source interface {
	Instantiate(doc Document, at geom.Vec3) (InstanceID, error)
}

// BlockSource instantiates references to a named block definition.
type BlockSource struct {
	Name string
}

// Instantiate inserts a block reference at the sample point.
func (b BlockSource) Instantiate(doc Document, at geom.Vec3) (InstanceID, error) {
	return doc.InsertBlock(b.Name, at)
}

// GeometrySource duplicates an existing object per placement. RefPoint is
// the object's reference point (typically its bounding box center); each
// copy is moved so that point lands on the sample point.
type GeometrySource struct {
	Object   InstanceID
	RefPoint geom.Vec3
}

// Instantiate copies the source object and moves the copy onto the sample
// point.
func (g GeometrySource) Instantiate(doc Document, at geom.Vec3) (InstanceID, error) {
	return doc.DuplicateObject(g.Object, at.Sub(g.RefPoint))
}
