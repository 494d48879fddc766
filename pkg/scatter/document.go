package scatter

import (
	"errors"
	"fmt"

	"github.com/meshforge/scatter/pkg/geom"
)

// Document errors.
var (
	ErrUnknownBlock    = errors.New("unknown block definition")
	ErrUnknownInstance = errors.New("unknown instance")
	ErrUnknownLayer    = errors.New("unknown layer")
	ErrLayerNotEmpty   = errors.New("layer still has members")
)

// InstanceID identifies one placed object inside a document.
type InstanceID string

// Document is the host holding placed instances and the layers that own
// them. Every instance belongs to exactly one layer at a time.
type Document interface {
	// InsertBlock places a new reference to a named block definition at a
	// point. Fails with ErrUnknownBlock for an undefined name.
	InsertBlock(name string, at geom.Vec3) (InstanceID, error)

	// DuplicateObject copies an existing object and moves the copy by
	// offset. Fails with ErrUnknownInstance for an unknown source.
	DuplicateObject(src InstanceID, offset geom.Vec3) (InstanceID, error)

	// EnsureLayer creates the layer if it does not exist yet.
	EnsureLayer(name string)

	// HasLayer reports whether the layer exists.
	HasLayer(name string) bool

	// SetLayer moves an instance onto a layer, creating the layer first if
	// needed.
	SetLayer(id InstanceID, layer string) error

	// LayerMembers lists the instances currently owned by a layer.
	LayerMembers(layer string) []InstanceID

	// Transform applies an additional transform to an instance.
	Transform(id InstanceID, m geom.Mat4) error

	// Delete removes instances from the document. Unknown IDs are ignored.
	Delete(ids ...InstanceID)

	// PurgeLayer removes an empty layer. Fails with ErrLayerNotEmpty when
	// instances still reference it.
	PurgeLayer(name string) error
}

type memInstance struct {
	label string
	layer string
	ref   geom.Vec3 // local reference point
	xform geom.Mat4 // accumulated placement transform
}

// MemDocument is an in-memory Document used by the CLI and tests. The zero
// value is not usable; call NewMemDocument.
type MemDocument struct {
	instances map[InstanceID]*memInstance
	layers    map[string]struct{}
	blocks    map[string]struct{}
	nextID    int
}

// NewMemDocument creates an empty in-memory document with a default layer.
func NewMemDocument() *MemDocument {
	return &MemDocument{
		instances: make(map[InstanceID]*memInstance),
		layers:    map[string]struct{}{"Default": {}},
		blocks:    make(map[string]struct{}),
	}
}

// DefineBlock registers a block definition that InsertBlock may reference.
func (d *MemDocument) DefineBlock(name string) {
	d.blocks[name] = struct{}{}
}

// AddObject adds standalone geometry with a local reference point, on the
// default layer. Returns its ID for use as a duplication source.
func (d *MemDocument) AddObject(label string, ref geom.Vec3) InstanceID {
	id := d.allocID()
	d.instances[id] = &memInstance{
		label: label,
		layer: "Default",
		ref:   ref,
		xform: geom.Identity(),
	}
	return id
}

// InsertBlock implements Document.
func (d *MemDocument) InsertBlock(name string, at geom.Vec3) (InstanceID, error) {
	if _, ok := d.blocks[name]; !ok {
		return "", fmt.Errorf("insert %q: %w", name, ErrUnknownBlock)
	}
	id := d.allocID()
	d.instances[id] = &memInstance{
		label: "block:" + name,
		layer: "Default",
		xform: geom.TranslateVec(at),
	}
	return id, nil
}

// DuplicateObject implements Document.
func (d *MemDocument) DuplicateObject(src InstanceID, offset geom.Vec3) (InstanceID, error) {
	orig, ok := d.instances[src]
	if !ok {
		return "", fmt.Errorf("duplicate %q: %w", src, ErrUnknownInstance)
	}
	id := d.allocID()
	d.instances[id] = &memInstance{
		label: orig.label,
		layer: "Default",
		ref:   orig.ref,
		xform: geom.TranslateVec(offset).Mul(orig.xform),
	}
	return id, nil
}

// EnsureLayer implements Document.
func (d *MemDocument) EnsureLayer(name string) {
	d.layers[name] = struct{}{}
}

// HasLayer implements Document.
func (d *MemDocument) HasLayer(name string) bool {
	_, ok := d.layers[name]
	return ok
}

// SetLayer implements Document.
func (d *MemDocument) SetLayer(id InstanceID, layer string) error {
	inst, ok := d.instances[id]
	if !ok {
		return fmt.Errorf("set layer of %q: %w", id, ErrUnknownInstance)
	}
	d.EnsureLayer(layer)
	inst.layer = layer
	return nil
}

// LayerMembers implements Document.
func (d *MemDocument) LayerMembers(layer string) []InstanceID {
	var out []InstanceID
	for id, inst := range d.instances {
		if inst.layer == layer {
			out = append(out, id)
		}
	}
	return out
}

// Transform implements Document.
func (d *MemDocument) Transform(id InstanceID, m geom.Mat4) error {
	inst, ok := d.instances[id]
	if !ok {
		return fmt.Errorf("transform %q: %w", id, ErrUnknownInstance)
	}
	inst.xform = m.Mul(inst.xform)
	return nil
}

// Delete implements Document.
func (d *MemDocument) Delete(ids ...InstanceID) {
	for _, id := range ids {
		delete(d.instances, id)
	}
}

// PurgeLayer implements Document.
func (d *MemDocument) PurgeLayer(name string) error {
	if !d.HasLayer(name) {
		return fmt.Errorf("purge %q: %w", name, ErrUnknownLayer)
	}
	if len(d.LayerMembers(name)) > 0 {
		return fmt.Errorf("purge %q: %w", name, ErrLayerNotEmpty)
	}
	delete(d.layers, name)
	return nil
}

// Count returns the number of live instances.
func (d *MemDocument) Count() int {
	return len(d.instances)
}

// WorldTransform returns the accumulated placement transform of an
// instance.
func (d *MemDocument) WorldTransform(id InstanceID) (geom.Mat4, error) {
	inst, ok := d.instances[id]
	if !ok {
		return geom.Mat4{}, fmt.Errorf("world transform of %q: %w", id, ErrUnknownInstance)
	}
	return inst.xform, nil
}

// Position returns the world position of an instance's reference point.
func (d *MemDocument) Position(id InstanceID) (geom.Vec3, error) {
	inst, ok := d.instances[id]
	if !ok {
		return geom.Vec3{}, fmt.Errorf("position of %q: %w", id, ErrUnknownInstance)
	}
	return inst.xform.TransformPoint(inst.ref), nil
}

func (d *MemDocument) allocID() InstanceID {
	d.nextID++
	return InstanceID(fmt.Sprintf("obj-%06d", d.nextID))
}
