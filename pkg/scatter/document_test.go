package scatter

import (
	"errors"
	"testing"

	"github.com/meshforge/scatter/pkg/geom"
)

func TestInsertUndefinedBlock(t *testing.T) {
	doc := NewMemDocument()
	_, err := doc.InsertBlock("missing", geom.Vec3{})
	if !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("InsertBlock(undefined) error = %v, want ErrUnknownBlock", err)
	}
}

func TestDuplicateObjectMovesCopy(t *testing.T) {
	doc := NewMemDocument()
	src := doc.AddObject("rock", geom.Vec3{X: 1, Y: 1})

	dup, err := doc.DuplicateObject(src, geom.Vec3{X: 3})
	if err != nil {
		t.Fatalf("DuplicateObject() error: %v", err)
	}
	got, _ := doc.Position(dup)
	want := geom.Vec3{X: 4, Y: 1}
	if got != want {
		t.Errorf("duplicate position = %v, want %v", got, want)
	}
	// Original stays put.
	orig, _ := doc.Position(src)
	if orig != (geom.Vec3{X: 1, Y: 1}) {
		t.Errorf("original moved to %v", orig)
	}
}

func TestDuplicateUnknownObject(t *testing.T) {
	doc := NewMemDocument()
	_, err := doc.DuplicateObject("obj-999999", geom.Vec3{})
	if !errors.Is(err, ErrUnknownInstance) {
		t.Errorf("DuplicateObject(unknown) error = %v, want ErrUnknownInstance", err)
	}
}

func TestSetLayerAndMembers(t *testing.T) {
	doc := NewMemDocument()
	doc.DefineBlock("b")
	id, _ := doc.InsertBlock("b", geom.Vec3{})

	if err := doc.SetLayer(id, "preview"); err != nil {
		t.Fatalf("SetLayer() error: %v", err)
	}
	members := doc.LayerMembers("preview")
	if len(members) != 1 || members[0] != id {
		t.Errorf("LayerMembers = %v, want [%v]", members, id)
	}
	if len(doc.LayerMembers("Default")) != 0 {
		t.Error("instance should have left the default layer")
	}
}

func TestPurgeLayerRefusesNonEmpty(t *testing.T) {
	doc := NewMemDocument()
	doc.DefineBlock("b")
	id, _ := doc.InsertBlock("b", geom.Vec3{})
	_ = doc.SetLayer(id, "preview")

	if err := doc.PurgeLayer("preview"); !errors.Is(err, ErrLayerNotEmpty) {
		t.Errorf("PurgeLayer(non-empty) error = %v, want ErrLayerNotEmpty", err)
	}

	doc.Delete(id)
	if err := doc.PurgeLayer("preview"); err != nil {
		t.Errorf("PurgeLayer(empty) error = %v", err)
	}
	if doc.HasLayer("preview") {
		t.Error("purged layer should be gone")
	}
}

func TestDeleteIgnoresUnknown(t *testing.T) {
	doc := NewMemDocument()
	doc.Delete("obj-000042") // must not panic
	if doc.Count() != 0 {
		t.Errorf("Count = %d, want 0", doc.Count())
	}
}
