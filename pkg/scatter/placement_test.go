package scatter

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/meshforge/scatter/pkg/geom"
)

func newBlockDoc(t *testing.T) (*MemDocument, BlockSource) {
	t.Helper()
	doc := NewMemDocument()
	doc.DefineBlock("tree")
	return doc, BlockSource{Name: "tree"}
}

func TestPlaceLandsOnSamplePoint(t *testing.T) {
	doc, src := newBlockDoc(t)
	cfg := Config{} // no spin, no align, no scale
	comp := NewComposer(cfg, rand.New(rand.NewSource(1)))

	at := geom.Vec3{X: 4, Y: -1, Z: 2}
	id, err := comp.Place(doc, src, Sample{Point: at, Normal: geom.ZAxis})
	if err != nil {
		t.Fatalf("Place() error: %v", err)
	}
	got, err := doc.Position(id)
	if err != nil {
		t.Fatalf("Position() error: %v", err)
	}
	if got.Distance(at) > 1e-9 {
		t.Errorf("instance at %v, want %v", got, at)
	}
}

func TestPlaceKeepsPivotUnderAllOptions(t *testing.T) {
	doc, src := newBlockDoc(t)
	cfg := DefaultConfig()
	cfg.AlignToNormal = true
	comp := NewComposer(cfg, rand.New(rand.NewSource(7)))

	at := geom.Vec3{X: 1, Y: 2, Z: 3}
	nrm := geom.Vec3{X: 1, Y: 0, Z: 1}.Normalize()
	id, err := comp.Place(doc, src, Sample{Point: at, Normal: nrm})
	if err != nil {
		t.Fatalf("Place() error: %v", err)
	}
	// Every step pivots on the sample point, so the reference point must
	// still land there.
	got, _ := doc.Position(id)
	if got.Distance(at) > 1e-9 {
		t.Errorf("pivoted placement moved reference point to %v, want %v", got, at)
	}
}

func TestPlaceScaleWithinRange(t *testing.T) {
	doc, src := newBlockDoc(t)
	cfg := Config{RandomScale: true, ScaleMin: 0.8, ScaleMax: 1.2}
	comp := NewComposer(cfg, rand.New(rand.NewSource(5)))

	for i := 0; i < 50; i++ {
		id, err := comp.Place(doc, src, Sample{Point: geom.Vec3{}, Normal: geom.ZAxis})
		if err != nil {
			t.Fatalf("Place() error: %v", err)
		}
		m, _ := doc.WorldTransform(id)
		s := m.TransformDirection(geom.Vec3{X: 1}).Length()
		if s < 0.8-1e-9 || s > 1.2+1e-9 {
			t.Errorf("scale factor %v outside [0.8, 1.2]", s)
		}
	}
}

func TestPlaceInstancingFailure(t *testing.T) {
	doc := NewMemDocument() // "tree" never defined
	comp := NewComposer(DefaultConfig(), rand.New(rand.NewSource(1)))

	_, err := comp.Place(doc, BlockSource{Name: "tree"}, Sample{Point: geom.Vec3{}})
	if err == nil {
		t.Fatal("expected instancing failure for undefined block")
	}
	if doc.Count() != 0 {
		t.Errorf("failed placement left %d instances behind", doc.Count())
	}
}

// brokenTransformDoc refuses every transform, as a host adapter with a
// locked or read-only object table might.
type brokenTransformDoc struct {
	*MemDocument
}

func (d *brokenTransformDoc) Transform(id InstanceID, m geom.Mat4) error {
	return errors.New("object table locked")
}

func TestPlaceTransformFailureLeavesNoOrphan(t *testing.T) {
	mem, src := newBlockDoc(t)
	doc := &brokenTransformDoc{MemDocument: mem}
	comp := NewComposer(DefaultConfig(), rand.New(rand.NewSource(1)))

	id, err := comp.Place(doc, src, Sample{Point: geom.Vec3{X: 1}, Normal: geom.ZAxis})
	if err == nil {
		t.Fatal("expected transform failure to surface")
	}
	if id != "" {
		t.Errorf("failed placement returned id %q, want empty", id)
	}
	if mem.Count() != 0 {
		t.Errorf("failed placement left %d instances behind", mem.Count())
	}
}

func TestAlignMapsVerticalOntoNormal(t *testing.T) {
	nrm := geom.Vec3{X: 1, Y: 1, Z: 1}.Normalize()
	cfg := Config{AlignToNormal: true}
	m := placementTransform(Sample{Point: geom.Vec3{X: 2}, Normal: nrm}, cfg, 0, 0)

	got := m.TransformDirection(geom.ZAxis)
	if got.Distance(nrm) > 1e-9 {
		t.Errorf("aligned vertical = %v, want %v", got, nrm)
	}
}

func TestAlignZeroNormalIsNoop(t *testing.T) {
	cfg := Config{AlignToNormal: true, RandomSpin: true}
	spin := math.Pi / 3
	s := Sample{Point: geom.Vec3{X: 1, Y: 1}}

	withAlign := placementTransform(s, cfg, spin, 0)
	spinOnly := placementTransform(s, Config{RandomSpin: true}, spin, 0)
	for i := 0; i < 16; i++ {
		if math.Abs(withAlign[i]-spinOnly[i]) > 1e-12 {
			t.Fatalf("zero normal should leave only the spin, element %d differs: %v vs %v",
				i, withAlign[i], spinOnly[i])
		}
	}
}

func TestSpinBeforeAlignOrderIsSignificant(t *testing.T) {
	// With a tilted normal and a nonzero spin, spinning about world-up
	// before tilting must differ from tilting first.
	p := geom.Vec3{X: 1, Y: 2, Z: 0}
	nrm := geom.Vec3{X: 1, Y: 0, Z: 1}.Normalize()
	spin := math.Pi / 2

	cfg := Config{RandomSpin: true, AlignToNormal: true}
	spinThenAlign := placementTransform(Sample{Point: p, Normal: nrm}, cfg, spin, 0)

	align := geom.Pivot(p, geom.RotationBetween(geom.ZAxis, nrm).ToMat4())
	alignThenSpin := geom.Pivot(p, geom.RotateZ(spin)).Mul(align)

	probe := geom.Vec3{X: 1}
	a := spinThenAlign.TransformDirection(probe)
	b := alignThenSpin.TransformDirection(probe)
	if a.Distance(b) < 1e-6 {
		t.Errorf("transform order had no observable effect: %v vs %v", a, b)
	}
}

func TestSampleCountLaw(t *testing.T) {
	cases := []struct {
		area    float64
		density int
		want    int
	}{
		{200, 10, 10},
		{200, 5, 5},
		{200, 0, 1},  // max(1, …) floor
		{0.1, 10, 1}, // tiny area still yields one sample
		{100, 10, 5},
		{59, 10, 2}, // floor, not round
	}
	for _, tc := range cases {
		cfg := Config{Density: tc.density}
		if got := cfg.SampleCount(tc.area); got != tc.want {
			t.Errorf("SampleCount(area=%v, density=%d) = %d, want %d",
				tc.area, tc.density, got, tc.want)
		}
	}
}
