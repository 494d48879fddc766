package scatter

import (
	"math/rand"
	"sort"

	"github.com/meshforge/scatter/pkg/geom"
)

// Sampler generates placement samples on a target. Randomness comes from
// the injected source so sessions and tests can fix seeds.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler drawing from rng.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Samples returns exactly n samples on the target. It never fails: a
// degenerate target (non-positive area) yields n copies of the fallback
// sample, the target centroid paired with the world vertical normal.
//
// Mesh targets are sampled uniformly by area. Surface targets are sampled
// uniformly in parameter space, which over-represents tightly
// parameterized regions; the two paths are deliberately distinct.
func (s *Sampler) Samples(t Target, n int) []Sample {
	if n < 1 {
		return nil
	}

	switch target := t.(type) {
	case *Mesh:
		return s.sampleMesh(target, n)
	case Surface:
		return s.sampleSurface(target, n)
	default:
		return fallbackSamples(t, n)
	}
}

// fallbackSamples fills every slot with the degenerate-target sample.
func fallbackSamples(t Target, n int) []Sample {
	fb := Sample{Point: t.Centroid(), Normal: geom.ZAxis}
	out := make([]Sample, n)
	for i := range out {
		out[i] = fb
	}
	return out
}

func (s *Sampler) sampleSurface(srf Surface, n int) []Sample {
	if srf.Area() <= 0 {
		return fallbackSamples(srf, n)
	}

	uDom, vDom := srf.Domain()
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		u := uDom.Lerp(s.rng.Float64())
		v := vDom.Lerp(s.rng.Float64())
		pt, nrm := srf.EvaluateAt(u, v)
		out = append(out, Sample{Point: pt, Normal: nrm})
	}
	return out
}

func (s *Sampler) sampleMesh(m *Mesh, n int) []Sample {
	// Cumulative-area table over the usable triangles, original order.
	var tris []Triangle
	var cum []float64
	total := 0.0
	for _, tri := range m.Triangles {
		a := tri.Area()
		if a <= 0 {
			continue
		}
		total += a
		cum = append(cum, total)
		tris = append(tris, tri)
	}

	if total <= 0 {
		return fallbackSamples(m, n)
	}

	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		r := s.rng.Float64() * total
		// Lower bound: the first triangle whose cumulative area reaches r,
		// so each triangle is picked proportionally to its own area.
		idx := sort.SearchFloat64s(cum, r)
		if idx >= len(tris) {
			idx = len(tris) - 1
		}
		tri := tris[idx]
		out = append(out, Sample{
			Point:  tri.PointAt(s.rng.Float64(), s.rng.Float64()),
			Normal: tri.Normal(),
		})
	}
	return out
}
