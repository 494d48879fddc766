package scatter

import (
	"math"
	"math/rand"

	"github.com/meshforge/scatter/pkg/geom"
)

// Config holds the placement options for one scatter session. It is
// immutable for the session's lifetime.
type Config struct {
	AlignToNormal bool
	RandomSpin    bool
	RandomScale   bool
	ScaleMin      float64
	ScaleMax      float64
	Density       int // 0 = sparse .. 10 = dense
}

// DefaultConfig returns the standard scatter options: random spin and
// scale on, normal alignment off, scale range [0.8, 1.2], density 5.
func DefaultConfig() Config {
	return Config{
		AlignToNormal: false,
		RandomSpin:    true,
		RandomScale:   true,
		ScaleMin:      0.8,
		ScaleMax:      1.2,
		Density:       5,
	}
}

// areaPerSample is the target area that yields one sample at maximum
// density.
const areaPerSample = 20.0

// SampleCount derives the batch size from the target area:
// max(1, floor((area/20) * (density/10))).
func (c Config) SampleCount(area float64) int {
	n := int((area / areaPerSample) * (float64(c.Density) / 10.0))
	if n < 1 {
		return 1
	}
	return n
}

// Composer turns samples into placed instances. Randomness comes from the
// injected source shared with the session.
type Composer struct {
	cfg Config
	rng *rand.Rand
}

// NewComposer creates a composer for one session's config.
func NewComposer(cfg Config, rng *rand.Rand) *Composer {
	return &Composer{cfg: cfg, rng: rng}
}

// Place instantiates the source at the sample point and applies the
// composed placement transform. On any error no instance survives for
// this sample and the document is left untouched; a copy whose transform
// fails is deleted rather than left behind.
func (c *Composer) Place(doc Document, src Source, s Sample) (InstanceID, error) {
	id, err := src.Instantiate(doc, s.Point)
	if err != nil {
		return "", err
	}

	var spin, scale float64
	if c.cfg.RandomSpin {
		spin = c.rng.Float64() * 2 * math.Pi
	}
	if c.cfg.RandomScale {
		scale = c.cfg.ScaleMin + c.rng.Float64()*(c.cfg.ScaleMax-c.cfg.ScaleMin)
	}

	if err := doc.Transform(id, placementTransform(s, c.cfg, spin, scale)); err != nil {
		doc.Delete(id)
		return "", err
	}
	return id, nil
}

// placementTransform composes the placement steps in their fixed order:
// spin about the world vertical through the sample point, then the
// rotation taking the world vertical onto the sample normal, then uniform
// scale. All three pivot on the sample point. Spin runs before alignment
// so the random yaw is always measured in the unrotated world frame.
func placementTransform(s Sample, cfg Config, spin, scale float64) geom.Mat4 {
	m := geom.Identity()
	if cfg.RandomSpin {
		m = geom.Pivot(s.Point, geom.RotateZ(spin)).Mul(m)
	}
	if cfg.AlignToNormal && !s.Normal.IsZero() {
		align := geom.RotationBetween(geom.ZAxis, s.Normal.Normalize()).ToMat4()
		m = geom.Pivot(s.Point, align).Mul(m)
	}
	if cfg.RandomScale {
		m = geom.Pivot(s.Point, geom.UniformScale(scale)).Mul(m)
	}
	return m
}
