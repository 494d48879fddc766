package scatter

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session errors.
var (
	ErrSessionClosed = errors.New("session already committed or cancelled")
	ErrNotPreviewing = errors.New("no preview batch to decide on")
	ErrEmptyBatch    = errors.New("no sample could be instanced")
)

// Phase is the session lifecycle state.
type Phase int

// Session phases. Committed and Cancelled are absorbing.
const (
	PhaseIdle Phase = iota
	PhasePreviewing
	PhaseCommitted
	PhaseCancelled
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePreviewing:
		return "Previewing"
	case PhaseCommitted:
		return "Committed"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Decision is the operator's answer at the preview checkpoint.
type Decision int

// Preview decisions.
const (
	DecisionAccept Decision = iota
	DecisionRegenerate
	DecisionCancel
)

// Decider supplies the operator decision once a preview batch is on
// screen. Decide blocks until the operator answers.
type Decider interface {
	Decide(batchSize int) (Decision, error)
}

// CommitResult describes an accepted batch: the destination layer and the
// instances that now live on it.
type CommitResult struct {
	Layer     string
	Instances []InstanceID
}

// bakeLayerBase is the name committed batches bake onto; consecutive
// sessions get numbered suffixes so they never collide.
const bakeLayerBase = "ScatteredBlocks"

// Session drives the preview/accept/regenerate/cancel workflow for one
// scatter run. It owns the current preview batch exclusively: no other
// component deletes or relocates batch members.
type Session struct {
	doc      Document
	target   Target
	source   Source
	cfg      Config
	sampler  *Sampler
	composer *Composer
	log      *zap.Logger

	previewLayer string
	batch        []InstanceID
	sampleCount  int
	phase        Phase
}

// NewSession creates an idle session. All randomness for sampling and
// placement is drawn from rng. A nil logger disables logging.
func NewSession(doc Document, target Target, source Source, cfg Config, rng *rand.Rand, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		doc:      doc,
		target:   target,
		source:   source,
		cfg:      cfg,
		sampler:  NewSampler(rng),
		composer: NewComposer(cfg, rng),
		// Unique suffix keeps concurrent or leftover sessions from sharing
		// an ephemeral workspace.
		previewLayer: "Scatter_PREVIEW_" + uuid.NewString(),
		log:          log,
	}
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// PreviewLayer returns the session's ephemeral layer name.
func (s *Session) PreviewLayer() string {
	return s.previewLayer
}

// Batch returns the instances of the current preview batch.
func (s *Session) Batch() []InstanceID {
	return s.batch
}

// Generate materializes a preview batch. From Previewing it first destroys
// the previous batch, then draws fresh samples. The sample count is
// derived from target area and density once and reused for regeneration.
// When every sample fails to instance, the session reports ErrEmptyBatch
// and is left with no preview geometry, ready for another attempt.
func (s *Session) Generate() error {
	if s.phase == PhaseCommitted || s.phase == PhaseCancelled {
		return ErrSessionClosed
	}

	if s.phase == PhasePreviewing {
		s.doc.Delete(s.batch...)
		s.batch = nil
	}

	if s.sampleCount == 0 {
		area := s.target.Area()
		s.sampleCount = s.cfg.SampleCount(area)
		if area <= 0 {
			s.log.Warn("target has no usable area, scattering onto centroid",
				zap.Float64("area", area))
		}
	}

	s.doc.EnsureLayer(s.previewLayer)

	samples := s.sampler.Samples(s.target, s.sampleCount)
	placed := make([]InstanceID, 0, len(samples))
	for _, sample := range samples {
		id, err := s.composer.Place(s.doc, s.source, sample)
		if err != nil {
			s.log.Debug("skipping sample, source could not be instanced",
				zap.Error(err))
			continue
		}
		if err := s.doc.SetLayer(id, s.previewLayer); err != nil {
			s.doc.Delete(id)
			continue
		}
		placed = append(placed, id)
	}

	if len(placed) == 0 {
		_ = s.doc.PurgeLayer(s.previewLayer)
		s.phase = PhaseIdle
		return ErrEmptyBatch
	}

	s.batch = placed
	s.phase = PhasePreviewing
	s.log.Info("preview batch generated",
		zap.Int("requested", s.sampleCount),
		zap.Int("placed", len(placed)),
		zap.String("layer", s.previewLayer))
	return nil
}

// Accept bakes the current batch onto a freshly named permanent layer and
// discards the emptied preview layer. The session ends Committed.
func (s *Session) Accept() (*CommitResult, error) {
	if s.phase == PhaseCommitted || s.phase == PhaseCancelled {
		return nil, ErrSessionClosed
	}
	if s.phase != PhasePreviewing {
		return nil, ErrNotPreviewing
	}

	// The batch must move as a unit: on a mid-loop failure, members
	// already baked roll back so the batch is never split across layers.
	bakeLayer := s.newBakeLayer()
	moved := make([]InstanceID, 0, len(s.batch))
	for _, id := range s.batch {
		if err := s.doc.SetLayer(id, bakeLayer); err != nil {
			for _, m := range moved {
				_ = s.doc.SetLayer(m, s.previewLayer)
			}
			_ = s.doc.PurgeLayer(bakeLayer)
			return nil, fmt.Errorf("baking %q: %w", id, err)
		}
		moved = append(moved, id)
	}
	if err := s.doc.PurgeLayer(s.previewLayer); err != nil {
		return nil, fmt.Errorf("discarding preview layer: %w", err)
	}

	result := &CommitResult{Layer: bakeLayer, Instances: s.batch}
	s.batch = nil
	s.phase = PhaseCommitted
	s.log.Info("batch committed",
		zap.Int("count", len(result.Instances)),
		zap.String("layer", bakeLayer))
	return result, nil
}

// Cancel destroys any preview geometry and ends the session. It is valid
// from Idle and Previewing and is the teardown path for abnormal exits.
func (s *Session) Cancel() error {
	if s.phase == PhaseCommitted || s.phase == PhaseCancelled {
		return ErrSessionClosed
	}

	if len(s.batch) > 0 {
		s.doc.Delete(s.batch...)
		s.batch = nil
	}
	if s.doc.HasLayer(s.previewLayer) {
		_ = s.doc.PurgeLayer(s.previewLayer)
	}
	s.phase = PhaseCancelled
	s.log.Info("session cancelled")
	return nil
}

// Run drives the full interactive loop: generate a preview, block on the
// operator decision, then regenerate, commit or tear down. A decider
// failure cancels the session so no preview geometry survives. A nil
// result with nil error means the operator cancelled.
func (s *Session) Run(d Decider) (*CommitResult, error) {
	for {
		if err := s.Generate(); err != nil {
			cancelErr := s.Cancel()
			if cancelErr != nil && !errors.Is(cancelErr, ErrSessionClosed) {
				s.log.Warn("teardown after failed preview", zap.Error(cancelErr))
			}
			return nil, err
		}

		decision, err := d.Decide(len(s.batch))
		if err != nil {
			_ = s.Cancel()
			return nil, fmt.Errorf("preview decision: %w", err)
		}

		switch decision {
		case DecisionAccept:
			return s.Accept()
		case DecisionRegenerate:
			continue
		case DecisionCancel:
			return nil, s.Cancel()
		default:
			_ = s.Cancel()
			return nil, fmt.Errorf("unknown decision %d", decision)
		}
	}
}

// newBakeLayer allocates the first unused numbered bake layer name.
func (s *Session) newBakeLayer() string {
	name := bakeLayerBase
	for i := 1; s.doc.HasLayer(name); i++ {
		name = fmt.Sprintf("%s_%d", bakeLayerBase, i)
	}
	s.doc.EnsureLayer(name)
	return name
}
