// Package main is the entry point for the scatter CLI.
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/meshforge/scatter/internal/config"
	"github.com/meshforge/scatter/internal/logger"
	"github.com/meshforge/scatter/internal/meshio"
	"github.com/meshforge/scatter/pkg/geom"
	"github.com/meshforge/scatter/pkg/scatter"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("scatter failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	seed := cfg.Scatter.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Log.Debug("random source seeded", zap.Int64("seed", seed))

	target, err := loadTarget(cfg)
	if err != nil {
		return fmt.Errorf("loading target: %w", err)
	}

	if config.CountOnly() {
		return printSampleCount(os.Stdout, target, cfg)
	}

	doc := scatter.NewMemDocument()
	src := buildSource(cfg, doc)

	session := scatter.NewSession(doc, target, src, scatter.Config{
		AlignToNormal: cfg.Scatter.AlignToNormal,
		RandomSpin:    cfg.Scatter.RandomSpin,
		RandomScale:   cfg.Scatter.RandomScale,
		ScaleMin:      cfg.Scatter.ScaleMin,
		ScaleMax:      cfg.Scatter.ScaleMax,
		Density:       cfg.Scatter.Density,
	}, rng, logger.Log)

	result, err := session.Run(NewStdinDecider(os.Stdin, os.Stdout))
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println("Cancelled.")
		return nil
	}

	fmt.Printf("Baked %d objects onto layer %q.\n", len(result.Instances), result.Layer)
	return nil
}

// printSampleCount reports how many instances a session on this target
// would place, without touching any document.
func printSampleCount(w io.Writer, target scatter.Target, cfg *config.Config) error {
	n := scatter.Config{Density: cfg.Scatter.Density}.SampleCount(target.Area())
	_, err := fmt.Fprintf(w, "Would place %d instances (area %.2f, density %d).\n",
		n, target.Area(), cfg.Scatter.Density)
	return err
}

// loadTarget picks the scatter target: an OBJ mesh when configured,
// otherwise a built-in 20x10 demo plane.
func loadTarget(cfg *config.Config) (scatter.Target, error) {
	if cfg.Input.MeshPath != "" {
		m, err := meshio.LoadOBJ(cfg.Input.MeshPath)
		if err != nil {
			return nil, err
		}
		logger.Log.Info("mesh target loaded",
			zap.String("path", cfg.Input.MeshPath),
			zap.Int("triangles", len(m.Triangles)),
			zap.Float64("area", m.Area()))
		return m, nil
	}
	return scatter.PlaneSurface{Width: 20, Height: 10}, nil
}

// buildSource picks the scatter source: a named block reference when
// configured, otherwise a demo geometry object that gets duplicated.
func buildSource(cfg *config.Config, doc *scatter.MemDocument) scatter.Source {
	if cfg.Input.Block != "" {
		doc.DefineBlock(cfg.Input.Block)
		return scatter.BlockSource{Name: cfg.Input.Block}
	}
	ref := geom.Vec3{}
	obj := doc.AddObject("demo", ref)
	return scatter.GeometrySource{Object: obj, RefPoint: ref}
}
