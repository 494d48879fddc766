package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagMesh    = flag.String("mesh", "", "OBJ mesh to scatter onto (default: demo plane)")
	flagBlock   = flag.String("block", "", "Block name to instance instead of duplicating geometry")
	flagDensity = flag.Int("density", -1, "Scatter density, 0 (sparse) to 10 (dense)")
	flagAlign   = flag.Bool("align", false, "Align instances to the target normal")
	flagNoSpin  = flag.Bool("no-spin", false, "Disable random rotation about the vertical")
	flagNoScale = flag.Bool("no-scale", false, "Disable random uniform scaling")
	flagSeed    = flag.Int64("seed", 0, "Random seed (0 = time-derived)")

	flagCountOnly = flag.Bool("count-only", false, "Print the derived sample count and exit without scattering")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// CountOnly reports whether --count-only was requested: report the derived
// sample count instead of running the interactive session.
func CountOnly() bool {
	return *flagCountOnly
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Input.MeshPath = *flagMesh
	}
	if *flagBlock != "" {
		cfg.Input.Block = *flagBlock
	}
	if *flagDensity >= 0 {
		cfg.Scatter.Density = *flagDensity
	}
	if *flagAlign {
		cfg.Scatter.AlignToNormal = true
	}
	if *flagNoSpin {
		cfg.Scatter.RandomSpin = false
	}
	if *flagNoScale {
		cfg.Scatter.RandomScale = false
	}
	if *flagSeed != 0 {
		cfg.Scatter.Seed = *flagSeed
	}
}
