package config

import (
	"flag"

	"github.com/Faultbox/brickforge/pkg/brick"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagResolution = flag.Int("resolution", 0, "Footprint cells along the longer horizontal axis")
	flagFamily     = flag.String("family", "", "Block family: plate or brick")
	flagColorMode  = flag.String("color-mode", "", "Color mode: none, uniform or surface")
	flagColor      = flag.String("color", "", "Uniform color as #rrggbb")
	flagDirect     = flag.Bool("direct-color", false, "Emit literal colors instead of palette codes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagResolution > 0 {
		cfg.Pipeline.Resolution = *flagResolution
	}
	if *flagFamily != "" {
		if family, err := brick.ParseFamily(*flagFamily); err == nil {
			cfg.Pipeline.Family = family
		}
	}
	if *flagColorMode != "" {
		cfg.Pipeline.ColorMode = *flagColorMode
	}
	if *flagColor != "" {
		cfg.Pipeline.UniformColor = *flagColor
	}
	if *flagDirect {
		cfg.Pipeline.DirectColor = true
	}
}
