package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagFPS         = flag.Int("fps", 0, "Target FPS")
	flagMesh        = flag.String("mesh", "", "GLB/glTF model to use instead of the cube")
	flagLog         = flag.String("log", "", "Log file path")
	flagExport      = flag.String("export", "", "Write the initial scene as GLB to this path and exit")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// ExportPath returns the -export target, or "".
func ExportPath() string {
	return *flagExport
}

// WriteConfigPath returns the -write-config target, or "".
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFPS > 0 {
		cfg.Render.FPS = *flagFPS
	}
	if *flagMesh != "" {
		cfg.Mesh.Path = *flagMesh
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
