// cubecam - Terminal camera and cube viewer
// Position a camera and a shaded cube with sliders and watch the result in
// your terminal.
//
// Controls:
//
//	Up/Down     - Select a slider (Tab / Shift+Tab jump between panels)
//	Left/Right  - Move the slider by 1 ([ and ] by 100)
//	Space       - Flip the selected toggle
//	N/P/O       - Toggle normals, planes and points
//	R           - Reset every slider
//	Mouse drag  - Orbit the camera (right button pans)
//	Scroll      - Dolly the camera, or nudge the slider under the pointer
//	Ctrl+S      - Save a PNG screenshot
//	Ctrl+E      - Export the scene as GLB
//	Esc/Q       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/taigrr/cubecam/internal/config"
	"github.com/taigrr/cubecam/internal/logger"
	"github.com/taigrr/cubecam/internal/viewer"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cubecam - Terminal camera and cube viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cubecam [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Select slider (Tab switches panel)\n")
		fmt.Fprintf(os.Stderr, "  Left/Right  - Adjust by 1 ([ ] by 100)\n")
		fmt.Fprintf(os.Stderr, "  N/P/O       - Toggle normals/planes/points\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset sliders\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit camera (right button pans)\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Dolly camera\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S      - Screenshot\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+E      - Export GLB\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	config.ParseFlags()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Config written to %s\n", path)
		return nil
	}

	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = config.DefaultLogFile()
	}
	log := logger.New(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false)
	defer func() { _ = log.Sync() }()

	app, err := viewer.New(cfg, log)
	if err != nil {
		return err
	}

	if path := config.ExportPath(); path != "" {
		if err := app.Export(path); err != nil {
			return err
		}
		log.Info("scene exported", zap.String("path", path))
		fmt.Fprintf(os.Stderr, "Scene written to %s\n", path)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
