package viewer

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"
)

// Run takes over the terminal and runs the frame loop until ctx is done or
// the user quits. Input events and frame ticks are handled on this
// goroutine, so the App needs no locking.
func (a *App) Run(ctx context.Context) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	_ = term.Resize(width, height)
	_, _ = term.WriteString(ansi.SetModeMouseAnyEvent + ansi.SetModeMouseExtSgr)
	a.Resize(width, height)

	defer func() {
		_, _ = term.WriteString(ansi.ResetModeMouseAnyEvent + ansi.ResetModeMouseExtSgr)
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Display()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := term.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("terminal shutdown", zap.Error(err))
		}
	}()

	a.log.Info("viewer started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("fps", a.cfg.Render.FPS),
		zap.Duration("reevaluate", a.cfg.Render.ReevaluateInterval))

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Render.FPS))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ws, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				_ = term.Resize(ws.Width, ws.Height)
			}
			if a.HandleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			a.Update(now)
			term.Clear()
			a.Render(term)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
