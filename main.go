package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/export"
	"github.com/pthm-cable/flowfield/field"
	"github.com/pthm-cable/flowfield/noise"
	"github.com/pthm-cable/flowfield/raster"
	"github.com/pthm-cable/flowfield/renderer"
	"github.com/pthm-cable/flowfield/telemetry"
	"github.com/pthm-cable/flowfield/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Generate once, write outputs and exit")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and exports")
	seed := flag.Uint64("seed", 0, "Particle seed (0 = config seed, else a new seed per generation)")
	noiseSeed := flag.Int64("noise-seed", 0, "Noise lattice seed (0 = use config)")
	particlesPath := flag.String("particles", "", "Exported JSON whose start points replace seeding")
	pngPath := flag.String("png", "", "Write the field as PNG (headless only)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *noiseSeed != 0 {
		cfg.Noise.Seed = *noiseSeed
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	// One noise field for the whole process
	sampler, err := noise.New(cfg.NoiseOptions())
	if err != nil {
		slog.Error("failed to create noise field", "error", err)
		os.Exit(1)
	}
	gen := field.NewGenerator(sampler, append(cfg.GeneratorOptions(), field.WithLogger(logger))...)

	out, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if out != nil {
		slog.Info("writing run outputs", "dir", out.Dir())
	}

	a := newApp(cfg, gen, out)
	a.seed = *seed

	if *particlesPath != "" {
		doc, err := export.ReadFile(*particlesPath)
		if err != nil {
			slog.Error("failed to read particles", "error", err)
			os.Exit(1)
		}
		a.starts = doc.StartParticles()
		if doc.Parameters.Seed != nil && a.seed == 0 {
			a.seed = *doc.Parameters.Seed
		}
		slog.Info("using provided particles", "path", *particlesPath, "count", len(a.starts))
	}

	slog.Info("noise field ready", "kind", cfg.Noise.Kind, "seed", cfg.Noise.Seed)

	if *headless {
		if err := runHeadless(a, *pngPath); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runWindow(a, *configPath != "")
}

// runHeadless generates one field at the configured size and writes outputs.
func runHeadless(a *app, pngPath string) error {
	w, h := a.cfg.Field.Width, a.cfg.Field.Height
	if err := a.regenerate(w, h); err != nil {
		return err
	}

	if _, err := a.download(); err != nil {
		return err
	}

	if pngPath != "" {
		if err := raster.SavePNG(pngPath, int(w), int(h), a.particles, a.style()); err != nil {
			return err
		}
		slog.Info("png written", "path", pngPath)
	}
	return nil
}

// runWindow opens the interactive view. The controls start from ui.Preset
// unless a config file was given.
func runWindow(a *app, configured bool) {
	cfg := a.cfg

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Field.Width), int32(cfg.Field.Height), "Flow Field")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Render.TargetFPS))

	fieldRenderer, err := renderer.NewFieldRenderer(a.style())
	if err != nil {
		slog.Error("invalid render colours", "error", err)
		return
	}

	panel := ui.NewPanel(10, 10, 260)
	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(0, 0)
	showPerf := false
	showBounds := false
	params := ui.Preset()
	if configured {
		params = ui.Params{
			Count:       cfg.Field.Count,
			Amplitude:   cfg.Field.Amplitude,
			Damping:     cfg.Field.Damping,
			Scale:       cfg.Field.Scale,
			StrokeAlpha: cfg.Render.StrokeAlpha,
			LineWidth:   cfg.Render.LineWidth,
		}
	}

	regen := func() {
		cfg.Field.Count = params.Count
		cfg.Field.Amplitude = params.Amplitude
		cfg.Field.Damping = params.Damping
		cfg.Field.Scale = params.Scale
		cfg.Recompute()
		if err := a.regenerate(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())); err != nil {
			slog.Error("regenerate failed", "error", err)
		}
		panel.SetStatus(fmt.Sprintf("%d lines, %.0f%% kept, %d fragmented",
			a.stats.Particles, a.stats.RetentionRatio*100, a.stats.FragmentedLines))
	}
	regen()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			regen()
		}
		if rl.IsKeyPressed(rl.KeyH) {
			panel.Toggle()
		}
		if rl.IsKeyPressed(rl.KeyP) {
			showPerf = !showPerf
		}
		if rl.IsKeyPressed(rl.KeyB) {
			showBounds = !showBounds
		}
		if rl.IsKeyPressed(rl.KeyR) {
			regen()
		}

		rl.BeginDrawing()
		a.perf.Time(telemetry.PhaseDraw, func() {
			fieldRenderer.Draw(a.particles)
		})
		if showBounds {
			fieldRenderer.DrawBounds(a.current.Bounds())
		}
		act := panel.Draw(&params)
		screenW, screenH := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		hud.Draw(ui.HUDData{
			Stats:        a.stats,
			Seed:         a.lastSeed,
			FPS:          rl.GetFPS(),
			ScreenWidth:  screenW,
			ScreenHeight: screenH,
		})
		if showPerf {
			perfPanel.SetPosition(screenW-250, 130)
			perfPanel.Draw(a.perf)
		}
		hud.DrawControls(screenH, "[H] panel  [P] perf  [B] bounds  [R] regenerate")
		rl.EndDrawing()

		if act.Restyled {
			cfg.Render.StrokeAlpha = params.StrokeAlpha
			cfg.Render.LineWidth = params.LineWidth
			if act.Recolour {
				next := raster.NextPalette(a.style())
				cfg.Render.Background = next.Background
				cfg.Render.Stroke = next.Stroke
			}
			if err := fieldRenderer.SetStyle(a.style()); err != nil {
				slog.Error("invalid render colours", "error", err)
			}
		}
		if act.Changed || act.Regenerate {
			regen()
		}
		if act.Download {
			path, err := a.download()
			if err != nil {
				slog.Error("download failed", "error", err)
				panel.SetStatus(err.Error())
			} else {
				panel.SetStatus("saved " + path)
			}
		}
	}

	for _, name := range a.perf.SortedNames() {
		slog.Info("phase timing", "phase", name, "avg", a.perf.Avg(name))
	}
}
