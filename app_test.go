package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/export"
	"github.com/pthm-cable/flowfield/field"
	"github.com/pthm-cable/flowfield/noise"
)

func testApp(t *testing.T) *app {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Field.Width = 200
	cfg.Field.Height = 100
	cfg.Field.Count = 20
	cfg.Recompute()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := field.NewGenerator(noise.NewSimplex(3), field.WithLogger(quiet))
	a := newApp(cfg, gen, nil)
	a.seed = 9
	return a
}

func TestRunHeadlessWritesExportWithoutOutputDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	a := testApp(t)
	png := filepath.Join(dir, "field.png")
	if err := runHeadless(a, png); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "flow-field-*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("want one export in the working directory, got %v (%v)", matches, err)
	}
	doc, err := export.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(doc.Particles) != 20 {
		t.Errorf("exported %d particles, want 20", len(doc.Particles))
	}
	if doc.Parameters.Seed == nil || *doc.Parameters.Seed != 9 {
		t.Errorf("exported seed = %v, want 9", doc.Parameters.Seed)
	}
	if _, err := os.Stat(png); err != nil {
		t.Errorf("png not written: %v", err)
	}
}

func TestDownloadBeforeGenerate(t *testing.T) {
	a := testApp(t)
	if _, err := a.download(); err == nil {
		t.Error("download with no field should fail")
	}
}

func TestStyleFallsBackToDefaults(t *testing.T) {
	a := testApp(t)
	a.cfg.Render.Background = ""
	a.cfg.Render.Stroke = "#ff0000"
	s := a.style()
	if s.Background != "#000000" || s.Stroke != "#ff0000" {
		t.Errorf("style = %+v", s)
	}
}
