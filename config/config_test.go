package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f := cfg.Field
	if f.Count != 1000 || f.Amplitude != 5 || f.Damping != 0.1 || f.Margin != 0.1 || f.Scale != 1 {
		t.Errorf("unexpected field defaults: %+v", f)
	}
	if f.Seed != nil {
		t.Errorf("default seed = %v, want nil", *f.Seed)
	}
	if cfg.Noise.Kind != "simplex" {
		t.Errorf("noise kind = %q, want simplex", cfg.Noise.Kind)
	}
	if cfg.Derived.MaxSteps != 30 || cfg.Derived.StepLength != 5 || cfg.Derived.Frequency != 0.001 {
		t.Errorf("unexpected derived values: %+v", cfg.Derived)
	}
	if cfg.Derived.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("workers = %d, want GOMAXPROCS", cfg.Derived.Workers)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("field:\n  scale: 0.5\n  seed: 42\nparallel:\n  workers: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Field.Scale != 0.5 {
		t.Errorf("scale = %v, want 0.5", cfg.Field.Scale)
	}
	if cfg.Field.Seed == nil || *cfg.Field.Seed != 42 {
		t.Errorf("seed = %v, want 42", cfg.Field.Seed)
	}
	// Untouched keys keep their defaults
	if cfg.Field.Count != 1000 {
		t.Errorf("count = %d, want 1000", cfg.Field.Count)
	}
	if cfg.Derived.MaxSteps != 15 {
		t.Errorf("max steps = %d, want 15", cfg.Derived.MaxSteps)
	}
	if cfg.Derived.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Derived.Workers)
	}

	fc := cfg.FieldParams()
	if fc.Scale != 0.5 || fc.Seed == nil || *fc.Seed != 42 {
		t.Errorf("FieldParams = %+v", fc)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.Amplitude = 7.5
	cfg.Noise.Kind = "perlin"

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Field.Amplitude != 7.5 || back.Noise.Kind != "perlin" {
		t.Errorf("round trip lost values: %+v %+v", back.Field, back.Noise)
	}
}

func TestRecompute(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.Scale = 2
	cfg.Recompute()
	if cfg.Derived.MaxSteps != 60 || cfg.Derived.StepLength != 10 {
		t.Errorf("derived after recompute = %+v", cfg.Derived)
	}
}

func TestInitAndCfg(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg().Field.Width != 1280 {
		t.Errorf("width = %v, want 1280", Cfg().Field.Width)
	}
}
