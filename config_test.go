package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]string{
		"--images-dir", "imgs", "--labels-dir", "lbls", "--output-dir", "out",
	})
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.ValSplit != 0.2 {
		t.Fatalf("unexpected val-split default: %v", cfg.ValSplit)
	}
	if cfg.Seed != 42 {
		t.Fatalf("unexpected seed default: %d", cfg.Seed)
	}
	if cfg.Move || cfg.ForceFirst {
		t.Fatalf("move/force-first should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestParseConfigFileAndFlagOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "convert.yaml")
	writeFile(t, cfgPath, `
images_dir: /data/images
labels_dir: /data/labels
output_dir: /data/out
val_split: 0.5
seed: 7
force_first: true
`)

	cfg, err := ParseConfig([]string{"--config", cfgPath, "--val-split", "0.3"})
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.ImagesDir != "/data/images" || cfg.LabelsDir != "/data/labels" || cfg.OutputDir != "/data/out" {
		t.Fatalf("directories not taken from config file: %+v", cfg)
	}
	if cfg.ValSplit != 0.3 {
		t.Fatalf("explicit flag should override file value, got %v", cfg.ValSplit)
	}
	if cfg.Seed != 7 {
		t.Fatalf("seed should come from file, got %d", cfg.Seed)
	}
	if !cfg.ForceFirst {
		t.Fatalf("force_first should come from file")
	}
}

func TestParseConfigFileZeroValSplit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "convert.yaml")
	writeFile(t, cfgPath, `
images_dir: a
labels_dir: b
output_dir: c
val_split: 0.0
`)

	cfg, err := ParseConfig([]string{"--config", cfgPath})
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.ValSplit != 0 {
		t.Fatalf("val_split 0.0 in file should not revert to default, got %v", cfg.ValSplit)
	}
}

func TestValidateRejectsBadSettings(t *testing.T) {
	base := Config{ImagesDir: "a", LabelsDir: "b", OutputDir: "c", ValSplit: 0.2}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing images-dir", func(c *Config) { c.ImagesDir = "" }},
		{"missing labels-dir", func(c *Config) { c.LabelsDir = "" }},
		{"missing output-dir", func(c *Config) { c.OutputDir = "" }},
		{"val-split above 1", func(c *Config) { c.ValSplit = 1.5 }},
		{"val-split negative", func(c *Config) { c.ValSplit = -0.1 }},
		{"negative min-count", func(c *Config) { c.MinCount = -1 }},
	}
	for _, tc := range cases {
		cfg := base
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("base config should be valid, got %v", err)
	}
}
