package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultValSplit = 0.2
	defaultSeed     = 42
)

type Config struct {
	ImagesDir    string  `yaml:"images_dir"`
	LabelsDir    string  `yaml:"labels_dir"`
	OutputDir    string  `yaml:"output_dir"`
	ClassesPath  string  `yaml:"classes"`
	ValSplit     float64 `yaml:"val_split"`
	Seed         int64   `yaml:"seed"`
	Move         bool    `yaml:"move"`
	ForceFirst   bool    `yaml:"force_first"`
	MinCount     int     `yaml:"min_count"`
	ManifestPath string  `yaml:"manifest"`
}

// ParseConfig builds the run configuration from command-line arguments and,
// when --config is given, a YAML settings file. Precedence is flag defaults,
// then file values, then flags set explicitly on the command line.
func ParseConfig(args []string) (Config, error) {
	cfg := Config{ValSplit: defaultValSplit, Seed: defaultSeed}

	fs := flag.NewFlagSet("yolo2class", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional YAML settings file; explicit flags override its values")
	imagesDir := fs.String("images-dir", "", "root directory of source images")
	labelsDir := fs.String("labels-dir", "", "root directory of YOLO .txt label files")
	outputDir := fs.String("output-dir", "", "destination root; train/ and val/ are created under it")
	classes := fs.String("classes", "", "optional classes.txt or data.yaml mapping class IDs to names")
	valSplit := fs.Float64("val-split", defaultValSplit, "fraction of each class reserved for validation (0.0 - 1.0)")
	seed := fs.Int64("seed", defaultSeed, "seed for the per-class shuffle")
	move := fs.Bool("move", false, "move files instead of copying")
	forceFirst := fs.Bool("force-first", false, "keep the first label of multi-label files instead of skipping them")
	minCount := fs.Int("min-count", 0, "drop classes with fewer kept samples than this (0 disables)")
	manifest := fs.String("manifest", "", "optional SQLite manifest database to record the run into")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", *configPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", *configPath, err)
		}
	}

	// Flags the user actually passed win over config-file values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "images-dir":
			cfg.ImagesDir = *imagesDir
		case "labels-dir":
			cfg.LabelsDir = *labelsDir
		case "output-dir":
			cfg.OutputDir = *outputDir
		case "classes":
			cfg.ClassesPath = *classes
		case "val-split":
			cfg.ValSplit = *valSplit
		case "seed":
			cfg.Seed = *seed
		case "move":
			cfg.Move = *move
		case "force-first":
			cfg.ForceFirst = *forceFirst
		case "min-count":
			cfg.MinCount = *minCount
		case "manifest":
			cfg.ManifestPath = *manifest
		}
	})

	return cfg, nil
}

func (c Config) Validate() error {
	if c.ImagesDir == "" {
		return fmt.Errorf("images-dir is required (flag or config file)")
	}
	if c.LabelsDir == "" {
		return fmt.Errorf("labels-dir is required (flag or config file)")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output-dir is required (flag or config file)")
	}
	if c.ValSplit < 0 || c.ValSplit > 1 {
		return fmt.Errorf("val-split %v out of range [0, 1]", c.ValSplit)
	}
	if c.MinCount < 0 {
		return fmt.Errorf("min-count %d must be >= 0", c.MinCount)
	}
	return nil
}
