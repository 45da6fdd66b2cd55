package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sample is a kept label file resolved to its image and final class name.
type Sample struct {
	ImagePath string
	ClassName string
}

// Counters accumulates the selection and write statistics for one run.
type Counters struct {
	LabelFiles   int
	Kept         int
	SkippedEmpty int
	MultiLabel   int
	MissingImage int
	SmallClasses int
	Written      int
}

// ClassSplit records how one class's samples were divided.
type ClassSplit struct {
	Class string
	Total int
	Train int
	Val   int
}

// WrittenFile records one image placed into the output tree.
type WrittenFile struct {
	Class string
	Split string
	Src   string
	Dest  string
}

// SelectSamples applies the per-label-file policy: empty files are skipped,
// multi-label files are counted and kept only under forceFirst (taking the
// first detection), and files whose image cannot be located are dropped.
// The image lookup runs after the multi-label decision, so MultiLabel counts
// such files even when their image later turns out to be missing.
func SelectSamples(labelPaths []string, imagesDir string, classMap map[string]string, forceFirst bool, c *Counters) ([]Sample, error) {
	var samples []Sample
	for _, lp := range labelPaths {
		ids, err := ParseLabelFile(lp)
		if err != nil {
			return nil, fmt.Errorf("parse label file %s: %w", lp, err)
		}
		if len(ids) == 0 {
			c.SkippedEmpty++
			continue
		}

		chosen := ids[0]
		if len(ids) > 1 {
			c.MultiLabel++
			if !forceFirst {
				continue
			}
		}

		img := FindImageForLabel(lp, imagesDir)
		if img == "" {
			c.MissingImage++
			continue
		}

		name, ok := classMap[chosen]
		if !ok {
			name = chosen
		}
		name = strings.ReplaceAll(name, " ", "_")

		samples = append(samples, Sample{ImagePath: img, ClassName: name})
		c.Kept++
	}
	return samples, nil
}

// SplitAndPlace groups samples by class, shuffles each class with rng, routes
// the first floor(n*valSplit) shuffled samples to val and the rest to train,
// and copies or moves every image into <output>/<split>/<class>/. Classes are
// processed in sorted name order so the shared generator yields the same
// split on every run over identical inputs.
func SplitAndPlace(samples []Sample, cfg Config, rng *rand.Rand, c *Counters) ([]ClassSplit, []WrittenFile, error) {
	byClass := make(map[string][]string)
	for _, s := range samples {
		byClass[s.ClassName] = append(byClass[s.ClassName], s.ImagePath)
	}
	classes := make([]string, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var splits []ClassSplit
	var written []WrittenFile
	for _, class := range classes {
		imgs := byClass[class]
		if cfg.MinCount > 0 && len(imgs) < cfg.MinCount {
			c.SmallClasses++
			log.Printf("dropping class %q: %d samples below min-count %d", class, len(imgs), cfg.MinCount)
			continue
		}

		rng.Shuffle(len(imgs), func(i, j int) {
			imgs[i], imgs[j] = imgs[j], imgs[i]
		})
		nVal := int(float64(len(imgs)) * cfg.ValSplit)

		for i, img := range imgs {
			split := "train"
			if i < nVal {
				split = "val"
			}
			dest, err := PlaceImage(cfg.OutputDir, split, class, img, cfg.Move)
			if err != nil {
				return nil, nil, err
			}
			written = append(written, WrittenFile{Class: class, Split: split, Src: img, Dest: dest})
			c.Written++
		}
		splits = append(splits, ClassSplit{Class: class, Total: len(imgs), Train: len(imgs) - nVal, Val: nVal})
	}
	return splits, written, nil
}

// PlaceImage copies or moves imagePath into <outputDir>/<split>/<class>/,
// creating the directory as needed. An occupied destination name gets a
// _1, _2, ... suffix before the extension; nothing is ever overwritten.
func PlaceImage(outputDir, split, class, imagePath string, move bool) (string, error) {
	destDir := filepath.Join(outputDir, split, class)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", destDir, err)
	}

	name := filepath.Base(imagePath)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	dest := filepath.Join(destDir, name)
	for i := 1; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}

	if move {
		if err := moveFile(imagePath, dest); err != nil {
			return "", fmt.Errorf("move %s: %w", imagePath, err)
		}
	} else if err := copyFile(imagePath, dest); err != nil {
		return "", fmt.Errorf("copy %s: %w", imagePath, err)
	}
	return dest, nil
}

// copyFile copies src to dst, preserving the file mode and mtime.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Rename fails across devices; copy then remove the source.
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// Run executes the whole conversion: resolve the class mapping, scan labels,
// select samples, split and place images, report, and optionally record the
// run in a manifest database. Human-readable progress goes to out.
func Run(cfg Config, out io.Writer) error {
	classMap := LoadClassMap(cfg.ClassesPath)
	if len(classMap) > 0 {
		fmt.Fprintf(out, "Using class mapping from %s with %d entries.\n", cfg.ClassesPath, len(classMap))
	} else {
		fmt.Fprintln(out, "No class mapping found; numeric class IDs will be used as folder names.")
	}

	labelPaths, err := FindLabelFiles(cfg.LabelsDir)
	if err != nil {
		return fmt.Errorf("scan labels: %w", err)
	}
	var c Counters
	c.LabelFiles = len(labelPaths)
	fmt.Fprintf(out, "Found %d label files in %s\n", len(labelPaths), cfg.LabelsDir)

	samples, err := SelectSamples(labelPaths, cfg.ImagesDir, classMap, cfg.ForceFirst, &c)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	splits, written, err := SplitAndPlace(samples, cfg, rng, &c)
	if err != nil {
		return err
	}

	PrintSummary(out, cfg, c, splits)

	if cfg.ManifestPath != "" {
		db, err := OpenManifest(cfg.ManifestPath)
		if err != nil {
			return fmt.Errorf("open manifest: %w", err)
		}
		defer db.Close()
		runID, err := RecordRun(db, cfg, c, written)
		if err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		fmt.Fprintf(out, "Manifest run %s recorded in %s\n", runID, cfg.ManifestPath)
	}
	return nil
}
