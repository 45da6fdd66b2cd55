package main

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindLabelFiles walks labelsDir recursively and returns every file whose
// extension is .txt (case-insensitive). A nonexistent root enumerates
// nothing: the run proceeds with zero samples instead of aborting.
func FindLabelFiles(labelsDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(labelsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == labelsDir && os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// ParseLabelFile reads a YOLO detection label file and returns the class ID
// of each detection in order of appearance. Blank lines are skipped; only
// the first whitespace-delimited token of a line matters (the rest is the
// bounding box). An empty slice means the file held no detections.
func ParseLabelFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		ids = append(ids, fields[0])
	}
	return ids, scanner.Err()
}
