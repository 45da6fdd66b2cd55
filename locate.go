package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Image extensions accepted when matching a label file to its image. The
// direct-lookup pass tries these lower-case forms only; the recursive
// fallback matches any casing.
var imageExts = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}

func isImageExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// FindImageForLabel locates the image belonging to a label file by basename.
// It first probes <imagesDir>/<base><ext> for each accepted extension, then
// falls back to a recursive walk of the whole images tree. WalkDir visits
// entries in lexical order, so the fallback's first match is deterministic.
// Returns "" when no image exists anywhere under imagesDir.
func FindImageForLabel(labelPath, imagesDir string) string {
	base := strings.TrimSuffix(filepath.Base(labelPath), filepath.Ext(labelPath))

	for _, ext := range imageExts {
		cand := filepath.Join(imagesDir, base+ext)
		if info, err := os.Stat(cand); err == nil && !info.IsDir() {
			return cand
		}
	}

	var found string
	_ = filepath.WalkDir(imagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable or missing subtrees contribute no candidates.
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if strings.TrimSuffix(d.Name(), ext) == base && isImageExt(ext) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
