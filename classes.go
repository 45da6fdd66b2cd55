package main

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadClassMap loads the optional class-ID to class-name mapping from a
// classes.txt (one name per line, index order) or a data.yaml whose names
// field is either a sequence or a mapping. Every failure mode degrades to an
// empty map with a warning; the run then uses numeric IDs as folder names.
func LoadClassMap(path string) map[string]string {
	if path == "" {
		return map[string]string{}
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		log.Printf("[WARN] classes file %q not found, falling back to numeric IDs", path)
		return map[string]string{}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		m, err := classMapFromTxt(path)
		if err != nil {
			log.Printf("[WARN] failed to parse %q: %v, falling back to numeric IDs", path, err)
			return map[string]string{}
		}
		return m
	case ".yaml", ".yml":
		m, err := classMapFromYAML(path)
		if err != nil {
			log.Printf("[WARN] failed to parse %q: %v, falling back to numeric IDs", path, err)
			return map[string]string{}
		}
		if len(m) == 0 {
			log.Printf("[WARN] parsed %q but found no usable 'names' entry, falling back to numeric IDs", path)
		}
		return m
	default:
		log.Printf("[WARN] unsupported classes file extension %q (want .txt, .yaml or .yml), falling back to numeric IDs", filepath.Ext(path))
		return map[string]string{}
	}
}

func classMapFromTxt(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(map[string]string)
	idx := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		m[strconv.Itoa(idx)] = name
		idx++
	}
	return m, scanner.Err()
}

func classMapFromYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Names yaml.Node `yaml:"names"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	m := make(map[string]string)
	switch doc.Names.Kind {
	case yaml.SequenceNode:
		for i, item := range doc.Names.Content {
			m[strconv.Itoa(i)] = item.Value
		}
	case yaml.MappingNode:
		// Keys may be ints or strings; both arrive as scalar values here.
		for i := 0; i+1 < len(doc.Names.Content); i += 2 {
			m[doc.Names.Content[i].Value] = doc.Names.Content[i+1].Value
		}
	}
	return m, nil
}
