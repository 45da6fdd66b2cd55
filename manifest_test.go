package main

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestManifest(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenManifest(filepath.Join(t.TempDir(), "manifest.db"))
	if err != nil {
		t.Fatalf("OpenManifest failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordRun(t *testing.T) {
	db := newTestManifest(t)

	cfg := Config{
		ImagesDir: "/imgs", LabelsDir: "/lbls", OutputDir: "/out",
		ValSplit: 0.2, Seed: 42,
	}
	c := Counters{LabelFiles: 3, Written: 2, SkippedEmpty: 1}
	files := []WrittenFile{
		{Class: "cat", Split: "train", Src: "/imgs/a.jpg", Dest: "/out/train/cat/a.jpg"},
		{Class: "cat", Split: "val", Src: "/imgs/b.jpg", Dest: "/out/val/cat/b.jpg"},
	}

	runID, err := RecordRun(db, cfg, c, files)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if runID == "" {
		t.Fatalf("expected a run ID")
	}

	var runs int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&runs); err != nil {
		t.Fatalf("query runs: %v", err)
	}
	if runs != 1 {
		t.Fatalf("expected 1 run row, got %d", runs)
	}

	var samples int
	if err := db.QueryRow(`SELECT COUNT(*) FROM samples WHERE run_id = ?`, runID).Scan(&samples); err != nil {
		t.Fatalf("query samples: %v", err)
	}
	if samples != 2 {
		t.Fatalf("expected 2 sample rows, got %d", samples)
	}

	var split string
	if err := db.QueryRow(`SELECT split FROM samples WHERE run_id = ? AND dest_path = ?`, runID, "/out/val/cat/b.jpg").Scan(&split); err != nil {
		t.Fatalf("query sample: %v", err)
	}
	if split != "val" {
		t.Fatalf("unexpected split: %q", split)
	}
}

func TestRecordRunReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.db")

	db, err := OpenManifest(path)
	if err != nil {
		t.Fatalf("OpenManifest failed: %v", err)
	}
	if _, err := RecordRun(db, Config{}, Counters{}, nil); err != nil {
		t.Fatalf("first RecordRun failed: %v", err)
	}
	db.Close()

	// A second run appends to the same database.
	db, err = OpenManifest(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()
	if _, err := RecordRun(db, Config{}, Counters{}, nil); err != nil {
		t.Fatalf("second RecordRun failed: %v", err)
	}

	var runs int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatalf("query runs: %v", err)
	}
	if runs != 2 {
		t.Fatalf("expected 2 run rows, got %d", runs)
	}
}
