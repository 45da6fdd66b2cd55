package main

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// OpenManifest opens (creating if necessary) the SQLite manifest database
// that indexes the produced dataset for downstream tooling.
func OpenManifest(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id            TEXT PRIMARY KEY,
		images_dir    TEXT NOT NULL,
		labels_dir    TEXT NOT NULL,
		output_dir    TEXT NOT NULL,
		val_split     REAL NOT NULL,
		seed          INTEGER NOT NULL,
		moved         INTEGER NOT NULL DEFAULT 0,
		force_first   INTEGER NOT NULL DEFAULT 0,
		label_files   INTEGER NOT NULL DEFAULT 0,
		written       INTEGER NOT NULL DEFAULT 0,
		skipped_empty INTEGER NOT NULL DEFAULT 0,
		multi_label   INTEGER NOT NULL DEFAULT 0,
		missing_image INTEGER NOT NULL DEFAULT 0,
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS samples (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id    TEXT NOT NULL,
		class     TEXT NOT NULL,
		split     TEXT NOT NULL,
		src_path  TEXT NOT NULL,
		dest_path TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id);
	CREATE INDEX IF NOT EXISTS idx_samples_class ON samples(class, split);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RecordRun inserts one row describing the run and one row per placed file,
// in a single transaction. Returns the generated run ID.
func RecordRun(db *sql.DB, cfg Config, c Counters, files []WrittenFile) (string, error) {
	runID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, images_dir, labels_dir, output_dir, val_split, seed, moved, force_first,
		                   label_files, written, skipped_empty, multi_label, missing_image)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, cfg.ImagesDir, cfg.LabelsDir, cfg.OutputDir, cfg.ValSplit, cfg.Seed,
		cfg.Move, cfg.ForceFirst,
		c.LabelFiles, c.Written, c.SkippedEmpty, c.MultiLabel, c.MissingImage,
	)
	if err != nil {
		return "", err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO samples (run_id, class, split, src_path, dest_path) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, f := range files {
		if _, err := stmt.Exec(runID, f.Class, f.Split, f.Src, f.Dest); err != nil {
			return "", err
		}
	}
	return runID, tx.Commit()
}
