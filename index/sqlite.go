// Package index keeps a SQLite catalog of chunks baked into packs, so a
// host can find which pack holds a coordinate without opening every pack.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/voxelsplace/cubemesh/voxmesh"
)

type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one catalogued chunk.
type Entry struct {
	Name       string
	Coord      voxmesh.ChunkCoord
	Size       int
	Layout     string
	Vertices   int
	Indices    int
	Digest     uint64
	PackPath   string
	RecordedAt string
}

func Open(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		cx INTEGER NOT NULL,
		cy INTEGER NOT NULL,
		cz INTEGER NOT NULL,
		name TEXT NOT NULL,
		size INTEGER NOT NULL,
		layout TEXT NOT NULL,
		vertices INTEGER NOT NULL,
		indices INTEGER NOT NULL,
		digest TEXT NOT NULL,
		pack_path TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		PRIMARY KEY (cx, cy, cz, size)
	)`)
	return err
}

func (c *Catalog) Close() error { return c.db.Close() }

// Record upserts every record of a pack written to packPath in one transaction.
func (c *Catalog) Record(ctx context.Context, packPath string, records []voxmesh.ChunkRecord) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO chunks
		(cx, cy, cz, name, size, layout, vertices, indices, digest, pack_path, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	at := c.now().UTC().Format(time.RFC3339)
	for _, r := range records {
		cubes := r.Cubes()
		if _, err := stmt.ExecContext(ctx,
			r.Coord.X, r.Coord.Y, r.Coord.Z, r.Name, r.Size, r.Layout.String(),
			cubes*voxmesh.VerticesPerCube, cubes*voxmesh.IndicesPerCube,
			strconv.FormatUint(r.Digest, 16), packPath, at,
		); err != nil {
			return fmt.Errorf("record %s: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// Lookup finds the catalogued chunk of the given size at coord. Chunks of
// different sizes share coordinates without replacing each other.
func (c *Catalog) Lookup(ctx context.Context, coord voxmesh.ChunkCoord, size int) (Entry, bool, error) {
	row := c.db.QueryRowContext(ctx, `SELECT cx, cy, cz, name, size, layout, vertices, indices, digest, pack_path, recorded_at
		FROM chunks WHERE cx = ? AND cy = ? AND cz = ? AND size = ?`, coord.X, coord.Y, coord.Z, size)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// List returns every entry ordered by coordinate, then size.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT cx, cy, cz, name, size, layout, vertices, indices, digest, pack_path, recorded_at
		FROM chunks ORDER BY cx, cy, cz, size`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e      Entry
		digest string
	)
	if err := s.Scan(&e.Coord.X, &e.Coord.Y, &e.Coord.Z, &e.Name, &e.Size, &e.Layout,
		&e.Vertices, &e.Indices, &digest, &e.PackPath, &e.RecordedAt); err != nil {
		return Entry{}, err
	}
	d, err := strconv.ParseUint(digest, 16, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("chunk %s: digest %q: %w", e.Name, digest, err)
	}
	e.Digest = d
	return e, nil
}
