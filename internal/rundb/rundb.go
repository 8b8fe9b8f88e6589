package rundb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DatabaseFile is the file name inside the data directory.
const DatabaseFile = "porespy.db"

// ErrNilRun is returned when SaveRun receives a nil run.
var ErrNilRun = errors.New("rundb: run is nil")

// ErrDatabaseNotFound is returned by Open when the database file does
// not exist and creation was not requested.
var ErrDatabaseNotFound = errors.New("rundb: database not found")

// DB stores completed tortuosity runs. One database file per data
// directory; SQLite allows a single writer, so the pool is capped at
// one connection.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file when
	// missing. When false, a missing database is an error.
	CreateIfNotExists bool

	// EnableWAL enables write-ahead logging.
	EnableWAL bool
}

// DefaultOptions returns the options the CLI uses.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Run is one stored simulation: the sample identity, the transport
// metrics the pipeline produced and the solver bookkeeping.
type Run struct {
	ID                int64
	Image             string // input path or generator tag
	Axis              int
	Shape             string // "100x100x50"
	OriginalPorosity  float64
	EffectivePorosity float64
	Tortuosity        float64
	FormationFactor   float64
	RateIn            float64
	RateOut           float64
	Solver            string
	Iterations        int
	Residual          float64
	Duration          time.Duration
	CreatedAt         time.Time
}

// Open opens or creates the run database under dbDir.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, DatabaseFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("rundb: check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("rundb: create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("rundb: open database: %w", err)
	}

	// One writer only; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &DB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("rundb: enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("rundb: create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *DB) Close() error {
	return rdb.db.Close()
}

// Path returns the database file location.
func (rdb *DB) Path() string {
	return rdb.dbPath
}

func (rdb *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		image TEXT NOT NULL,
		axis INTEGER NOT NULL,
		shape TEXT NOT NULL,
		original_porosity REAL,
		effective_porosity REAL,
		tortuosity REAL,
		formation_factor REAL,
		rate_in REAL,
		rate_out REAL,
		solver TEXT,
		iterations INTEGER,
		residual REAL,
		duration_ms INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_image ON runs(image);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun inserts a completed run and returns its database id.
// CreatedAt is assigned by the database.
func (rdb *DB) SaveRun(ctx context.Context, run *Run) (int64, error) {
	if run == nil {
		return 0, ErrNilRun
	}

	query := `
	INSERT INTO runs (image, axis, shape, original_porosity, effective_porosity,
		tortuosity, formation_factor, rate_in, rate_out, solver, iterations,
		residual, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		run.Image,
		run.Axis,
		run.Shape,
		run.OriginalPorosity,
		run.EffectivePorosity,
		run.Tortuosity,
		run.FormationFactor,
		run.RateIn,
		run.RateOut,
		run.Solver,
		run.Iterations,
		run.Residual,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("rundb: insert run: %w", err)
	}
	return result.LastInsertId()
}

const runColumns = `id, image, axis, shape, original_porosity, effective_porosity,
	tortuosity, formation_factor, rate_in, rate_out, solver, iterations,
	residual, duration_ms, created_at`

// ListRuns returns stored runs, newest first. image filters by exact
// input name when non-empty; limit caps the result when positive.
func (rdb *DB) ListRuns(ctx context.Context, image string, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs WHERE 1=1"
	args := make([]any, 0, 2)

	if image != "" {
		query += " AND image = ?"
		args = append(args, image)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("rundb: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recent run for an image and axis, or
// nil when none is stored.
func (rdb *DB) LatestRun(ctx context.Context, image string, axis int) (*Run, error) {
	query := "SELECT " + runColumns + ` FROM runs
	WHERE image = ? AND axis = ?
	ORDER BY created_at DESC, id DESC
	LIMIT 1`

	rows, err := rdb.db.QueryContext(ctx, query, image, axis)
	if err != nil {
		return nil, fmt.Errorf("rundb: latest run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	run, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &run, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var durationMS int64
	var created string

	err := rows.Scan(
		&run.ID,
		&run.Image,
		&run.Axis,
		&run.Shape,
		&run.OriginalPorosity,
		&run.EffectivePorosity,
		&run.Tortuosity,
		&run.FormationFactor,
		&run.RateIn,
		&run.RateOut,
		&run.Solver,
		&run.Iterations,
		&run.Residual,
		&durationMS,
		&created,
	)
	if err != nil {
		return Run{}, fmt.Errorf("rundb: scan run: %w", err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CreatedAt = parseTimestamp(created)
	return run, nil
}

// timestampFormats covers what SQLite hands back for DATETIME
// columns, most specific first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	time.RFC3339Nano,
}

func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
