// Package archive persists per-run generation history to SQLite so runs
// can be inspected after the fact. It records summaries only; it is not a
// checkpoint of optimizer state.
package archive

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bakanatorz/genetics/pkg/engine"
	"github.com/bakanatorz/genetics/pkg/errors"
)

// Archive is a SQLite-backed store of simulation runs.
type Archive struct {
	db *sql.DB
}

// RunMeta describes a run at start time.
type RunMeta struct {
	Ordering       string
	Termination    string
	PopulationSize int
	Cycles         int
}

// Generation is one recorded generation summary.
type Generation struct {
	Generation  int
	Mean        float64
	StdDev      float64
	BestSuccess bool
	BestValue   float64
	BestSummary string
	RecordedAt  time.Time
}

// Open opens (creating if needed) an archive database at path.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to open archive database")
	}
	db.SetMaxOpenConns(1)

	a := &Archive{db: db}
	if err := a.initDB(); err != nil {
		db.Close()
		return nil, err
	}

	// WAL keeps concurrent readers cheap while a run is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode")
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to set synchronous pragma")
	}

	return a, nil
}

func (a *Archive) initDB() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		ordering TEXT NOT NULL,
		termination TEXT NOT NULL,
		population_size INTEGER NOT NULL,
		cycles INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS generations (
		run_id TEXT NOT NULL REFERENCES runs(id),
		generation INTEGER NOT NULL,
		mean REAL NOT NULL,
		std_dev REAL NOT NULL,
		best_success INTEGER NOT NULL,
		best_value REAL NOT NULL,
		best_summary TEXT NOT NULL,
		recorded_at INTEGER NOT NULL,
		PRIMARY KEY (run_id, generation)
	);

	CREATE INDEX IF NOT EXISTS idx_generations_run ON generations(run_id);
	`

	_, err := a.db.Exec(query)
	return errors.Wrap(err, errors.StorageFailed, "failed to initialize archive schema")
}

// StartRun registers a new run and returns a handle that records its
// generations. The handle implements engine.Recorder.
func (a *Archive) StartRun(ctx context.Context, meta RunMeta) (*Run, error) {
	id := uuid.NewString()
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, ordering, termination, population_size, cycles)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, time.Now().Unix(), meta.Ordering, meta.Termination, meta.PopulationSize, meta.Cycles)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to register run")
	}
	return &Run{archive: a, id: id}, nil
}

// RunHistory returns the recorded generations of a run in generation order.
func (a *Archive) RunHistory(ctx context.Context, runID string) ([]Generation, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT generation, mean, std_dev, best_success, best_value, best_summary, recorded_at
		 FROM generations WHERE run_id = ? ORDER BY generation`, runID)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query run history")
	}
	defer rows.Close()

	var history []Generation
	for rows.Next() {
		var (
			g          Generation
			success    int
			recordedAt int64
		)
		if err := rows.Scan(&g.Generation, &g.Mean, &g.StdDev, &success, &g.BestValue, &g.BestSummary, &recordedAt); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan generation row")
		}
		g.BestSuccess = success != 0
		g.RecordedAt = time.Unix(recordedAt, 0)
		history = append(history, g)
	}
	return history, errors.Wrap(rows.Err(), errors.StorageFailed, "failed to read run history")
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Run records generations for one registered run.
type Run struct {
	archive *Archive
	id      string
}

// ID returns the run's UUID.
func (r *Run) ID() string { return r.id }

// RecordGeneration persists one generation summary.
func (r *Run) RecordGeneration(ctx context.Context, rec engine.GenerationRecord) error {
	success := 0
	if rec.BestSuccess {
		success = 1
	}
	_, err := r.archive.db.ExecContext(ctx,
		`INSERT INTO generations (run_id, generation, mean, std_dev, best_success, best_value, best_summary, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id, rec.Generation, rec.Mean, rec.StdDev, success, rec.BestValue, rec.BestSummary, time.Now().Unix())
	return errors.Wrap(err, errors.StorageFailed, "failed to record generation")
}
