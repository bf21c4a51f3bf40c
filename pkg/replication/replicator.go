// Package replication mirrors the Mongo raga collection into a relational
// store, one-shot and last-write-wins. The relational side is useful for
// ad-hoc SQL over download outcomes without touching Mongo.
package replication

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"carnatic-archive/pkg/db"
	"carnatic-archive/pkg/domain"
)

// Config wires the replication dependencies.
type Config struct {
	Mongo    *db.Client
	Postgres db.DBProvider
	Logger   *log.Logger
}

// Replicator copies raga documents from MongoDB to Postgres.
//
// Each document becomes one row in `ragas` plus one row per audio reference
// in `audio_files`. Re-running replaces the raga's rows wholesale, matching
// the upsert semantics of the Mongo side.
type Replicator struct {
	mongo  *db.Client
	pg     db.DBProvider
	logger *log.Logger
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Mongo == nil {
		return nil, fmt.Errorf("mongo client is required")
	}
	if cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	return &Replicator{
		mongo:  cfg.Mongo,
		pg:     cfg.Postgres,
		logger: cfg.Logger,
	}, nil
}

// ReplicateRagasMongoToPostgres reads all raga documents from Mongo and
// writes them into Postgres. Per-document failures abort the run; a partial
// mirror is worse than a stale one.
func (r *Replicator) ReplicateRagasMongoToPostgres(ctx context.Context) error {
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}

	docs, err := r.mongo.GetAllRagas(ctx)
	if err != nil {
		return fmt.Errorf("read ragas from mongo: %w", err)
	}
	r.logger.Printf("Loaded %d raga documents from Mongo", len(docs))

	replicated := 0
	for _, doc := range docs {
		if doc.Raga == "" {
			continue
		}
		if err := r.replicateOne(ctx, doc); err != nil {
			return fmt.Errorf("replicate raga %q: %w", doc.Raga, err)
		}
		replicated++
		if replicated%100 == 0 {
			r.logger.Printf("Progress: replicated %d/%d ragas", replicated, len(docs))
		}
	}

	r.logger.Printf("Replication complete: %d ragas mirrored", replicated)
	return nil
}

func (r *Replicator) ensureSchema(ctx context.Context) error {
	if r.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	// Raga name is the primary key, same identity rule as the Mongo filter.
	// Audio file rows cascade so replacing a raga cleans up its segments.
	const ddl = `
CREATE TABLE IF NOT EXISTS ragas (
  name TEXT PRIMARY KEY,
  raga_url TEXT NOT NULL DEFAULT '',
  melakartha_number INTEGER,
  melakartha_name TEXT,
  arohana TEXT,
  avarohana TEXT,
  raw_table_data TEXT,
  last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS audio_files (
  id BIGSERIAL PRIMARY KEY,
  raga_name TEXT NOT NULL REFERENCES ragas(name) ON DELETE CASCADE,
  original_video_id TEXT NOT NULL DEFAULT '',
  original_url TEXT NOT NULL DEFAULT '',
  start_seconds INTEGER,
  end_seconds INTEGER,
  downloaded_path TEXT,
  download_status TEXT NOT NULL DEFAULT 'failed'
);`

	if _, err := r.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create raga tables: %w", err)
	}
	return nil
}

// replicateOne writes a single raga and its audio rows in one transaction.
func (r *Replicator) replicateOne(ctx context.Context, doc domain.RagaDocument) error {
	tx, err := r.pg.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsertRaga = `
INSERT INTO ragas (name, raga_url, melakartha_number, melakartha_name, arohana, avarohana, raw_table_data, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (name) DO UPDATE SET
  raga_url = EXCLUDED.raga_url,
  melakartha_number = EXCLUDED.melakartha_number,
  melakartha_name = EXCLUDED.melakartha_name,
  arohana = EXCLUDED.arohana,
  avarohana = EXCLUDED.avarohana,
  raw_table_data = EXCLUDED.raw_table_data,
  last_updated = EXCLUDED.last_updated`

	if _, err := tx.ExecContext(ctx, upsertRaga,
		doc.Raga, doc.RagaURL, doc.MelakarthaNumber, doc.MelakarthaName,
		doc.Arohana, doc.Avarohana, doc.RawTableData, doc.LastUpdated); err != nil {
		return fmt.Errorf("upsert raga row: %w", err)
	}

	// Replace the audio rows wholesale; row identity is not stable across runs.
	if _, err := tx.ExecContext(ctx, `DELETE FROM audio_files WHERE raga_name = $1`, doc.Raga); err != nil {
		return fmt.Errorf("clear audio rows: %w", err)
	}

	const insertAudio = `
INSERT INTO audio_files (raga_name, original_video_id, original_url, start_seconds, end_seconds, downloaded_path, download_status)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stmt, err := tx.PrepareContext(ctx, insertAudio)
	if err != nil {
		return fmt.Errorf("prepare audio insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range doc.AudioFiles {
		if _, err := stmt.ExecContext(ctx, doc.Raga, f.OriginalVideoID, f.OriginalURL,
			f.StartSeconds, f.EndSeconds, f.DownloadedPath, f.DownloadStatus); err != nil {
			return fmt.Errorf("insert audio row video=%q: %w", f.OriginalVideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
