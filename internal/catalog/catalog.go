// Package catalog records builds and their question/answer pairs in DuckDB.
package catalog

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	duckdb "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"wikiqa/internal/dataset"
	"wikiqa/internal/logging"
)

//go:embed schema.sql
var schemaDDL string

// Build identifies one builder run.
type Build struct {
	ID         uuid.UUID
	SourceURL  string
	OutputPath string
	CreatedAt  time.Time
}

// BuildRecord is a stored build row.
type BuildRecord struct {
	Build
	PairCount int64
}

// Catalog is an open DuckDB catalog database.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog at path and applies the schema.
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.New("catalog: path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
	}
	db, err := sql.Open("duckdb", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func dsn(path string) string {
	if path == ":memory:" {
		return ""
	}
	return path
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("catalog: db is nil")
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply catalog schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// RecordBuild stores the build and all of its pairs in one transaction.
func (c *Catalog) RecordBuild(ctx context.Context, build Build, pairs []dataset.Pair) (err error) {
	if build.ID == uuid.Nil {
		return errors.New("catalog: build id is required")
	}
	if build.CreatedAt.IsZero() {
		build.CreatedAt = time.Now().UTC()
	}
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire catalog connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN"); err != nil {
		return fmt.Errorf("begin catalog transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
	}()

	if _, err := conn.ExecContext(ctx,
		"INSERT INTO builds (build_id, source_url, output_path, pair_count, created_at) VALUES (?, ?, ?, ?, ?)",
		build.ID.String(), build.SourceURL, build.OutputPath, int64(len(pairs)), build.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	if err := appendPairs(conn, build.ID, pairs); err != nil {
		return fmt.Errorf("insert pairs: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit catalog transaction: %w", err)
	}
	committed = true

	logging.FromContext(ctx).Info("build recorded in catalog",
		zap.String("build_id", build.ID.String()),
		zap.Int("pairs", len(pairs)),
	)
	return nil
}

func appendPairs(conn *sql.Conn, buildID uuid.UUID, pairs []dataset.Pair) error {
	var appender *duckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		rawConn, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("duckdb driver connection unavailable (got %T)", driverConn)
		}
		var err error
		appender, err = duckdb.NewAppenderFromConn(rawConn, "", "pairs")
		return err
	}); err != nil {
		return err
	}
	id := duckdb.UUID(buildID)
	for i, pair := range pairs {
		if err := appender.AppendRow(id, int64(i), pair.Subject, int64(pair.Row), pair.Question, pair.Answer); err != nil {
			_ = appender.Close()
			return err
		}
	}
	return appender.Close()
}

// Builds lists recorded builds, newest first.
func (c *Catalog) Builds(ctx context.Context) ([]BuildRecord, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT CAST(build_id AS VARCHAR), source_url, output_path, pair_count, created_at FROM builds ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var out []BuildRecord
	for rows.Next() {
		var (
			record BuildRecord
			id     string
		)
		if err := rows.Scan(&id, &record.SourceURL, &record.OutputPath, &record.PairCount, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse build id: %w", err)
		}
		record.ID = parsed
		out = append(out, record)
	}
	return out, rows.Err()
}

// Pairs returns the stored pairs of a build in output order.
func (c *Catalog) Pairs(ctx context.Context, buildID uuid.UUID) ([]dataset.Pair, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT subject, source_row, question, answer FROM pairs WHERE build_id = ? ORDER BY seq",
		buildID.String())
	if err != nil {
		return nil, fmt.Errorf("query pairs: %w", err)
	}
	defer rows.Close()

	var out []dataset.Pair
	for rows.Next() {
		var (
			pair dataset.Pair
			row  int64
		)
		if err := rows.Scan(&pair.Subject, &row, &pair.Question, &pair.Answer); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pair.Row = int(row)
		out = append(out, pair)
	}
	return out, rows.Err()
}
