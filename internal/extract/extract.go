// Package extract dumps the registered object types from a source NetBox
// Postgres database into the JSON layout the population pipeline loads:
// one file per type plus id_mappings.json.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/richbibby/netbox-population-tool/internal/core"
	"github.com/richbibby/netbox-population-tool/internal/logging"
)

// Summary reports what an extraction run produced.
type Summary struct {
	RunID    string
	Tables   int
	Records  int
	Duration time.Duration
}

// Extractor reads object tables from a source database.
type Extractor struct {
	pool *pgxpool.Pool
}

// New connects to the source database and verifies the connection.
func New(ctx context.Context, dsn string) (*Extractor, error) {
	if dsn == "" {
		return nil, fmt.Errorf("source database URL is not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("source database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("source database unreachable: %w", err)
	}
	return &Extractor{pool: pool}, nil
}

// Close releases the connection pool.
func (e *Extractor) Close() {
	e.pool.Close()
}

// Run extracts every registered object type into outDir. Tables missing
// from the source schema are skipped with a warning; the extraction only
// fails on write errors or a broken connection.
func (e *Extractor) Run(ctx context.Context, outDir string) (*Summary, error) {
	runID := uuid.NewString()[:8]
	ctx = logging.WithRunID(ctx, runID)
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("output directory %s: %w", outDir, err)
	}

	summary := &Summary{RunID: runID}
	mappings := make(core.IDCache)

	for _, def := range core.All() {
		records, err := e.dumpTable(ctx, def.Key)
		if err != nil {
			log.Warn("table not extracted", "table", def.Key, "error", err)
			continue
		}

		table := make(map[string]string, len(records))
		for _, rec := range records {
			if id := rec.SourceID(); id != 0 {
				table[strconv.FormatInt(id, 10)] = def.RefName(rec)
			}
		}
		mappings[def.Key] = table

		if err := writeJSON(filepath.Join(outDir, def.Key+".json"), records); err != nil {
			return nil, err
		}
		summary.Tables++
		summary.Records += len(records)
		log.Debug("table extracted", "table", def.Key, "records", len(records))
	}

	if err := writeJSON(filepath.Join(outDir, "id_mappings.json"), mappings); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	log.Info("extraction complete",
		"tables", summary.Tables,
		"records", summary.Records,
		"out_dir", outDir,
		"duration", summary.Duration,
	)
	return summary, nil
}

// dumpTable reads one table as JSON rows. The table name is the object
// type key, which matches NetBox's schema naming.
func (e *Extractor) dumpTable(ctx context.Context, table string) ([]core.Record, error) {
	rows, err := e.pool.Query(ctx, fmt.Sprintf("SELECT row_to_json(t) FROM %s t ORDER BY id", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec core.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("table %s: %w", table, err)
		}
		StripMetadata(rec)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// StripMetadata removes API bookkeeping fields from an extracted record.
// The target instance assigns its own.
func StripMetadata(rec core.Record) {
	for _, f := range []string{"url", "display", "display_url", "created", "last_updated"} {
		delete(rec, f)
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
