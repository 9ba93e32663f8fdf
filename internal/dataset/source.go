// Package dataset loads the pre-aggregated IRPF table from one of the
// supported backends and hands the engine an immutable core.Table. Parsing
// and typing happen here, at the load boundary; the engine itself never
// sees the file's textual schema.
package dataset

import (
	"context"
	"fmt"

	"comparador/internal/core"
)

// Source loads the full dataset. A failed load is fatal for the process:
// no query can run without a table.
type Source interface {
	Load(ctx context.Context) (*core.Table, error)
}

// Config selects and parameterizes a source.
type Config struct {
	// Backend is one of "csv", "sqlite" or "sheets".
	Backend string

	// CSVPath is the dataset file for the csv backend.
	CSVPath string

	// SQLiteDBPath is the database file for the sqlite backend.
	SQLiteDBPath string

	// SpreadsheetID and ReadRange locate the table for the sheets backend.
	SpreadsheetID string
	ReadRange     string

	// MinBaseYear is the year floor: rows below it are dropped at load
	// time as unreliable.
	MinBaseYear int
}

// New builds the source named by cfg.Backend.
func New(ctx context.Context, cfg Config) (Source, error) {
	switch cfg.Backend {
	case "csv":
		return &CSVSource{Path: cfg.CSVPath, MinBaseYear: cfg.MinBaseYear}, nil
	case "sqlite":
		return &SQLiteSource{Path: cfg.SQLiteDBPath, MinBaseYear: cfg.MinBaseYear}, nil
	case "sheets":
		return NewSheetsSource(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported dataset backend: %q", cfg.Backend)
	}
}
