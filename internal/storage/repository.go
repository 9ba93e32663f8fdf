// Package storage persists the IRPF dataset in SQLite so the server can
// start without re-parsing the CSV. The importer replaces the table
// wholesale; the server only reads.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"comparador/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ImportRows replaces the stored dataset with rows, atomically: the old
// snapshot stays readable until the transaction commits.
func (r *SQLiteRepository) ImportRows(ctx context.Context, rows []core.Row) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM irpf_rows`); err != nil {
		return fmt.Errorf("clear irpf_rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO irpf_rows (
			base_year, region, occupation,
			contributors, total_income, exempt_income, tax_paid, tax_owed,
			income_per_contributor, exempt_share, effective_paid_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.BaseYear, row.Region, row.Occupation,
			row.Contributors, row.TotalIncome, row.ExemptIncome, row.TaxPaid, row.TaxOwed,
			toNull(row.IncomePerContributor), toNull(row.ExemptShare), toNull(row.EffectivePaidRate),
		); err != nil {
			return fmt.Errorf("insert row (%d, %s, %s): %w", row.BaseYear, row.Region, row.Occupation, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Dataset imported into SQLite", "rows", len(rows))
	return nil
}

// LoadRows reads the stored dataset, applying the year floor.
func (r *SQLiteRepository) LoadRows(ctx context.Context, minBaseYear int) ([]core.Row, error) {
	rs, err := r.db.QueryContext(ctx, `
		SELECT base_year, region, occupation,
		       contributors, total_income, exempt_income, tax_paid, tax_owed,
		       income_per_contributor, exempt_share, effective_paid_rate
		FROM irpf_rows
		WHERE base_year >= ?
		ORDER BY base_year, region, occupation`, minBaseYear)
	if err != nil {
		return nil, fmt.Errorf("query irpf_rows: %w", err)
	}
	defer rs.Close()

	var rows []core.Row
	for rs.Next() {
		var row core.Row
		var perContrib, share, paidRate sql.NullFloat64
		if err := rs.Scan(
			&row.BaseYear, &row.Region, &row.Occupation,
			&row.Contributors, &row.TotalIncome, &row.ExemptIncome, &row.TaxPaid, &row.TaxOwed,
			&perContrib, &share, &paidRate,
		); err != nil {
			return nil, fmt.Errorf("scan irpf_rows: %w", err)
		}
		row.IncomePerContributor = fromNull(perContrib)
		row.ExemptShare = fromNull(share)
		row.EffectivePaidRate = fromNull(paidRate)
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate irpf_rows: %w", err)
	}
	return rows, nil
}

func toNull(v core.Value) sql.NullFloat64 {
	f, ok := v.Float64()
	return sql.NullFloat64{Float64: f, Valid: ok}
}

func fromNull(n sql.NullFloat64) core.Value {
	if !n.Valid {
		return core.Undefined()
	}
	return core.Defined(n.Float64)
}
