package dataset

import (
	"context"
	"fmt"

	"comparador/internal/core"
	"comparador/internal/storage"
)

// SQLiteSource reads the dataset previously imported by the importer tool.
type SQLiteSource struct {
	Path        string
	MinBaseYear int
}

func (s *SQLiteSource) Load(ctx context.Context) (*core.Table, error) {
	repo, err := storage.NewSQLiteRepository(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset database: %w", err)
	}
	defer repo.Close()

	rows, err := repo.LoadRows(ctx, s.MinBaseYear)
	if err != nil {
		return nil, err
	}
	return core.NewTable(rows), nil
}
