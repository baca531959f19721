package types

import (
	"context"

	"github.com/xhad/knowtab/internal/models"
)

// Core interfaces
type TableClient interface {
	Upload(ctx context.Context, path string) (string, error)
	Chunks(ctx context.Context, documentID string) ([]models.Chunk, error)
	GenerateCells(ctx context.Context, columns []models.Column, rows []models.Row) ([]models.Cell, error)
}

type ResultArchive interface {
	Store(results []models.Result) (string, error)
	Close()
}

type Summarizer interface {
	Summarize(ctx context.Context, results []models.Result) (string, error)
}
