package service

import (
	"context"
	"io"

	"github.com/godilite/wheel-of-life/internal/layout"
	"github.com/godilite/wheel-of-life/internal/repository/models"
)

// HistoryRepository stores and lists past renders.
type HistoryRepository interface {
	Save(ctx context.Context, rec models.RenderRecord) error
	List(ctx context.Context, limit int) ([]models.RenderRecord, error)
}

// ChartRenderer encodes a layout as an image.
type ChartRenderer interface {
	Render(w io.Writer, l layout.Layout) error
}
