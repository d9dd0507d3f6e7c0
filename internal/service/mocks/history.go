package mocks

import (
	"context"
	"errors"

	"github.com/godilite/wheel-of-life/internal/repository/models"
)

// MockHistoryRepository is a mock implementation of the HistoryRepository
// interface for testing the service layer.
type MockHistoryRepository struct {
	SaveFunc func(ctx context.Context, rec models.RenderRecord) error
	ListFunc func(ctx context.Context, limit int) ([]models.RenderRecord, error)
}

// Save implements the HistoryRepository interface
func (m *MockHistoryRepository) Save(ctx context.Context, rec models.RenderRecord) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rec)
	}
	return errors.New("SaveFunc not implemented")
}

// List implements the HistoryRepository interface
func (m *MockHistoryRepository) List(ctx context.Context, limit int) ([]models.RenderRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	return nil, errors.New("ListFunc not implemented")
}
