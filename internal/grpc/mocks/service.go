package mocks

import (
	"context"
	"errors"

	"github.com/godilite/wheel-of-life/internal/layout"
	"github.com/godilite/wheel-of-life/internal/responses"
)

// MockWheelService is a mock implementation of the WheelService interface
// for testing the handler layer.
type MockWheelService struct {
	BuildLayoutFunc func(ctx context.Context, set responses.Set) (layout.Layout, error)
	RenderBytesFunc func(ctx context.Context, set responses.Set) ([]byte, layout.Layout, error)
}

// BuildLayout implements the WheelService interface
func (m *MockWheelService) BuildLayout(ctx context.Context, set responses.Set) (layout.Layout, error) {
	if m.BuildLayoutFunc != nil {
		return m.BuildLayoutFunc(ctx, set)
	}
	return layout.Layout{}, errors.New("BuildLayoutFunc not implemented")
}

// RenderBytes implements the WheelService interface
func (m *MockWheelService) RenderBytes(ctx context.Context, set responses.Set) ([]byte, layout.Layout, error) {
	if m.RenderBytesFunc != nil {
		return m.RenderBytesFunc(ctx, set)
	}
	return nil, layout.Layout{}, errors.New("RenderBytesFunc not implemented")
}
