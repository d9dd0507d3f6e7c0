package mocks

import (
	"errors"
	"io"

	"github.com/godilite/wheel-of-life/internal/layout"
)

// MockRenderer is a mock implementation of the ChartRenderer interface.
type MockRenderer struct {
	RenderFunc func(w io.Writer, l layout.Layout) error
}

// Render implements the ChartRenderer interface
func (m *MockRenderer) Render(w io.Writer, l layout.Layout) error {
	if m.RenderFunc != nil {
		return m.RenderFunc(w, l)
	}
	return errors.New("RenderFunc not implemented")
}
