package service

import (
	"github.com/godilite/wheel-of-life/internal/layout"
	"github.com/godilite/wheel-of-life/internal/responses"
)

// RenderResult describes a chart written to disk.
type RenderResult struct {
	ID         string
	InputPath  string
	OutputPath string
	Set        responses.Set
	Layout     layout.Layout
}
