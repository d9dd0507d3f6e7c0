package grpc

import (
	"context"
	"time"

	"github.com/godilite/wheel-of-life/internal/layout"
	"github.com/godilite/wheel-of-life/internal/responses"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type WheelService interface {
	BuildLayout(ctx context.Context, set responses.Set) (layout.Layout, error)
	RenderBytes(ctx context.Context, set responses.Set) ([]byte, layout.Layout, error)
}
