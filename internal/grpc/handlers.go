package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "github.com/godilite/wheel-of-life/api/v1"
	"github.com/godilite/wheel-of-life/internal/catalog"
	"github.com/godilite/wheel-of-life/internal/layout"
	"github.com/godilite/wheel-of-life/internal/responses"
	"github.com/godilite/wheel-of-life/internal/service"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyLayout CacheKeyType = "grpc:wheel_layout"
	cacheKeyImage  CacheKeyType = "grpc:wheel_png"
)

type GRPCHandlers struct {
	pb.UnimplementedWheelServiceServer
	wheel    WheelService
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(wheel WheelService, cache Cacher, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if wheel == nil {
		panic("nil WheelService provided to NewGRPCHandlers")
	}
	if cache == nil {
		panic("nil Cacher provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &GRPCHandlers{
		wheel:    wheel,
		cache:    cache,
		logger:   logger.Named("grpc-handler"),
		cacheTTL: ttl,
	}
}

// decodeRequest parses the JSON response document carried by req.
func decodeRequest(req *wrapperspb.BytesValue) ([]byte, responses.Set, error) {
	data := req.GetValue()
	if len(data) == 0 {
		return nil, responses.Set{}, status.Error(codes.InvalidArgument, "request document is required")
	}
	set, err := responses.Parse(data, responses.FormatJSON)
	if err != nil {
		return nil, responses.Set{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return data, set, nil
}

func normalizeKey(prefix CacheKeyType, document []byte) string {
	return fmt.Sprintf("%s:%016x", prefix, xxhash.Sum64(document))
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, layout.ErrEmptyInput),
		errors.Is(err, layout.ErrInconsistentShape),
		errors.Is(err, responses.ErrInvalidDocument):
		s.logger.Info("invalid response set", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, catalog.ErrLookup):
		s.logger.Info("question lookup failed", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrRenderFailed):
		s.logger.Error("render failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "render failed")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) BuildLayout(ctx context.Context, req *wrapperspb.BytesValue) (*structpb.Struct, error) {
	doc, set, err := decodeRequest(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyLayout, doc)

	l, err := readThrough(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) (layout.Layout, error) {
		return s.wheel.BuildLayout(fetchCtx, set)
	})
	if err != nil {
		return nil, s.handleError(ctx, "BuildLayout", err)
	}

	out, err := layoutToStruct(l)
	if err != nil {
		return nil, s.handleError(ctx, "BuildLayout", err)
	}
	return out, nil
}

func (s *GRPCHandlers) RenderWheel(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	doc, set, err := decodeRequest(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyImage, doc)

	png, err := readThrough(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) ([]byte, error) {
		data, _, err := s.wheel.RenderBytes(fetchCtx, set)
		return data, err
	})
	if err != nil {
		return nil, s.handleError(ctx, "RenderWheel", err)
	}

	return wrapperspb.Bytes(png), nil
}

// layoutToStruct converts l through its JSON form so field names match the
// cached representation.
func layoutToStruct(l layout.Layout) (*structpb.Struct, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return structpb.NewStruct(m)
}
