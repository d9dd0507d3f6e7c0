package app

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	pb "github.com/godilite/wheel-of-life/api/v1"
	"github.com/godilite/wheel-of-life/internal/catalog"
	"github.com/godilite/wheel-of-life/internal/config"
	handler "github.com/godilite/wheel-of-life/internal/grpc"
	"github.com/godilite/wheel-of-life/internal/render"
	"github.com/godilite/wheel-of-life/internal/repository"
	"github.com/godilite/wheel-of-life/internal/service"
	"github.com/godilite/wheel-of-life/pkg/cache"
	dbbuilder "github.com/godilite/wheel-of-life/pkg/database"
	grpcsrv "github.com/godilite/wheel-of-life/pkg/grpc/server"
)

const (
	shutdownTimeout = 10 * time.Second
	cacheTTL        = 10 * time.Minute
	maxRequestSize  = 1 << 20
)

// Components is the wiring shared by every entry point: a question catalog,
// a renderer and, when enabled, a history store.
type Components struct {
	Catalog  *catalog.Catalog
	Renderer *render.Renderer
	History  *repository.RenderRepository
	Service  *service.WheelService

	db *sql.DB
}

// Close releases the history database, if one was opened.
func (c *Components) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// LoadCatalog returns the catalog at path, or the built-in one when path is
// empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// OpenHistory opens the SQLite history store and makes sure its schema
// exists.
func OpenHistory(ctx context.Context, cfg *config.Config) (*sql.DB, *repository.RenderRepository, error) {
	db, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithCreateDir(true),
		dbbuilder.WithMaxOpenConns(1),
		dbbuilder.WithPragmas("foreign_keys = ON", "busy_timeout = 5000"),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}

	repo := repository.NewRenderRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, repo, nil
}

// NewComponents builds the catalog, renderer and wheel service described by
// cfg. catalogPath overrides cfg.CatalogPath when set.
func NewComponents(ctx context.Context, cfg *config.Config, catalogPath string, logger *zap.Logger) (*Components, error) {
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(render.WithDPI(cfg.OutputDPI))
	if err != nil {
		return nil, fmt.Errorf("renderer init failed: %w", err)
	}

	c := &Components{Catalog: cat, Renderer: renderer}

	var history service.HistoryRepository
	if cfg.HistoryEnabled {
		c.db, c.History, err = OpenHistory(ctx, cfg)
		if err != nil {
			return nil, err
		}
		history = c.History
		logger.Debug("render history enabled", zap.String("path", cfg.DBPath))
	}

	c.Service = service.NewWheelService(cat, renderer, history, logger)
	return c, nil
}

type App struct {
	logger     *zap.Logger
	components *Components
	cache      handler.Cacher
	grpcServer *grpcsrv.Server
}

// NewApp wires the gRPC service. An empty REDIS_ADDR runs without a cache.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	components, err := NewComponents(ctx, cfg, "", logger)
	if err != nil {
		return nil, err
	}

	var cacheClient handler.Cacher = cache.Noop{}
	if cfg.RedisAddr != "" {
		rc, err := cache.New(ctx,
			cache.WithAddress(cfg.RedisAddr),
			cache.WithPrefix(cachePrefix(components.Catalog)))
		if err != nil {
			components.Close()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		cacheClient = rc
		logger.Info("Cache client initialized",
			zap.String("addr", cfg.RedisAddr),
			zap.String("prefix", cachePrefix(components.Catalog)))
	}

	grpcHandlers := handler.NewGRPCHandlers(components.Service, cacheClient, logger, cacheTTL)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithMaxRecvMsgSize(maxRequestSize),
	)
	if err != nil {
		cacheClient.Close()
		components.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterWheelServiceServer(s, grpcHandlers)
	})

	return &App{
		logger:     logger,
		components: components,
		cache:      cacheClient,
		grpcServer: grpcServer,
	}, nil
}

// cachePrefix scopes cached layouts and images to the catalog that produced
// their labels, so a server restarted with another catalog misses instead of
// serving old text.
func cachePrefix(cat *catalog.Catalog) string {
	return fmt.Sprintf("wheel:%016x:", cat.Fingerprint())
}

// Addr returns the gRPC listen address.
func (a *App) Addr() net.Addr {
	return a.grpcServer.Addr()
}

// Run starts the application and blocks until ctx is done or a shutdown
// signal is received.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.grpcServer.Start()
	<-ctx.Done()

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := a.grpcServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("gRPC shutdown did not complete", zap.Error(err))
		shutdownErr = err
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.components.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if shutdownErr == nil {
		a.logger.Info("graceful shutdown completed successfully")
	}
	return shutdownErr
}
