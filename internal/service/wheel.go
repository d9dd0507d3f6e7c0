package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/godilite/wheel-of-life/internal/layout"
	"github.com/godilite/wheel-of-life/internal/repository/models"
	"github.com/godilite/wheel-of-life/internal/responses"
)

const (
	// OutputFileName is the fixed name of the rendered chart.
	OutputFileName = "wheel_of_life.png"

	dbTimeout = 2 * time.Second
)

var (
	ErrRenderFailed        = errors.New("render failed")
	ErrHistoryUnavailable  = errors.New("render history is not configured")
	ErrOutputFolderInvalid = errors.New("output folder is not a directory")
)

// WheelService turns response sets into wheel charts.
type WheelService struct {
	questions layout.QuestionLookup
	renderer  ChartRenderer
	history   HistoryRepository
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewWheelService creates a WheelService. history may be nil, in which case
// renders are not recorded.
func NewWheelService(questions layout.QuestionLookup, renderer ChartRenderer, history HistoryRepository, logger *zap.Logger) *WheelService {
	if questions == nil {
		panic("question catalog must not be nil")
	}
	if renderer == nil {
		panic("renderer must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &WheelService{
		questions: questions,
		renderer:  renderer,
		history:   history,
		logger:    logger.Named("wheel"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// BuildLayout computes the wheel layout of set.
func (s *WheelService) BuildLayout(ctx context.Context, set responses.Set) (layout.Layout, error) {
	if err := ctx.Err(); err != nil {
		return layout.Layout{}, err
	}
	l, err := layout.Build(set, s.questions)
	if err != nil {
		return layout.Layout{}, err
	}
	s.logger.Debug("layout built",
		zap.Int("categories", l.Categories),
		zap.Int("questions_per_category", l.QuestionsPerCategory),
		zap.Float64("max_radius", l.MaxRadius()))
	if out := l.OutOfRange(); len(out) > 0 {
		s.logger.Warn("scores outside the display range are drawn unclamped",
			zap.Int("count", len(out)),
			zap.Float64("lower", layout.LowerLimit),
			zap.Float64("upper", layout.UpperLimit))
	}
	return l, nil
}

// RenderBytes lays out and renders set, returning the encoded image.
func (s *WheelService) RenderBytes(ctx context.Context, set responses.Set) ([]byte, layout.Layout, error) {
	l, err := s.BuildLayout(ctx, set)
	if err != nil {
		return nil, layout.Layout{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, layout.Layout{}, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, l); err != nil {
		return nil, layout.Layout{}, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), l, nil
}

// RenderFile reads inputPath, renders it and writes
// <outputFolder>/wheel_of_life.png. A missing input file is reported before
// anything else happens. No output file is left behind on failure.
func (s *WheelService) RenderFile(ctx context.Context, inputPath, outputFolder string) (RenderResult, error) {
	if err := responses.CheckExists(inputPath); err != nil {
		return RenderResult{}, err
	}
	if err := ensureDir(outputFolder); err != nil {
		return RenderResult{}, err
	}

	set, err := responses.Load(inputPath)
	if err != nil {
		return RenderResult{}, err
	}

	data, l, err := s.RenderBytes(ctx, set)
	if err != nil {
		return RenderResult{}, err
	}

	outputPath := filepath.Join(outputFolder, OutputFileName)
	if err := writeFileAtomic(outputPath, data); err != nil {
		return RenderResult{}, fmt.Errorf("write %s: %w", outputPath, err)
	}

	res := RenderResult{
		ID:         s.newID(),
		InputPath:  inputPath,
		OutputPath: outputPath,
		Set:        set,
		Layout:     l,
	}
	s.logger.Info("wheel rendered",
		zap.String("id", res.ID),
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("bars", len(l.Bars)),
		zap.Int("bytes", len(data)))

	s.record(ctx, res)
	return res, nil
}

// History returns the most recent renders.
func (s *WheelService) History(ctx context.Context, limit int) ([]models.RenderRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	recs, err := s.history.List(dbCtx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return recs, nil
}

// record stores a successful render. Failures are logged; the chart is
// already on disk.
func (s *WheelService) record(ctx context.Context, res RenderResult) {
	if s.history == nil {
		return
	}

	rec := models.RenderRecord{
		ID:         res.ID,
		InputPath:  res.InputPath,
		OutputPath: res.OutputPath,
		Categories: res.Layout.Categories,
		Questions:  res.Layout.QuestionsPerCategory,
		CreatedAt:  s.now(),
		Scores:     make([]models.ScoreRow, 0, len(res.Layout.Bars)),
	}
	for i, b := range res.Layout.Bars {
		rec.Scores = append(rec.Scores, models.ScoreRow{
			Category: b.Category,
			Key:      b.Key,
			Score:    b.Radius,
			Position: i,
		})
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.history.Save(dbCtx, rec); err != nil {
		s.logger.Warn("failed to record render", zap.String("id", rec.ID), zap.Error(err))
	}
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%w: %s", ErrOutputFolderInvalid, dir)
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output folder %s: %w", dir, err)
		}
		return nil
	default:
		return fmt.Errorf("stat output folder %s: %w", dir, err)
	}
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wheel-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
