package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/repository"
)

// progressLookbackDays covers both halves of the week-over-week comparison.
const progressLookbackDays = 14

type analysisService struct {
	store        repository.TimeSeriesStore
	correlations repository.CorrelationRepo
	cache        *cache.Registry
	analyzer     *analysis.Analyzer
	defaultDays  int
	logger       *slog.Logger
	observer     UseCaseObserver
}

// AnalysisService serves the pattern, cycle, resilience and progress
// reports through the cache.
type AnalysisService interface {
	app.PatternUseCase
	app.CycleUseCase
}

func NewAnalysisService(
	store repository.TimeSeriesStore,
	correlations repository.CorrelationRepo,
	reg *cache.Registry,
	analyzer *analysis.Analyzer,
	defaultDays int,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) AnalysisService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &analysisService{
		store:        store,
		correlations: correlations,
		cache:        reg,
		analyzer:     analyzer,
		defaultDays:  defaultDays,
		logger:       logger,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *analysisService) AnalyzePatterns(ctx context.Context, req app.AnalysisRequest) (report *analysis.PatternReport, err error) {
	days, now := req.Resolve(s.defaultDays)
	fields := map[string]any{"user_id": req.UserID, "days": days}
	defer observe(ctx, s.observer, "analyze-patterns", time.Now(), fields, &err)

	if req.UserID == "" {
		return nil, invalid("user_id", "required")
	}
	key := cache.Key(req.UserID, "patterns", strconv.Itoa(days))
	return cache.GetOrComputeAs(s.cache, cache.Correlations, key, func() (*analysis.PatternReport, error) {
		w, err := s.loadWindow(ctx, req.UserID, days, now)
		if err != nil {
			return nil, err
		}
		r := s.analyzer.Patterns(w)
		s.logWarnings(ctx, "analyze-patterns", req.UserID, r.Warnings)
		fields["data_points"] = r.DataPoints
		fields["correlations"] = len(r.Correlations)
		s.persistCorrelations(ctx, req.UserID, r.Correlations)
		return &r, nil
	})
}

func (s *analysisService) DetectCycles(ctx context.Context, req app.AnalysisRequest) (report *analysis.CycleReport, err error) {
	days, now := req.Resolve(s.defaultDays)
	defer observe(ctx, s.observer, "detect-cycles", time.Now(), map[string]any{"user_id": req.UserID, "days": days}, &err)

	if req.UserID == "" {
		return nil, invalid("user_id", "required")
	}
	key := cache.Key(req.UserID, "cycles", strconv.Itoa(days))
	return cache.GetOrComputeAs(s.cache, cache.Cycles, key, func() (*analysis.CycleReport, error) {
		w, err := s.loadWindow(ctx, req.UserID, days, now)
		if err != nil {
			return nil, err
		}
		r := s.analyzer.Cycles(w)
		s.logWarnings(ctx, "detect-cycles", req.UserID, r.Warnings)
		return &r, nil
	})
}

func (s *analysisService) AnalyzeResilience(ctx context.Context, req app.AnalysisRequest) (report *analysis.ResilienceReport, err error) {
	days, now := req.Resolve(s.defaultDays)
	defer observe(ctx, s.observer, "analyze-resilience", time.Now(), map[string]any{"user_id": req.UserID, "days": days}, &err)

	if req.UserID == "" {
		return nil, invalid("user_id", "required")
	}
	key := cache.Key(req.UserID, "resilience", strconv.Itoa(days))
	return cache.GetOrComputeAs(s.cache, cache.Cycles, key, func() (*analysis.ResilienceReport, error) {
		w, err := s.loadWindow(ctx, req.UserID, days, now)
		if err != nil {
			return nil, err
		}
		r := s.analyzer.Resilience(w)
		s.logWarnings(ctx, "analyze-resilience", req.UserID, r.Warnings)
		return &r, nil
	})
}

func (s *analysisService) DetectProgress(ctx context.Context, req app.AnalysisRequest) (report *analysis.ProgressReport, err error) {
	_, now := req.Resolve(s.defaultDays)
	defer observe(ctx, s.observer, "detect-progress", time.Now(), map[string]any{"user_id": req.UserID}, &err)

	if req.UserID == "" {
		return nil, invalid("user_id", "required")
	}
	key := cache.Key(req.UserID, "progress")
	return cache.GetOrComputeAs(s.cache, cache.Dashboard, key, func() (*analysis.ProgressReport, error) {
		w, err := s.loadWindow(ctx, req.UserID, progressLookbackDays, now)
		if err != nil {
			return nil, err
		}
		r := s.analyzer.Progress(w)
		return &r, nil
	})
}

// loadWindow reads the three series for one user concurrently.
func (s *analysisService) loadWindow(ctx context.Context, userID string, days int, now time.Time) (analysis.Window, error) {
	since := now.AddDate(0, 0, -days)
	w := analysis.Window{UserID: userID, Now: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		samples, err := s.store.GetMoodSamples(gctx, userID, since)
		if err != nil {
			return fmt.Errorf("loading mood samples: %w", err)
		}
		w.Samples = samples
		return nil
	})
	g.Go(func() error {
		completions, err := s.store.GetHabitCompletions(gctx, userID, since)
		if err != nil {
			return fmt.Errorf("loading habit completions: %w", err)
		}
		w.Completions = completions
		return nil
	})
	g.Go(func() error {
		habits, err := s.store.ListActiveHabits(gctx, userID)
		if err != nil {
			return fmt.Errorf("loading active habits: %w", err)
		}
		w.Habits = habits
		return nil
	})
	if err := g.Wait(); err != nil {
		return analysis.Window{}, err
	}
	return w, nil
}

// persistCorrelations is best-effort: each upsert is retried once and a
// second failure is only logged.
func (s *analysisService) persistCorrelations(ctx context.Context, userID string, cs []analysis.HabitCorrelation) {
	if s.correlations == nil {
		return
	}
	for _, c := range cs {
		rec := c.Record(userID)
		err := s.correlations.Upsert(ctx, &rec)
		if err == nil {
			continue
		}
		s.logger.WarnContext(ctx, "correlation upsert failed, retrying",
			"user_id", userID, "factor", rec.FactorName, "error", err)
		if err := s.correlations.Upsert(ctx, &rec); err != nil {
			s.logger.ErrorContext(ctx, "correlation upsert failed",
				"user_id", userID, "factor", rec.FactorName, "error", err)
		}
	}
}

func (s *analysisService) logWarnings(ctx context.Context, useCase, userID string, warnings []analysis.Warning) {
	for _, w := range warnings {
		s.logger.WarnContext(ctx, "skipped input row",
			"use_case", useCase, "user_id", userID, "ref", w.Ref, "reason", w.Reason)
	}
}
