package service

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/domain"
)

type insightService struct {
	analysis AnalysisService
	trust    app.TrustUseCase
	cache    *cache.Registry
	observer UseCaseObserver
}

type InsightService interface {
	app.InsightUseCase
}

func NewInsightService(
	analysis AnalysisService,
	trust app.TrustUseCase,
	reg *cache.Registry,
	observers ...UseCaseObserver,
) InsightService {
	return &insightService{
		analysis: analysis,
		trust:    trust,
		cache:    reg,
		observer: useCaseObserverOrNoop(observers),
	}
}

// GetRelevantInsight picks the single insight most worth mentioning. When
// the user reports a crisis-level mood, their strongest helpful habit wins.
func (s *insightService) GetRelevantInsight(ctx context.Context, req app.InsightRequest) (insight *analysis.Insight, err error) {
	fields := map[string]any{"user_id": req.UserID}
	defer observe(ctx, s.observer, "relevant-insight", time.Now(), fields, &err)

	if req.UserID == "" {
		return nil, invalid("user_id", "required")
	}
	if req.CurrentMood != nil && !domain.ValidLevel(*req.CurrentMood) {
		return nil, invalid("current_mood", "must be between %d and %d", domain.MinMoodLevel, domain.MaxMoodLevel)
	}

	areq := app.AnalysisRequest{UserID: req.UserID, Now: req.Now}
	var (
		patterns *analysis.PatternReport
		cycles   *analysis.CycleReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		patterns, err = s.analysis.AnalyzePatterns(gctx, areq)
		return err
	})
	g.Go(func() error {
		var err error
		cycles, err = s.analysis.DetectCycles(gctx, areq)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	insight = selectInsight(patterns, cycles, req.CurrentMood)
	if insight != nil {
		fields["kind"] = string(insight.Kind)
	}
	return insight, nil
}

func selectInsight(patterns *analysis.PatternReport, cycles *analysis.CycleReport, currentMood *int) *analysis.Insight {
	if currentMood != nil && *currentMood <= domain.CrisisMoodLevel {
		if best := patterns.BestPositive(); best != nil {
			in := analysis.Suggestion(*best)
			return &in
		}
	}

	combined := make([]analysis.Insight, 0, len(patterns.Insights)+len(cycles.Insights))
	combined = append(combined, patterns.Insights...)
	combined = append(combined, cycles.Insights...)
	if len(combined) == 0 {
		return nil
	}
	analysis.RankInsights(combined)
	return &combined[0]
}

// PromptSignal bundles the relevant insight with the tone policy and the
// current progress highlight, cached per user and reported mood.
func (s *insightService) PromptSignal(ctx context.Context, req app.InsightRequest) (signal *app.PromptSignal, err error) {
	defer observe(ctx, s.observer, "prompt-signal", time.Now(), map[string]any{"user_id": req.UserID}, &err)

	if req.UserID == "" {
		return nil, invalid("user_id", "required")
	}
	mood := "none"
	if req.CurrentMood != nil {
		mood = strconv.Itoa(*req.CurrentMood)
	}
	key := cache.Key(req.UserID, "signal", mood)
	return cache.GetOrComputeAs(s.cache, cache.ConversationSummaries, key, func() (*app.PromptSignal, error) {
		out := &app.PromptSignal{UserID: req.UserID, ComputedAt: time.Now().UTC()}
		if req.Now != nil {
			out.ComputedAt = req.Now.UTC()
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			in, err := s.GetRelevantInsight(gctx, req)
			out.Insight = in
			return err
		})
		g.Go(func() error {
			info, err := s.trust.GetTrustInfo(gctx, req.UserID)
			out.TrustLevel = info.Level
			out.Policy = info.Policy
			return err
		})
		g.Go(func() error {
			p, err := s.analysis.DetectProgress(gctx, app.AnalysisRequest{UserID: req.UserID, Now: req.Now})
			if err != nil {
				return err
			}
			out.Highlight = p.Highlight
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	})
}
