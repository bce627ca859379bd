package service

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cache"
)

type dashboardService struct {
	analysis    AnalysisService
	trust       app.TrustUseCase
	cache       *cache.Registry
	defaultDays int
	observer    UseCaseObserver
}

type DashboardService interface {
	app.DashboardUseCase
}

func NewDashboardService(
	analysis AnalysisService,
	trust app.TrustUseCase,
	reg *cache.Registry,
	defaultDays int,
	observers ...UseCaseObserver,
) DashboardService {
	return &dashboardService{
		analysis:    analysis,
		trust:       trust,
		cache:       reg,
		defaultDays: defaultDays,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *dashboardService) Dashboard(ctx context.Context, req app.AnalysisRequest) (resp *app.DashboardResponse, err error) {
	days, now := req.Resolve(s.defaultDays)
	defer observe(ctx, s.observer, "dashboard", time.Now(), map[string]any{"user_id": req.UserID, "days": days}, &err)

	if req.UserID == "" {
		return nil, invalid("user_id", "required")
	}
	req.Days = days
	key := cache.Key(req.UserID, "dashboard", strconv.Itoa(days))
	return cache.GetOrComputeAs(s.cache, cache.Dashboard, key, func() (*app.DashboardResponse, error) {
		out := &app.DashboardResponse{UserID: req.UserID, Days: days, GeneratedAt: now}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			r, err := s.analysis.AnalyzePatterns(gctx, req)
			if err == nil {
				out.Patterns = *r
			}
			return err
		})
		g.Go(func() error {
			r, err := s.analysis.DetectCycles(gctx, req)
			if err == nil {
				out.Cycles = *r
			}
			return err
		})
		g.Go(func() error {
			r, err := s.analysis.AnalyzeResilience(gctx, req)
			if err == nil {
				out.Resilience = *r
			}
			return err
		})
		g.Go(func() error {
			r, err := s.analysis.DetectProgress(gctx, req)
			if err == nil {
				out.Progress = *r
			}
			return err
		})
		g.Go(func() error {
			info, err := s.trust.GetTrustInfo(gctx, req.UserID)
			out.Trust = info
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	})
}
