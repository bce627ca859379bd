package app

import (
	"context"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/trust"
)

type PatternUseCase interface {
	AnalyzePatterns(ctx context.Context, req AnalysisRequest) (*analysis.PatternReport, error)
}

type CycleUseCase interface {
	DetectCycles(ctx context.Context, req AnalysisRequest) (*analysis.CycleReport, error)
	AnalyzeResilience(ctx context.Context, req AnalysisRequest) (*analysis.ResilienceReport, error)
	DetectProgress(ctx context.Context, req AnalysisRequest) (*analysis.ProgressReport, error)
}

type InsightUseCase interface {
	GetRelevantInsight(ctx context.Context, req InsightRequest) (*analysis.Insight, error)
	PromptSignal(ctx context.Context, req InsightRequest) (*PromptSignal, error)
}

type TrustUseCase interface {
	RegisterInteraction(ctx context.Context, userID string) (trust.Transition, error)
	GetTrustInfo(ctx context.Context, userID string) (trust.Info, error)
}

type DashboardUseCase interface {
	Dashboard(ctx context.Context, req AnalysisRequest) (*DashboardResponse, error)
}
