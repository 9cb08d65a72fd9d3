package insighting

import (
	"context"

	"github.com/vfg2006/store-insights-api/internal/domain"
)

// CampaignInsighter escolhe o insight de campanhas: cache, modelo ou ranking heurístico
type CampaignInsighter interface {
	CampaignInsight(ctx context.Context) domain.InsightResponse
}

// RevenueInsighter avalia a queda de receita semanal, sempre de forma determinística
type RevenueInsighter interface {
	RevenueInsight(ctx context.Context) domain.InsightResponse
}

type Segmenter interface {
	// Segments usa o limite de perfis da configuração quando limit <= 0
	Segments(ctx context.Context, limit int) domain.SegmentsResponse
}

// Insighter é a interface completa usada pelos handlers e pelo agendador
type Insighter interface {
	CampaignInsighter
	RevenueInsighter
	Segmenter

	// History lista os snapshots mais recentes; sem banco configurado retorna lista vazia
	History(ctx context.Context, kind domain.SnapshotKind, limit int) ([]*domain.InsightSnapshot, error)
}
