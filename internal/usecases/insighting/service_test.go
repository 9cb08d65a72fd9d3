package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cachemocks "github.com/vfg2006/store-insights-api/infrastructure/cache/mocks"
	"github.com/vfg2006/store-insights-api/infrastructure/integrator/llm"
	llmmocks "github.com/vfg2006/store-insights-api/infrastructure/integrator/llm/mocks"
	repomocks "github.com/vfg2006/store-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/store-insights-api/infrastructure/seed"
	seedmocks "github.com/vfg2006/store-insights-api/infrastructure/seed/mocks"
	"github.com/vfg2006/store-insights-api/internal/config"
	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/usecases/dataset"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)

func fixtures() map[seed.Collection][]any {
	return map[seed.Collection][]any{
		seed.Campaigns: {
			map[string]any{"id": "1", "campaign_id": "camp-x", "status": "finished", "targeting": "vip"},
			map[string]any{"id": "2", "campaign_id": "camp-y", "status": "finished"},
		},
		seed.CampaignResults: {
			map[string]any{
				"campaign_id":       "camp-x",
				"send_status":       map[string]any{"total_count": 100, "success_count": 98},
				"conversion_rate":   0.06,
				"orders_delivered":  6,
				"total_order_value": 500000,
				"updated_at":        "2024-05-20T10:00:00Z",
			},
		},
		seed.Orders: {
			map[string]any{"id": "o-1", "status": "delivered", "total_price": 1000, "created_at": "2024-05-29T10:00:00Z"},
			map[string]any{"id": "o-2", "status": "delivered", "total_price": 5000, "created_at": "2024-05-20T10:00:00Z"},
		},
		seed.Feedbacks: {
			map[string]any{"id": "f-1", "store_consumer_id": "A", "rating": 5, "category": "entrega", "created_at": "2024-05-10T10:00:00Z"},
			map[string]any{"id": "f-2", "store_consumer_id": "B", "rating": 1, "comment": "Atrasou", "created_at": "2024-05-11T10:00:00Z"},
		},
		seed.Consumers: {},
		seed.Sales:     {},
	}
}

type testDeps struct {
	cache     *cachemocks.MockCache
	generator *llmmocks.MockGenerator
	snapshots *repomocks.MockInsightSnapshotRepository
	service   *Service
}

func newTestService(t *testing.T) testDeps {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	loader := seedmocks.NewMockLoader(ctrl)
	data := fixtures()
	loader.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, collection seed.Collection) ([]any, error) {
			return data[collection], nil
		}).AnyTimes()

	deps := testDeps{
		cache:     cachemocks.NewMockCache(ctrl),
		generator: llmmocks.NewMockGenerator(ctrl),
		snapshots: repomocks.NewMockInsightSnapshotRepository(ctrl),
	}

	cfg := &config.Config{ProfileLimit: 180}
	deps.service = NewService(cfg, dataset.NewReader(loader), deps.cache, deps.generator).
		WithSnapshotRepository(deps.snapshots).
		WithClock(func() time.Time { return fixedNow })

	return deps
}

func TestCampaignInsight(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache hit retorna fonte cache sem chamar o modelo", func(t *testing.T) {
		deps := newTestService(t)
		cached := []byte(`{"insight":{"id":"llm-insight","title":"Do cache","severity":"low"},"source":"llm"}`)
		deps.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cached, true, nil)

		response := deps.service.CampaignInsight(ctx)

		assert.Equal(t, domain.InsightSourceCache, response.Source)
		assert.Equal(t, "Do cache", response.Insight.Title)
	})

	t.Run("Cache miss usa o modelo e grava cache e histórico", func(t *testing.T) {
		deps := newTestService(t)
		var cacheKey string
		deps.cache.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, key string) ([]byte, bool, error) {
				cacheKey = key
				return nil, false, nil
			})
		deps.generator.EXPECT().GenerateCampaignInsight(gomock.Any(), gomock.Len(2)).
			Return(&domain.Insight{ID: "llm-insight", Title: "Gerado", Severity: domain.SeverityHigh}, nil)
		deps.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, key string, _ []byte) error {
				assert.Equal(t, cacheKey, key)
				return nil
			})
		deps.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, snapshot *domain.InsightSnapshot) error {
				assert.Equal(t, domain.SnapshotKindCampaign, snapshot.Kind)
				assert.Equal(t, domain.InsightSourceLLM, snapshot.Source)
				assert.NotEmpty(t, snapshot.ID)
				return nil
			})

		response := deps.service.CampaignInsight(ctx)

		assert.Equal(t, domain.InsightSourceLLM, response.Source)
		assert.Equal(t, "Gerado", response.Insight.Title)
		assert.Contains(t, cacheKey, "insights:campaign:")
	})

	t.Run("Falha do modelo cai para o ranking heurístico", func(t *testing.T) {
		deps := newTestService(t)
		deps.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
		deps.generator.EXPECT().GenerateCampaignInsight(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
		deps.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("banco fora do ar"))

		response := deps.service.CampaignInsight(ctx)

		assert.Equal(t, domain.InsightSourceHeuristic, response.Source)
		assert.Equal(t, "revenue-winner", response.Insight.ID)
		assert.Equal(t, domain.SeverityHigh, response.Insight.Severity)
		assert.NotEmpty(t, response.Candidates)
		assert.Equal(t, fixedNow, response.GeneratedAt)
	})

	t.Run("Erro no cache e LLM desabilitado", func(t *testing.T) {
		deps := newTestService(t)
		deps.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis indisponível"))
		deps.generator.EXPECT().GenerateCampaignInsight(gomock.Any(), gomock.Any()).Return(nil, llm.ErrDisabled)
		deps.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		response := deps.service.CampaignInsight(ctx)

		assert.Equal(t, domain.InsightSourceHeuristic, response.Source)
	})
}

func TestRevenueInsight(t *testing.T) {
	deps := newTestService(t)
	deps.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	response := deps.service.RevenueInsight(context.Background())

	// 1000 na última semana contra 5000 na anterior
	assert.Equal(t, "weekly-revenue-drop", response.Insight.ID)
	assert.Equal(t, domain.SeverityHigh, response.Insight.Severity)
	assert.Equal(t, domain.InsightSourceHeuristic, response.Source)
}

func TestSegments(t *testing.T) {
	ctx := context.Background()

	t.Run("Sem modelo usa os segmentos fixos", func(t *testing.T) {
		deps := newTestService(t)
		deps.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
		deps.generator.EXPECT().GenerateSegments(gomock.Any(), gomock.Len(2)).Return(nil, llm.ErrDisabled)
		deps.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		response := deps.service.Segments(ctx, 0)

		assert.Equal(t, domain.InsightSourceHeuristic, response.Source)
		assert.Equal(t, 2, response.Profiles)
		require.Len(t, response.Segments, 2)
		assert.Equal(t, "promoters", response.Segments[0].ID)
		assert.Equal(t, "detractors", response.Segments[1].ID)
	})

	t.Run("Segmentos do modelo são gravados no cache", func(t *testing.T) {
		deps := newTestService(t)
		deps.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
		deps.generator.EXPECT().GenerateSegments(gomock.Any(), gomock.Len(1)).
			Return([]domain.Segment{{ID: "vip", Name: "VIP"}}, nil)
		deps.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		deps.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		response := deps.service.Segments(ctx, 1)

		assert.Equal(t, domain.InsightSourceLLM, response.Source)
		assert.Equal(t, 1, response.Profiles)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Repositório retorna snapshots", func(t *testing.T) {
		deps := newTestService(t)
		expected := []*domain.InsightSnapshot{{ID: "abc", Kind: domain.SnapshotKindCampaign}}
		deps.snapshots.EXPECT().ListRecent(gomock.Any(), domain.SnapshotKindCampaign, 10).Return(expected, nil)

		snapshots, err := deps.service.History(ctx, domain.SnapshotKindCampaign, 10)

		require.NoError(t, err)
		assert.Equal(t, expected, snapshots)
	})

	t.Run("Erro do repositório é propagado", func(t *testing.T) {
		deps := newTestService(t)
		deps.snapshots.EXPECT().ListRecent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("falha"))

		_, err := deps.service.History(ctx, "", 10)

		assert.Error(t, err)
	})

	t.Run("Sem repositório retorna lista vazia", func(t *testing.T) {
		service := NewService(&config.Config{}, nil, nil, nil)

		snapshots, err := service.History(ctx, "", 10)

		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})
}
