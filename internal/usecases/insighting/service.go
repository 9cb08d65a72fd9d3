package insighting

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/store-insights-api/infrastructure/cache"
	"github.com/vfg2006/store-insights-api/infrastructure/integrator/llm"
	"github.com/vfg2006/store-insights-api/infrastructure/repository"
	"github.com/vfg2006/store-insights-api/internal/config"
	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/store-insights-api/internal/usecases/campaigning"
	"github.com/vfg2006/store-insights-api/internal/usecases/dataset"
	"github.com/vfg2006/store-insights-api/internal/usecases/ranking"
	"github.com/vfg2006/store-insights-api/internal/usecases/segmenting"
	"github.com/vfg2006/store-insights-api/pkg/log"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Service struct {
	cfg       *config.Config
	reader    *dataset.Reader
	cache     cache.Cache
	generator llm.Generator
	snapshots repository.InsightSnapshotRepository
	now       func() time.Time
}

// NewService cria o serviço de insights. generator pode ser nil quando não há modelo configurado.
func NewService(
	cfg *config.Config,
	reader *dataset.Reader,
	insightCache cache.Cache,
	generator llm.Generator,
) *Service {
	return &Service{
		cfg:       cfg,
		reader:    reader,
		cache:     insightCache,
		generator: generator,
		now:       time.Now,
	}
}

// WithSnapshotRepository habilita o histórico de insights no banco
func (s *Service) WithSnapshotRepository(repo repository.InsightSnapshotRepository) *Service {
	s.snapshots = repo
	return s
}

// WithClock substitui o relógio usado nas janelas de tempo das regras
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CampaignInsight(ctx context.Context) domain.InsightResponse {
	logger := log.ForContext(ctx)

	summaries := campaigning.SortSummaries(campaigning.Summarize(
		campaigning.JoinCampaignResults(s.reader.Campaigns(ctx), s.reader.CampaignResults(ctx)),
	))

	key, err := cache.Key(cache.CampaignInsightPrefix, summaries)
	if err != nil {
		logger.WithError(err).Warn("insights: não foi possível calcular a chave de cache")
	}

	var cached domain.InsightResponse
	if s.fromCache(ctx, key, &cached) {
		cached.Source = domain.InsightSourceCache
		return cached
	}

	if insight, ok := s.generateCampaignInsight(ctx, summaries); ok {
		response := domain.InsightResponse{
			Insight:     *insight,
			Source:      domain.InsightSourceLLM,
			GeneratedAt: s.now().UTC(),
		}
		s.toCache(ctx, key, response)
		s.record(ctx, domain.SnapshotKindCampaign, key, response.Source, response)
		return response
	}

	candidates := ranking.Evaluate(ranking.DefaultCampaignRules(), ranking.RankInput{
		Summaries: summaries,
		Orders:    s.reader.Orders(ctx),
		Now:       s.now(),
	})

	response := domain.InsightResponse{
		Insight:     ranking.Select(candidates),
		Candidates:  candidates,
		Source:      domain.InsightSourceHeuristic,
		GeneratedAt: s.now().UTC(),
	}
	s.record(ctx, domain.SnapshotKindCampaign, key, response.Source, response)

	return response
}

func (s *Service) RevenueInsight(ctx context.Context) domain.InsightResponse {
	response := domain.InsightResponse{
		Insight:     ranking.RankRevenue(s.reader.Orders(ctx), s.now()),
		Source:      domain.InsightSourceHeuristic,
		GeneratedAt: s.now().UTC(),
	}
	s.record(ctx, domain.SnapshotKindRevenue, "", response.Source, response)

	return response
}

func (s *Service) Segments(ctx context.Context, limit int) domain.SegmentsResponse {
	logger := log.ForContext(ctx)

	if limit <= 0 {
		limit = s.cfg.ProfileLimit
	}

	profiles := aggregating.BuildCustomerFeedbackProfiles(s.reader.Feedbacks(ctx), s.reader.Consumers(ctx), limit)

	key, err := cache.Key(cache.SegmentsPrefix, profiles)
	if err != nil {
		logger.WithError(err).Warn("segmentos: não foi possível calcular a chave de cache")
	}

	var cached domain.SegmentsResponse
	if s.fromCache(ctx, key, &cached) {
		cached.Source = domain.InsightSourceCache
		return cached
	}

	if len(profiles) > 0 && s.generator != nil {
		segments, err := s.generator.GenerateSegments(ctx, profiles)
		if err == nil {
			response := domain.SegmentsResponse{
				Segments:    segments,
				Source:      domain.InsightSourceLLM,
				Profiles:    len(profiles),
				GeneratedAt: s.now().UTC(),
			}
			s.toCache(ctx, key, response)
			s.record(ctx, domain.SnapshotKindSegments, key, response.Source, response)
			return response
		}
		s.logGenerationError(ctx, "segmentos", err)
	}

	response := domain.SegmentsResponse{
		Segments:    segmenting.BuildFallbackSegments(profiles),
		Source:      domain.InsightSourceHeuristic,
		Profiles:    len(profiles),
		GeneratedAt: s.now().UTC(),
	}
	s.record(ctx, domain.SnapshotKindSegments, key, response.Source, response)

	return response
}

func (s *Service) History(ctx context.Context, kind domain.SnapshotKind, limit int) ([]*domain.InsightSnapshot, error) {
	if s.snapshots == nil {
		return []*domain.InsightSnapshot{}, nil
	}

	snapshots, err := s.snapshots.ListRecent(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar histórico de insights: %w", err)
	}

	return snapshots, nil
}

func (s *Service) generateCampaignInsight(ctx context.Context, summaries []domain.CampaignSummary) (*domain.Insight, bool) {
	if s.generator == nil || len(summaries) == 0 {
		return nil, false
	}

	insight, err := s.generator.GenerateCampaignInsight(ctx, summaries)
	if err != nil {
		s.logGenerationError(ctx, "insights", err)
		return nil, false
	}

	return insight, true
}

func (s *Service) logGenerationError(ctx context.Context, scope string, err error) {
	if errors.Is(err, llm.ErrDisabled) {
		log.ForContext(ctx).Debugf("%s: LLM desabilitado, usando heurística", scope)
		return
	}
	log.ForContext(ctx).WithError(err).Warnf("%s: falha na geração pelo modelo, usando heurística", scope)
}

// Falhas de cache nunca interrompem a requisição
func (s *Service) fromCache(ctx context.Context, key string, target any) bool {
	if s.cache == nil || key == "" {
		return false
	}

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("cache: erro na leitura")
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		log.ForContext(ctx).WithError(err).Warn("cache: valor inválido ignorado")
		return false
	}

	return true
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil || key == "" {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("cache: erro ao serializar valor")
		return
	}

	if err := s.cache.Set(ctx, key, raw); err != nil {
		log.ForContext(ctx).WithError(err).Warn("cache: erro na gravação")
	}
}

// Falhas ao gravar o histórico são apenas registradas no log
func (s *Service) record(ctx context.Context, kind domain.SnapshotKind, key string, source domain.InsightSource, payload any) {
	if s.snapshots == nil {
		return
	}

	logger := log.ForContext(ctx).WithField("kind", string(kind))

	id, err := utils.GenerateID()
	if err != nil {
		logger.WithError(err).Error("histórico: erro ao gerar ID do snapshot")
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		logger.WithError(err).Error("histórico: erro ao serializar snapshot")
		return
	}

	err = s.snapshots.Save(ctx, &domain.InsightSnapshot{
		ID:        id,
		Kind:      kind,
		CacheKey:  key,
		Source:    source,
		Payload:   raw,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		logger.WithError(err).Error("histórico: erro ao gravar snapshot")
	}
}
