package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-insights-api/internal/config"
	"github.com/vfg2006/store-insights-api/internal/usecases/insighting"
)

// SyncType define o que o aquecimento recalcula
type SyncType string

const (
	SyncInsights SyncType = "insights"
	SyncSegments SyncType = "segments"
	SyncAll      SyncType = "all"
)

// ParseSyncType valida o tipo recebido na rota de execução manual
func ParseSyncType(value string) (SyncType, error) {
	switch SyncType(value) {
	case SyncInsights, SyncSegments, SyncAll:
		return SyncType(value), nil
	}
	return "", fmt.Errorf("tipo de sincronização desconhecido: %q", value)
}

// InsightWarmupConfig representa a configuração do agendador de aquecimento
type InsightWarmupConfig struct {
	CronSchedule string
	SyncEnabled  bool
	ProfileLimit int
}

// InsightWarmupService recalcula periodicamente os insights para preencher o cache e o histórico
type InsightWarmupService struct {
	scheduler           *gocron.Scheduler
	config              InsightWarmupConfig
	insighter           insighting.Insighter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncType        SyncType
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewInsightWarmupService(insighter insighting.Insighter, appConfig *config.Config) *InsightWarmupService {
	warmupConfig := InsightWarmupConfig{
		CronSchedule: appConfig.InsightWarmup.CronSchedule,
		SyncEnabled:  appConfig.InsightWarmup.Enabled,
		ProfileLimit: appConfig.ProfileLimit,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": warmupConfig.CronSchedule,
		"sync_enabled":  warmupConfig.SyncEnabled,
		"profile_limit": warmupConfig.ProfileLimit,
	}).Info("Configuração do agendador de aquecimento de insights carregada")

	return &InsightWarmupService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    warmupConfig,
		insighter: insighter,
	}
}

// Start inicia o agendador
func (s *InsightWarmupService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Aquecimento de insights desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de aquecimento de insights")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runWarmup(ctx, SyncAll)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar aquecimento de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de aquecimento de insights")
		s.scheduler.Stop()
	}()

	return nil
}

// runWarmup ignora a execução quando outra já está em andamento
func (s *InsightWarmupService) runWarmup(ctx context.Context, syncType SyncType) {
	if !s.claim(syncType) {
		logrus.Info("Aquecimento de insights já em andamento, ignorando")
		return
	}

	s.execute(ctx, syncType)
}

// claim marca a execução como em andamento sob o mutex. Quem recebe true deve chamar execute.
func (s *InsightWarmupService) claim(syncType SyncType) bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncType = syncType
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *InsightWarmupService) execute(ctx context.Context, syncType SyncType) {
	startTime := time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logger := logrus.WithField("sync_type", syncType)
	logger.Info("Iniciando aquecimento de insights")

	if syncType == SyncInsights || syncType == SyncAll {
		campaign := s.insighter.CampaignInsight(ctx)
		revenue := s.insighter.RevenueInsight(ctx)

		logger.WithFields(logrus.Fields{
			"campaign_insight": campaign.Insight.ID,
			"campaign_source":  campaign.Source,
			"revenue_insight":  revenue.Insight.ID,
		}).Info("Insights recalculados")
	}

	if syncType == SyncSegments || syncType == SyncAll {
		segments := s.insighter.Segments(ctx, s.config.ProfileLimit)

		logger.WithFields(logrus.Fields{
			"segments": len(segments.Segments),
			"source":   segments.Source,
			"profiles": segments.Profiles,
		}).Info("Segmentos recalculados")
	}

	logger.WithField("duration", time.Since(startTime).String()).Info("Aquecimento de insights concluído")
}

// TriggerManualSync dispara o aquecimento em segundo plano. Retorna false se já houver um em andamento.
func (s *InsightWarmupService) TriggerManualSync(syncType SyncType) bool {
	if !s.claim(syncType) {
		logrus.Info("Aquecimento de insights já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.WithField("sync_type", syncType).Info("Iniciando aquecimento manual de insights")
	go s.execute(context.Background(), syncType)

	return true
}

// GetStatus retorna o status atual do aquecimento
func (s *InsightWarmupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_type":         s.lastSyncType,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
