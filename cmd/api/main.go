package main

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-insights-api/infrastructure/cache"
	"github.com/vfg2006/store-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/store-insights-api/infrastructure/integrator/llm"
	"github.com/vfg2006/store-insights-api/infrastructure/integrator/llm/llmclient"
	"github.com/vfg2006/store-insights-api/infrastructure/repository"
	"github.com/vfg2006/store-insights-api/infrastructure/seed"
	"github.com/vfg2006/store-insights-api/internal/api"
	"github.com/vfg2006/store-insights-api/internal/config"
	"github.com/vfg2006/store-insights-api/internal/scheduler"
	"github.com/vfg2006/store-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/store-insights-api/internal/usecases/campaigning"
	"github.com/vfg2006/store-insights-api/internal/usecases/dataset"
	"github.com/vfg2006/store-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/store-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/store-insights-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := dataset.NewReader(seed.NewFileLoader(cfg))
	logrus.WithField("data_dir", cfg.Data.Dir).Info("Snapshots de dados carregados a cada requisição")

	insightCache := cache.New(cfg)
	generator := llm.New(cfg, llmclient.NewClient(cfg))

	insightService := insighting.NewService(cfg, reader, insightCache, generator)

	var closers []io.Closer
	if closer, ok := insightCache.(io.Closer); ok {
		closers = append(closers, closer)
	}

	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		closers = append(closers, pgConn)
		insightService.WithSnapshotRepository(repository.NewInsightSnapshotRepository(pgConn))
	} else {
		logrus.Info("Banco desabilitado: histórico de insights não será armazenado")
	}

	aggregator := aggregating.NewService(reader)
	campaignService := campaigning.NewService(reader)
	exporter := reporting.NewService(aggregator, campaignService, cfg.ProfileLimit)

	warmupService := scheduler.NewInsightWarmupService(insightService, cfg)
	if err := warmupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de aquecimento de insights")
	} else {
		logrus.Info("Agendador de aquecimento de insights iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Aggregator: aggregator,
		Campaigns:  campaignService,
		Insighter:  insightService,
		Exporter:   exporter,
		Warmup:     warmupService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	for _, closer := range closers {
		server.WithCloser(closer)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	if err := conn.Migrate(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações do histórico de insights")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
