package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/store-insights-api/internal/config"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar no banco: %v", err)
	}
	defer conn.Close()

	startTime := time.Now()
	if err := conn.Migrate(ctx); err != nil {
		logrus.Fatalf("ERRO na migração: %v", err)
	}

	logrus.WithField("statements", len(postgres.Statements)).Infof("Migração concluída em %v", time.Since(startTime))
}
