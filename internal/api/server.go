package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-insights-api/internal/api/handler"
	"github.com/vfg2006/store-insights-api/internal/api/handler/router"
	"github.com/vfg2006/store-insights-api/internal/config"
	"github.com/vfg2006/store-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/store-insights-api/internal/usecases/campaigning"
	"github.com/vfg2006/store-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/store-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/store-insights-api/pkg/middleware"
)

// Services reúne os casos de uso expostos pela API
type Services struct {
	Aggregator aggregating.Aggregator
	Campaigns  campaigning.CampaignService
	Insighter  insighting.Insighter
	Exporter   reporting.Exporter
	Warmup     handler.WarmupTrigger
}

type Server struct {
	httpServer *http.Server
	closers    []io.Closer
}

func New(config *config.Config, services Services) (*Server, error) {
	if services.Aggregator == nil || services.Campaigns == nil || services.Insighter == nil ||
		services.Exporter == nil || services.Warmup == nil {
		return nil, fmt.Errorf("serviços incompletos para iniciar a API")
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(services.Aggregator, config.ProfileLimit)...),
		router.WithRoutes(handler.Campaigns(services.Campaigns)...),
		router.WithRoutes(handler.Insights(services.Insighter)...),
		router.WithRoutes(handler.Reports(services.Exporter)...),
		router.WithRoutes(handler.CronJobs(services.Warmup)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// WithCloser registra recursos (cache, banco) fechados no desligamento
func (s *Server) WithCloser(closer io.Closer) *Server {
	s.closers = append(s.closers, closer)
	return s
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	for _, closer := range s.closers {
		if err := closer.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar recurso no desligamento")
		}
	}

	return nil
}
