package handler

import (
	"net/http"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/store-insights-api/pkg/apiErrors"
	"github.com/vfg2006/store-insights-api/pkg/log"
)

func GetCampaignInsight(service insighting.CampaignInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := service.CampaignInsight(r.Context())

		log.ForContext(r.Context()).WithFields(log.Fields{
			"insight_id": response.Insight.ID,
			"source":     response.Source,
		}).Info("insights: insight de campanhas gerado")

		writeJSON(w, r, response)
	})
}

func GetRevenueInsight(service insighting.RevenueInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, service.RevenueInsight(r.Context()))
	})
}

// GetSegments retorna os segmentos de clientes; limit controla quantos perfis entram no cálculo
func GetSegments(service insighting.Segmenter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r.URL.Query())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		response := service.Segments(r.Context(), limit)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"segments": len(response.Segments),
			"source":   response.Source,
		}).Info("segmentos: segmentos gerados")

		writeJSON(w, r, response)
	})
}

var snapshotKinds = map[domain.SnapshotKind]bool{
	domain.SnapshotKindCampaign: true,
	domain.SnapshotKindRevenue:  true,
	domain.SnapshotKindSegments: true,
}

// GetInsightHistory lista os snapshots armazenados, opcionalmente filtrados por kind
func GetInsightHistory(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		kind := domain.SnapshotKind(query.Get("kind"))
		if kind != "" && !snapshotKinds[kind] {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "kind inválido. Valores aceitos: campaign, revenue, segments", nil)
			return
		}

		limit, err := parseLimit(query)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		snapshots, err := service.History(r.Context(), kind, limit)
		if err != nil {
			logger.WithError(err).Error("histórico: erro ao buscar snapshots")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico de insights", nil)
			return
		}

		writeJSON(w, r, snapshots)
	})
}
