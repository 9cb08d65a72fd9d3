package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/store-insights-api/pkg/apiErrors"
	"github.com/vfg2006/store-insights-api/pkg/log"
)

// GetOrderStats retorna as métricas de pedidos do período e a variação em relação ao período anterior
func GetOrderStats(aggregator aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dateRange, code, err := parseDateRange(r.URL.Query())
		if err != nil {
			logger.WithError(err).Warn("pedidos: parâmetros de data inválidos")
			apiErrors.WriteError(w, code, err.Error(), nil)
			return
		}

		writeJSON(w, r, aggregator.OrderStats(r.Context(), dateRange))
	})
}

// GetRevenueSeries retorna a série de receita paga. Sem intervalo, cobre os últimos 30 dias.
func GetRevenueSeries(aggregator aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		period := domain.PeriodDaily
		if raw := query.Get("period"); raw != "" {
			parsed, err := aggregating.ParsePeriod(raw)
			if err != nil {
				logger.WithField("period", raw).Warn("vendas: período inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			period = parsed
		}

		dateRange, code, err := parseDateRange(query)
		if err != nil {
			logger.WithError(err).Warn("vendas: parâmetros de data inválidos")
			apiErrors.WriteError(w, code, err.Error(), nil)
			return
		}

		seriesRange := aggregating.DefaultSeriesRange(time.Now())
		if dateRange != nil {
			seriesRange = *dateRange
		}

		if err := aggregating.ValidateSeriesRange(period, seriesRange); err != nil {
			logger.WithError(err).Warn("vendas: intervalo da série inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
			return
		}

		series, err := aggregator.RevenueSeries(r.Context(), period, seriesRange)
		if err != nil {
			logger.WithError(err).Warn("vendas: não foi possível montar a série")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		writeJSON(w, r, series)
	})
}

func GetCustomerProfiles(aggregator aggregating.Aggregator, defaultLimit int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r.URL.Query())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		if limit == 0 {
			limit = defaultLimit
		}

		writeJSON(w, r, aggregator.CustomerProfiles(r.Context(), limit))
	})
}
