package handler

import (
	"fmt"
	"net/http"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/store-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/store-insights-api/pkg/apiErrors"
	"github.com/vfg2006/store-insights-api/pkg/log"
)

// ExportReport devolve a planilha XLSX com resumo, receita, campanhas e clientes
func ExportReport(exporter reporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		dateRange, code, err := parseDateRange(query)
		if err != nil {
			apiErrors.WriteError(w, code, err.Error(), nil)
			return
		}

		period := domain.PeriodDaily
		if raw := query.Get("period"); raw != "" {
			period, err = aggregating.ParsePeriod(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
		}

		if dateRange != nil {
			if err := aggregating.ValidateSeriesRange(period, *dateRange); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
				return
			}
		}

		report, err := exporter.Export(r.Context(), reporting.ExportFilters{Range: dateRange, Period: period})
		if err != nil {
			logger.WithError(err).Error("relatório: erro ao exportar planilha")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar relatório", nil)
			return
		}

		logger.WithFields(log.Fields{
			"file_name": report.FileName,
			"bytes":     len(report.Content),
		}).Info("relatório: planilha gerada")

		w.Header().Set("Content-Type", reporting.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
		if _, err := w.Write(report.Content); err != nil {
			logger.WithError(err).Warn("relatório: erro ao enviar planilha")
		}
	})
}
