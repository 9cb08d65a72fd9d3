package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-insights-api/internal/scheduler"
	"github.com/vfg2006/store-insights-api/pkg/apiErrors"
)

// WarmupTrigger é o agendador de aquecimento exposto às rotas de cron
type WarmupTrigger interface {
	TriggerManualSync(syncType scheduler.SyncType) bool
	GetStatus() map[string]any
}

// RunCronJob executa manualmente o aquecimento de insights
func RunCronJob(warmup WarmupTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		syncType, err := scheduler.ParseSyncType(cronType)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: insights, segments, all", nil)
			return
		}

		if !warmup.TriggerManualSync(syncType) {
			apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Aquecimento de insights já em andamento", nil)
			return
		}

		writeJSON(w, r, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    syncType,
		})
	}
}

// GetCronStatus retorna o status do aquecimento de insights
func GetCronStatus(warmup WarmupTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		writeJSON(w, r, map[string]any{
			"insight-warmup": warmup.GetStatus(),
		})
	}
}
