package handler

import (
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/pkg/apiErrors"
	"github.com/vfg2006/store-insights-api/pkg/log"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseDateRange lê start_date e end_date. Sem nenhuma das duas retorna nil; end_date cobre o dia inteiro.
// Em caso de erro o código da API também é retornado.
func parseDateRange(query url.Values) (*domain.DateRange, string, error) {
	rawStart, rawEnd := query.Get("start_date"), query.Get("end_date")
	if rawStart == "" && rawEnd == "" {
		return nil, "", nil
	}
	if rawStart == "" || rawEnd == "" {
		return nil, apiErrors.ErrMissingRequiredData, errors.New("start_date e end_date devem ser informados juntos")
	}

	start, err := utils.ParseDate(rawStart)
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, errors.Wrap(err, "start_date inválida")
	}

	end, err := utils.ParseDate(rawEnd)
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, errors.Wrap(err, "end_date inválida")
	}

	if start.After(*end) {
		return nil, apiErrors.ErrInvalidDateRange, errors.New("start_date não pode ser maior que end_date")
	}

	return &domain.DateRange{Start: start.UTC(), End: utils.EndOfDay(*end)}, "", nil
}

// parseLimit retorna 0 quando o parâmetro não foi informado
func parseLimit(query url.Values) (int, error) {
	raw := query.Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrap(err, "limit inválido")
	}
	if limit < 0 {
		return 0, errors.New("limit não pode ser negativo")
	}

	return limit, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("http: falha ao serializar resposta")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
	}
}
