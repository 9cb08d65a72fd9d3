package handler

import (
	"net/http"

	"github.com/vfg2006/store-insights-api/internal/usecases/campaigning"
)

// ListCampaigns retorna as campanhas com o resultado mais recente de cada uma
func ListCampaigns(service campaigning.CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, service.ListCampaigns(r.Context()))
	})
}
