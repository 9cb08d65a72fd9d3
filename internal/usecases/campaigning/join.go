package campaigning

import (
	"sort"
	"time"

	"github.com/vfg2006/store-insights-api/internal/domain"
)

// JoinCampaignResults anexa a cada campanha o resultado mais recente com o mesmo campaignId.
// Em caso de empate vence o resultado encontrado por último. Campanhas sem resultado ficam com Results nil.
func JoinCampaignResults(campaigns []domain.Campaign, results []domain.CampaignResult) []domain.Campaign {
	freshest := make(map[string]*domain.CampaignResult, len(results))

	for i := range results {
		incoming := &results[i]
		if incoming.CampaignID == "" {
			continue
		}

		stored, ok := freshest[incoming.CampaignID]
		if !ok || !freshnessOf(incoming).Before(freshnessOf(stored)) {
			freshest[incoming.CampaignID] = incoming
		}
	}

	joined := make([]domain.Campaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		if result, ok := freshest[campaign.CampaignID]; ok {
			attached := *result
			campaign.Results = &attached
		} else {
			campaign.Results = nil
		}
		joined = append(joined, campaign)
	}

	return joined
}

// Resultado sem data conta como epoch 0
func freshnessOf(result *domain.CampaignResult) time.Time {
	if date := result.FreshnessDate(); date != nil {
		return *date
	}
	return time.Unix(0, 0).UTC()
}

// Summarize projeta as campanhas já unidas no formato consumido pelo ranking de insights
func Summarize(campaigns []domain.Campaign) []domain.CampaignSummary {
	summaries := make([]domain.CampaignSummary, 0, len(campaigns))

	for _, campaign := range campaigns {
		summary := domain.CampaignSummary{
			CampaignID: campaign.CampaignID,
			Targeting:  campaign.Targeting,
			Status:     campaign.Status,
		}

		if result := campaign.Results; result != nil {
			summary.TotalSent = result.SendStatus.TotalCount
			summary.Success = result.SendStatus.SuccessCount
			summary.Errors = result.SendStatus.ErrorCount
			if result.ConversionRate != nil {
				summary.ConversionRate = *result.ConversionRate
			}
			summary.OrdersDelivered = result.OrdersDelivered
			summary.TotalOrderValue = result.TotalOrderValue
			summary.UpdatedAt = result.FreshnessDate()
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

// SortSummaries ordena por CampaignID mantendo a ordem original entre ids iguais,
// para que a chave de cache não dependa da ordem dos arquivos
func SortSummaries(summaries []domain.CampaignSummary) []domain.CampaignSummary {
	sorted := make([]domain.CampaignSummary, len(summaries))
	copy(sorted, summaries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CampaignID < sorted[j].CampaignID
	})

	return sorted
}
