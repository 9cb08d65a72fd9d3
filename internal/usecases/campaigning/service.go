package campaigning

import (
	"context"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/usecases/dataset"
)

type CampaignService interface {
	ListCampaigns(ctx context.Context) []domain.Campaign
	Summaries(ctx context.Context) []domain.CampaignSummary
}

type Service struct {
	reader *dataset.Reader
}

func NewService(reader *dataset.Reader) CampaignService {
	return &Service{reader: reader}
}

func (s *Service) ListCampaigns(ctx context.Context) []domain.Campaign {
	return JoinCampaignResults(s.reader.Campaigns(ctx), s.reader.CampaignResults(ctx))
}

// Summaries retorna os resumos já ordenados por CampaignID
func (s *Service) Summaries(ctx context.Context) []domain.CampaignSummary {
	return SortSummaries(Summarize(s.ListCampaigns(ctx)))
}
