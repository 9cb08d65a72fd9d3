// Package dataset carrega as coleções brutas e entrega registros normalizados
package dataset

import (
	"context"

	"github.com/vfg2006/store-insights-api/infrastructure/seed"
	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/normalizing"
	"github.com/vfg2006/store-insights-api/pkg/log"
)

// Reader nunca falha: uma coleção indisponível é registrada no log e tratada como vazia
type Reader struct {
	loader seed.Loader
}

func NewReader(loader seed.Loader) *Reader {
	return &Reader{loader: loader}
}

func (r *Reader) load(ctx context.Context, collection seed.Collection) []any {
	records, err := r.loader.Load(ctx, collection)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("collection", string(collection)).
			Warn("dataset: coleção indisponível, usando lista vazia")
		return []any{}
	}
	return records
}

func (r *Reader) Orders(ctx context.Context) []domain.Order {
	return normalizing.NormalizeOrders(r.load(ctx, seed.Orders))
}

func (r *Reader) Feedbacks(ctx context.Context) []domain.Feedback {
	return normalizing.NormalizeFeedbacks(r.load(ctx, seed.Feedbacks))
}

func (r *Reader) Campaigns(ctx context.Context) []domain.Campaign {
	return normalizing.NormalizeCampaigns(r.load(ctx, seed.Campaigns))
}

func (r *Reader) CampaignResults(ctx context.Context) []domain.CampaignResult {
	return normalizing.NormalizeCampaignResults(r.load(ctx, seed.CampaignResults))
}

func (r *Reader) Sales(ctx context.Context) []domain.Sale {
	return normalizing.NormalizeSales(r.load(ctx, seed.Sales))
}

func (r *Reader) Consumers(ctx context.Context) []domain.Consumer {
	return normalizing.NormalizeConsumers(r.load(ctx, seed.Consumers))
}
