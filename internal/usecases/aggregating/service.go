package aggregating

import (
	"context"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/usecases/dataset"
)

type Aggregator interface {
	OrderStats(ctx context.Context, dateRange *domain.DateRange) domain.OrderStats
	RevenueSeries(ctx context.Context, period domain.Period, dateRange domain.DateRange) ([]domain.SalesPoint, error)
	CustomerProfiles(ctx context.Context, limit int) []domain.CustomerFeedbackProfile
}

type Service struct {
	reader *dataset.Reader
}

func NewService(reader *dataset.Reader) Aggregator {
	return &Service{reader: reader}
}

func (s *Service) OrderStats(ctx context.Context, dateRange *domain.DateRange) domain.OrderStats {
	return OrderStatsFor(s.reader.Orders(ctx), dateRange)
}

func (s *Service) RevenueSeries(ctx context.Context, period domain.Period, dateRange domain.DateRange) ([]domain.SalesPoint, error) {
	return RevenueSeries(s.reader.Sales(ctx), period, dateRange)
}

func (s *Service) CustomerProfiles(ctx context.Context, limit int) []domain.CustomerFeedbackProfile {
	return BuildCustomerFeedbackProfiles(s.reader.Feedbacks(ctx), s.reader.Consumers(ctx), limit)
}
