package ranking

import (
	"fmt"
	"time"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

const (
	RevenueDropMin  = 0.10
	RevenueDropHigh = 0.20
	revenueWeek     = 7 * 24 * time.Hour
)

// RevenueDropRules é o conjunto de regras avaliado sobre os pedidos brutos
func RevenueDropRules() []Rule {
	return []Rule{weeklyRevenueDropRule{}}
}

// RankRevenue compara a receita entregue dos últimos 7 dias com os 7 dias anteriores
func RankRevenue(orders []domain.Order, now time.Time) domain.Insight {
	return Rank(RevenueDropRules(), RankInput{Orders: orders, Now: now})
}

type weeklyRevenueDropRule struct{}

func (weeklyRevenueDropRule) Name() string { return "weekly-revenue-drop" }

func (r weeklyRevenueDropRule) Evaluate(input RankInput) *domain.Insight {
	currentStart := input.Now.Add(-revenueWeek)
	previousStart := currentStart.Add(-revenueWeek)

	var current, previous int64
	for _, order := range input.Orders {
		if order.Status != domain.OrderStatusDelivered || order.CreatedAt == nil {
			continue
		}

		createdAt := *order.CreatedAt
		switch {
		case createdAt.After(currentStart) && !createdAt.After(input.Now):
			current += order.TotalPrice
		case createdAt.After(previousStart) && !createdAt.After(currentStart):
			previous += order.TotalPrice
		}
	}

	if previous <= 0 {
		return nil
	}

	drop := float64(previous-current) / float64(previous)
	if drop < RevenueDropMin {
		return nil
	}

	severity := domain.SeverityMedium
	if drop > RevenueDropHigh {
		severity = domain.SeverityHigh
	}

	return &domain.Insight{
		ID:             r.Name(),
		Title:          "Queda de receita na semana",
		Metric:         "-" + utils.FormatPercent(drop),
		Summary:        "A receita de pedidos entregues nos últimos 7 dias caiu em relação à semana anterior.",
		Recommendation: "Dispare uma campanha de reativação para clientes recentes e revise cancelamentos da semana.",
		Evidence: fmt.Sprintf("%s nos últimos 7 dias contra %s na semana anterior.",
			utils.FormatCurrency(current), utils.FormatCurrency(previous)),
		Severity: severity,
		Score:    drop,
	}
}
