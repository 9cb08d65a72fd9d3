// Package aggregating calcula estatísticas por janela de tempo, séries de receita e perfis de feedback
package aggregating

import (
	"math"
	"slices"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

// Variation retorna a variação percentual inteira entre o valor atual e o anterior
func Variation(current, previous int64) int {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}

	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// DeliveredRevenue soma o totalPrice apenas dos pedidos entregues
func DeliveredRevenue(orders []domain.Order) int64 {
	var revenue int64
	for _, order := range orders {
		if order.Status == domain.OrderStatusDelivered {
			revenue += order.TotalPrice
		}
	}
	return revenue
}

// OrdersInRange filtra os pedidos com createdAt dentro do intervalo fechado. Pedidos sem data ficam de fora.
func OrdersInRange(orders []domain.Order, dateRange domain.DateRange) []domain.Order {
	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.CreatedAt != nil && dateRange.Contains(*order.CreatedAt) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// Janela anterior de mesma duração: [start - duração, start)
func ordersInPreviousWindow(orders []domain.Order, dateRange domain.DateRange) []domain.Order {
	previousStart := dateRange.Start.Add(-dateRange.Duration())

	filtered := make([]domain.Order, 0)
	for _, order := range orders {
		if order.CreatedAt == nil {
			continue
		}
		createdAt := *order.CreatedAt
		if !createdAt.Before(previousStart) && createdAt.Before(dateRange.Start) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// OrderStatsFor calcula as métricas de pedidos do intervalo e do período anterior equivalente.
// Sem intervalo, as duas janelas são o conjunto completo e as variações ficam em zero.
func OrderStatsFor(orders []domain.Order, dateRange *domain.DateRange) domain.OrderStats {
	current := orders
	previous := orders

	if dateRange != nil {
		current = OrdersInRange(orders, *dateRange)
		previous = ordersInPreviousWindow(orders, *dateRange)
	}

	stats := domain.OrderStats{
		Count:           len(current),
		Revenue:         DeliveredRevenue(current),
		PreviousCount:   len(previous),
		PreviousRevenue: DeliveredRevenue(previous),
		Range:           dateRange,
	}

	stats.CountVariation = Variation(int64(stats.Count), int64(stats.PreviousCount))
	stats.RevenueVariation = Variation(stats.Revenue, stats.PreviousRevenue)
	stats.CancellationRate = cancellationRate(current)
	stats.AverageTicket = averageTicket(current, stats.Revenue)

	return stats
}

func cancellationRate(orders []domain.Order) float64 {
	if len(orders) == 0 {
		return 0
	}

	cancelled := 0
	for _, order := range orders {
		if slices.Contains(domain.CancelledOrderStatuses, order.Status) {
			cancelled++
		}
	}

	return utils.RoundWithTwoDecimalPlace(float64(cancelled) / float64(len(orders)))
}

// Ticket médio dos pedidos entregues, em centavos
func averageTicket(orders []domain.Order, revenue int64) int64 {
	delivered := 0
	for _, order := range orders {
		if order.Status == domain.OrderStatusDelivered {
			delivered++
		}
	}

	if delivered == 0 {
		return 0
	}

	return int64(math.Round(float64(revenue) / float64(delivered)))
}
