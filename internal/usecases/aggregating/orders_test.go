package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/store-insights-api/internal/domain"
)

func day(value string) *time.Time {
	date, _ := time.Parse("2006-01-02", value)
	return &date
}

func TestVariation(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		expected int
	}{
		{name: "Sem valor anterior", current: 100, previous: 0, expected: 100},
		{name: "Ambos zerados", current: 0, previous: 0, expected: 0},
		{name: "Aumento de 50%", current: 150, previous: 100, expected: 50},
		{name: "Queda de 50%", current: 50, previous: 100, expected: -50},
		{name: "Arredonda para o inteiro mais próximo", current: 2, previous: 3, expected: -33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Variation(tt.current, tt.previous))
		})
	}
}

func TestOrderStatsFor(t *testing.T) {
	orders := []domain.Order{
		{ID: "1", Status: "delivered", TotalPrice: 1000, CreatedAt: day("2024-05-08")},
		{ID: "2", Status: "delivered", TotalPrice: 3000, CreatedAt: day("2024-05-10")},
		{ID: "3", Status: "cancelled", TotalPrice: 500, CreatedAt: day("2024-05-09")},
		{ID: "4", Status: "confirmed", TotalPrice: 700, CreatedAt: day("2024-05-10")},
		{ID: "5", Status: "delivered", TotalPrice: 2000, CreatedAt: day("2024-05-05")},
		{ID: "6", Status: "delivered", TotalPrice: 9999},
	}

	t.Run("Com intervalo compara com a janela anterior", func(t *testing.T) {
		dateRange := &domain.DateRange{Start: *day("2024-05-08"), End: *day("2024-05-10")}

		stats := OrderStatsFor(orders, dateRange)

		assert.Equal(t, 4, stats.Count)
		assert.Equal(t, int64(4000), stats.Revenue)
		assert.Equal(t, 0, stats.PreviousCount, "janela anterior é [06/05, 08/05)")
		assert.Equal(t, int64(0), stats.PreviousRevenue)
		assert.Equal(t, 100, stats.CountVariation)
		assert.Equal(t, 100, stats.RevenueVariation)
		assert.Equal(t, 0.25, stats.CancellationRate)
		assert.Equal(t, int64(2000), stats.AverageTicket)
		assert.Equal(t, dateRange, stats.Range)
	})

	t.Run("Janela anterior inclui o início e exclui o fim", func(t *testing.T) {
		dateRange := &domain.DateRange{Start: *day("2024-05-08"), End: *day("2024-05-11")}

		stats := OrderStatsFor(orders, dateRange)

		assert.Equal(t, 1, stats.PreviousCount)
		assert.Equal(t, int64(2000), stats.PreviousRevenue)
		assert.Equal(t, 100, stats.RevenueVariation)
	})

	t.Run("Sem intervalo usa o conjunto completo nas duas janelas", func(t *testing.T) {
		stats := OrderStatsFor(orders, nil)

		assert.Equal(t, 6, stats.Count)
		assert.Equal(t, stats.Count, stats.PreviousCount)
		assert.Equal(t, int64(15999), stats.Revenue)
		assert.Equal(t, 0, stats.CountVariation)
		assert.Equal(t, 0, stats.RevenueVariation)
	})

	t.Run("Lista vazia gera métricas zeradas", func(t *testing.T) {
		stats := OrderStatsFor([]domain.Order{}, &domain.DateRange{Start: *day("2024-05-01"), End: *day("2024-05-02")})

		assert.Equal(t, 0, stats.Count)
		assert.Equal(t, int64(0), stats.Revenue)
		assert.Equal(t, 0.0, stats.CancellationRate)
		assert.Equal(t, int64(0), stats.AverageTicket)
	})
}
