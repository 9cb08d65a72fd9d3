package aggregating

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/vfg2006/store-insights-api/internal/domain"
)

var orderStatuses = []string{"delivered", "confirmed", "in_transit", "rejected", "cancelled", "refunded"}

var baseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func genOrder() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(orderStatuses)-1),
		gen.Int64Range(0, 1_000_000),
		gen.IntRange(0, 90),
	).Map(func(values []interface{}) domain.Order {
		createdAt := baseDate.AddDate(0, 0, values[2].(int))
		return domain.Order{
			Status:     orderStatuses[values[0].(int)],
			TotalPrice: values[1].(int64),
			CreatedAt:  &createdAt,
		}
	})
}

func TestOrderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("pedidos não entregues nunca entram na receita", prop.ForAll(
		func(orders []domain.Order) bool {
			delivered := make([]domain.Order, 0, len(orders))
			for _, order := range orders {
				if order.Status == domain.OrderStatusDelivered {
					delivered = append(delivered, order)
				}
			}
			return DeliveredRevenue(orders) == DeliveredRevenue(delivered)
		},
		gen.SliceOf(genOrder()),
	))

	properties.Property("contagem não diminui quando o intervalo aumenta", prop.ForAll(
		func(orders []domain.Order, start, length, extra int) bool {
			narrow := domain.DateRange{
				Start: baseDate.AddDate(0, 0, start),
				End:   baseDate.AddDate(0, 0, start+length),
			}
			wide := domain.DateRange{
				Start: narrow.Start.AddDate(0, 0, -extra),
				End:   narrow.End.AddDate(0, 0, extra),
			}
			return OrderStatsFor(orders, &wide).Count >= OrderStatsFor(orders, &narrow).Count
		},
		gen.SliceOf(genOrder()),
		gen.IntRange(0, 90),
		gen.IntRange(0, 30),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}
