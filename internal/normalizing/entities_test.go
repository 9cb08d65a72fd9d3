package normalizing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/store-insights-api/internal/domain"
)

func TestNormalizeOrder(t *testing.T) {
	order := NormalizeOrder(Record{
		"id":          1001.0,
		"status":      " Delivered ",
		"total_price": "4590",
		"created_at":  map[string]any{"_date": true, "iso": "2024-02-01T12:00:00Z"},
		"customer":    map[string]any{"name": "Ana", "phone": "+5511999990000"},
	})

	assert.Equal(t, "1001", order.ID)
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)
	assert.Equal(t, int64(4590), order.TotalPrice)
	require.NotNil(t, order.CreatedAt)
	assert.Equal(t, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), *order.CreatedAt)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.Equal(t, "+5511999990000", order.CustomerPhone)
}

func TestNormalizeOrder_MissingFields(t *testing.T) {
	order := NormalizeOrder(Record{"id": "o-1", "totalPrice": "abc"})

	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, int64(0), order.TotalPrice)
	assert.Nil(t, order.CreatedAt)
	assert.Empty(t, order.CustomerName)
}

func TestNormalizeFeedback(t *testing.T) {
	tests := []struct {
		name     string
		raw      Record
		validate func(t *testing.T, feedback domain.Feedback)
	}{
		{
			name: "Feedback completo",
			raw: Record{
				"id":                "f-1",
				"order_id":          "o-1",
				"store_id":          "s-1",
				"store_consumer_id": "c-1",
				"category":          "entrega",
				"rating":            4.0,
				"comment":           "  chegou quente  ",
				"created_at":        "2024-01-10T10:00:00Z",
			},
			validate: func(t *testing.T, feedback domain.Feedback) {
				assert.Equal(t, "c-1", feedback.StoreConsumerID)
				assert.Equal(t, "entrega", feedback.Category)
				assert.Equal(t, 4, feedback.Rating)
				assert.Equal(t, "chegou quente", feedback.Comment)
				assert.NotNil(t, feedback.CreatedAt)
				assert.Nil(t, feedback.UpdatedAt)
			},
		},
		{
			name: "Categoria ausente vira uncategorized",
			raw:  Record{"id": "f-2", "rating": 3},
			validate: func(t *testing.T, feedback domain.Feedback) {
				assert.Equal(t, domain.UncategorizedFeedback, feedback.Category)
			},
		},
		{
			name: "Nota acima do limite é limitada a 5",
			raw:  Record{"id": "f-3", "rating": "10"},
			validate: func(t *testing.T, feedback domain.Feedback) {
				assert.Equal(t, 5, feedback.Rating)
			},
		},
		{
			name: "Nota zero é limitada a 1",
			raw:  Record{"id": "f-4", "rating": 0},
			validate: func(t *testing.T, feedback domain.Feedback) {
				assert.Equal(t, 1, feedback.Rating)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NormalizeFeedback(tt.raw))
		})
	}
}

func TestNormalizeCampaign(t *testing.T) {
	campaign := NormalizeCampaign(Record{
		"id":        "c-10",
		"storeId":   "s-1",
		"status":    "RUNNING",
		"targeting": "inactive_30d",
		"payload":   `["Volte e ganhe 10%","Sentimos sua falta"]`,
		"voucher":   map[string]any{"code": "VOLTA10", "discountValue": 10},
		"media":     map[string]any{"url": "https://cdn.example.com/banner.png"},
		"limit":     "500",
	})

	assert.Equal(t, "c-10", campaign.CampaignID, "campaignId ausente deve usar o id")
	assert.Equal(t, "running", campaign.Status)
	assert.Equal(t, []string{"Volte e ganhe 10%", "Sentimos sua falta"}, campaign.Payload)
	require.NotNil(t, campaign.Voucher)
	assert.Equal(t, 10.0, campaign.Voucher.DiscountValue)
	assert.Nil(t, campaign.Media, "mídia sem type deve ser descartada")
	assert.Equal(t, 500, campaign.Limit)
	assert.Nil(t, campaign.Results)
}

func TestNormalizeCampaignResult(t *testing.T) {
	result := NormalizeCampaignResult(Record{
		"campaign_id": "camp-1",
		"send_status": map[string]any{
			"total_count":   "120",
			"success_count": 110.0,
			"error_count":   nil,
			"partialCount":  "x",
		},
		"conversion_rate":   "0.05",
		"evasion_rate":      nil,
		"orders_delivered":  6,
		"total_order_value": 250000,
		"updated_at":        "2024-03-01T00:00:00Z",
	})

	assert.Equal(t, "camp-1", result.CampaignID)
	assert.Equal(t, domain.SendStatus{TotalCount: 120, SuccessCount: 110}, result.SendStatus)
	require.NotNil(t, result.ConversionRate)
	assert.Equal(t, 0.05, *result.ConversionRate)
	assert.Nil(t, result.EvasionRate)
	assert.Equal(t, 6, result.OrdersDelivered)
	assert.Equal(t, int64(250000), result.TotalOrderValue)
	assert.Equal(t, result.UpdatedAt, result.FreshnessDate())
}

func TestNormalizeCollections_SkipMalformedElements(t *testing.T) {
	records := []any{
		map[string]any{"id": "o-1", "status": "delivered", "totalPrice": 100},
		"não é objeto",
		nil,
		42.0,
		map[string]any{"id": "o-2"},
	}

	orders := NormalizeOrders(records)

	require.Len(t, orders, 2)
	assert.Equal(t, "o-1", orders[0].ID)
	assert.Equal(t, "o-2", orders[1].ID)
}

func TestNormalizeCollections_EmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeOrders(nil))
	assert.Empty(t, NormalizeFeedbacks([]any{}))
	assert.Empty(t, NormalizeCampaigns(nil))
	assert.Empty(t, NormalizeCampaignResults(nil))
	assert.Empty(t, NormalizeSales(nil))
	assert.Empty(t, NormalizeConsumers(nil))
}

func TestNormalizeSale(t *testing.T) {
	sale := NormalizeSale(Record{"id": "v-1", "status": "PAID", "amount": "1990", "date": "2024-01-02"})

	assert.Equal(t, domain.SaleStatusPaid, sale.Status)
	assert.Equal(t, int64(1990), sale.Amount)
	require.NotNil(t, sale.Date)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *sale.Date)
}

func TestNormalizeConsumer(t *testing.T) {
	consumer := NormalizeConsumer(Record{"store_consumer_id": "c-7", "name": "Bruno"})

	assert.Equal(t, "c-7", consumer.ID)
	assert.Equal(t, "Bruno", consumer.Name)
}
