package normalizing

import (
	"github.com/vfg2006/store-insights-api/internal/domain"
)

func NormalizeOrder(raw Record) domain.Order {
	order := domain.Order{
		ID:         ParseString(Field(raw, "id")),
		Status:     ParseStatus(Field(raw, "status")),
		TotalPrice: ParseMinorUnits(Field(raw, "totalPrice")),
		CreatedAt:  ParseDate(Field(raw, "createdAt")),
		StoreID:    ParseString(Field(raw, "storeId")),
	}

	if customer, ok := Field(raw, "customer").(map[string]any); ok {
		order.CustomerName = ParseString(customer["name"])
		order.CustomerPhone = ParseString(customer["phone"])
	}

	return order
}

func NormalizeFeedback(raw Record) domain.Feedback {
	category := ParseString(Field(raw, "category"))
	if category == "" {
		category = domain.UncategorizedFeedback
	}

	return domain.Feedback{
		ID:              ParseString(Field(raw, "id")),
		OrderID:         ParseString(Field(raw, "orderId")),
		StoreID:         ParseString(Field(raw, "storeId")),
		StoreConsumerID: ParseString(Field(raw, "storeConsumerId")),
		Category:        category,
		Rating:          ClampRating(Field(raw, "rating")),
		Comment:         ParseString(Field(raw, "comment")),
		CreatedAt:       ParseDate(Field(raw, "createdAt")),
		UpdatedAt:       ParseDate(Field(raw, "updatedAt")),
	}
}

func NormalizeCampaign(raw Record) domain.Campaign {
	id := ParseString(Field(raw, "id"))
	campaignID := ParseString(Field(raw, "campaignId"))
	if campaignID == "" {
		campaignID = id
	}

	return domain.Campaign{
		ID:          id,
		CampaignID:  campaignID,
		StoreID:     ParseString(Field(raw, "storeId")),
		Status:      ParseStatus(Field(raw, "status")),
		Targeting:   ParseString(Field(raw, "targeting")),
		Type:        ParseString(Field(raw, "type")),
		CreatedAt:   ParseDate(Field(raw, "createdAt")),
		UpdatedAt:   ParseDate(Field(raw, "updatedAt")),
		ScheduledAt: ParseDate(Field(raw, "scheduledAt")),
		Payload:     ParsePayload(Field(raw, "payload")),
		Voucher:     ParseVoucher(Field(raw, "voucher")),
		Media:       ParseMedia(Field(raw, "media")),
		Limit:       ParseCount(Field(raw, "limit")),
	}
}

func NormalizeCampaignResult(raw Record) domain.CampaignResult {
	result := domain.CampaignResult{
		CampaignID:      ParseString(Field(raw, "campaignId")),
		ConversionRate:  ParseRate(Field(raw, "conversionRate")),
		EvasionRate:     ParseRate(Field(raw, "evasionRate")),
		OrdersDelivered: ParseCount(Field(raw, "ordersDelivered")),
		TotalOrderValue: ParseMinorUnits(Field(raw, "totalOrderValue")),
		Timestamp:       ParseDate(Field(raw, "timestamp")),
		EndTimestamp:    ParseDate(Field(raw, "endTimestamp")),
		UpdatedAt:       ParseDate(Field(raw, "updatedAt")),
		CreatedAt:       ParseDate(Field(raw, "createdAt")),
	}

	if sendStatus, ok := Field(raw, "sendStatus").(map[string]any); ok {
		result.SendStatus = domain.SendStatus{
			TotalCount:   ParseCount(Field(sendStatus, "totalCount")),
			SuccessCount: ParseCount(Field(sendStatus, "successCount")),
			ErrorCount:   ParseCount(Field(sendStatus, "errorCount")),
			PartialCount: ParseCount(Field(sendStatus, "partialCount")),
		}
	}

	return result
}

func NormalizeSale(raw Record) domain.Sale {
	return domain.Sale{
		ID:      ParseString(Field(raw, "id")),
		Status:  ParseStatus(Field(raw, "status")),
		Amount:  ParseMinorUnits(FirstField(raw, "amount", "totalPrice", "value")),
		Date:    ParseDate(FirstField(raw, "date", "paidAt", "createdAt")),
		StoreID: ParseString(Field(raw, "storeId")),
	}
}

func NormalizeConsumer(raw Record) domain.Consumer {
	return domain.Consumer{
		ID:        ParseString(FirstField(raw, "id", "storeConsumerId")),
		Name:      ParseString(Field(raw, "name")),
		Phone:     ParseString(Field(raw, "phone")),
		StoreID:   ParseString(Field(raw, "storeId")),
		CreatedAt: ParseDate(Field(raw, "createdAt")),
	}
}

// normalizeAll ignora elementos que não são objetos JSON em vez de abortar a coleção
func normalizeAll[T any](records []any, normalize func(Record) T) []T {
	out := make([]T, 0, len(records))
	for _, record := range records {
		raw, ok := record.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, normalize(raw))
	}
	return out
}

func NormalizeOrders(records []any) []domain.Order {
	return normalizeAll(records, NormalizeOrder)
}

func NormalizeFeedbacks(records []any) []domain.Feedback {
	return normalizeAll(records, NormalizeFeedback)
}

func NormalizeCampaigns(records []any) []domain.Campaign {
	return normalizeAll(records, NormalizeCampaign)
}

func NormalizeCampaignResults(records []any) []domain.CampaignResult {
	return normalizeAll(records, NormalizeCampaignResult)
}

func NormalizeSales(records []any) []domain.Sale {
	return normalizeAll(records, NormalizeSale)
}

func NormalizeConsumers(records []any) []domain.Consumer {
	return normalizeAll(records, NormalizeConsumer)
}
