package domain

import "time"

// Campaign representa uma campanha de mensagens já normalizada
type Campaign struct {
	ID          string          `json:"id"`
	CampaignID  string          `json:"campaignId"`
	StoreID     string          `json:"storeId"`
	Status      string          `json:"status"`
	Targeting   string          `json:"targeting"`
	Type        string          `json:"type"`
	CreatedAt   *time.Time      `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt"`
	ScheduledAt *time.Time      `json:"scheduledAt"`
	Payload     []string        `json:"payload"`
	Voucher     *Voucher        `json:"voucher"`
	Media       *Media          `json:"media"`
	Limit       int             `json:"limit"`
	Results     *CampaignResult `json:"results"`
}

// Voucher é sempre nil ou totalmente preenchido
type Voucher struct {
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	MinOrderValue int64   `json:"minOrderValue"`
	MaxUses       int     `json:"maxUses"`
	Active        bool    `json:"active"`
	ExpiresAt     string  `json:"expiresAt"`
}

type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type SendStatus struct {
	TotalCount   int `json:"totalCount"`
	SuccessCount int `json:"successCount"`
	ErrorCount   int `json:"errorCount"`
	PartialCount int `json:"partialCount"`
}

// CampaignResult representa o resultado medido de uma campanha
type CampaignResult struct {
	CampaignID      string     `json:"campaignId"`
	SendStatus      SendStatus `json:"sendStatus"`
	ConversionRate  *float64   `json:"conversionRate"`
	EvasionRate     *float64   `json:"evasionRate"`
	OrdersDelivered int        `json:"ordersDelivered"`
	TotalOrderValue int64      `json:"totalOrderValue"`
	Timestamp       *time.Time `json:"timestamp"`
	EndTimestamp    *time.Time `json:"endTimestamp"`
	UpdatedAt       *time.Time `json:"updatedAt"`
	CreatedAt       *time.Time `json:"createdAt"`
}

// FreshnessDate retorna a data usada para escolher o resultado mais recente de uma campanha:
// updatedAt, endTimestamp, timestamp e createdAt, nesta ordem
func (r *CampaignResult) FreshnessDate() *time.Time {
	if r == nil {
		return nil
	}

	for _, date := range []*time.Time{r.UpdatedAt, r.EndTimestamp, r.Timestamp, r.CreatedAt} {
		if date != nil {
			return date
		}
	}

	return nil
}

// CampaignSummary é a projeção de uma campanha com seu resultado usada pelo ranking de insights
type CampaignSummary struct {
	CampaignID      string     `json:"campaignId"`
	Targeting       string     `json:"targeting"`
	Status          string     `json:"status"`
	TotalSent       int        `json:"totalSent"`
	Success         int        `json:"success"`
	Errors          int        `json:"errors"`
	ConversionRate  float64    `json:"conversionRate"`
	OrdersDelivered int        `json:"ordersDelivered"`
	TotalOrderValue int64      `json:"totalOrderValue"`
	UpdatedAt       *time.Time `json:"updatedAt"`
}
