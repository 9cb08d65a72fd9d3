package domain

import "time"

const SaleStatusPaid = "paid"

type Sale struct {
	ID      string     `json:"id"`
	Status  string     `json:"status"`
	Amount  int64      `json:"amount"`
	Date    *time.Time `json:"date"`
	StoreID string     `json:"storeId"`
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// SalesPoint é um bucket da série de receita
type SalesPoint struct {
	Period string `json:"period"` // Início do bucket no formato YYYY-MM-DD
	Label  string `json:"label"`
	Total  int64  `json:"total"`
}
