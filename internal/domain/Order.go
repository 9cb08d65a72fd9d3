package domain

import "time"

const (
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
	OrderStatusRejected  = "rejected"
)

// CancelledOrderStatuses são os status contabilizados na taxa de cancelamento
var CancelledOrderStatuses = []string{
	OrderStatusCancelled,
	OrderStatusRefunded,
	OrderStatusRejected,
}

type Order struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	TotalPrice    int64      `json:"totalPrice"`
	CreatedAt     *time.Time `json:"createdAt"`
	StoreID       string     `json:"storeId"`
	CustomerName  string     `json:"customerName,omitempty"`
	CustomerPhone string     `json:"customerPhone,omitempty"`
}

// OrderStats contém as métricas de pedidos de um período e do período anterior equivalente
type OrderStats struct {
	Count            int        `json:"count"`
	Revenue          int64      `json:"revenue"`
	PreviousCount    int        `json:"previousCount"`
	PreviousRevenue  int64      `json:"previousRevenue"`
	CountVariation   int        `json:"countVariation"`
	RevenueVariation int        `json:"revenueVariation"`
	CancellationRate float64    `json:"cancellationRate"`
	AverageTicket    int64      `json:"averageTicket"`
	Range            *DateRange `json:"range,omitempty"`
}
