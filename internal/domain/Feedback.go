package domain

import "time"

const UncategorizedFeedback = "uncategorized"

type Feedback struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"orderId"`
	StoreID         string     `json:"storeId"`
	StoreConsumerID string     `json:"storeConsumerId"`
	Category        string     `json:"category"`
	Rating          int        `json:"rating"`
	Comment         string     `json:"comment"`
	CreatedAt       *time.Time `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt"`
}

type Consumer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	StoreID   string     `json:"storeId"`
	CreatedAt *time.Time `json:"createdAt"`
}

type CategoryStat struct {
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

// CustomerFeedbackProfile é derivado a cada requisição a partir dos feedbacks
type CustomerFeedbackProfile struct {
	StoreConsumerID string         `json:"storeConsumerId"`
	Name            string         `json:"name,omitempty"`
	TotalFeedbacks  int            `json:"totalFeedbacks"`
	AverageRating   float64        `json:"averageRating"`
	LastFeedbackAt  *time.Time     `json:"lastFeedbackAt"`
	TopCategories   []CategoryStat `json:"topCategories"`
	SampleComments  []string       `json:"sampleComments"`
}
