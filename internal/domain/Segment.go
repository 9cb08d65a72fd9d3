package domain

type SegmentPriority string

const (
	SegmentPriorityHigh   SegmentPriority = "high"
	SegmentPriorityMedium SegmentPriority = "medium"
)

// Segment é uma coorte de clientes agrupada pelo comportamento nos feedbacks
type Segment struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Coverage    string          `json:"coverage"`
	Signals     []string        `json:"signals"`
	Actions     []string        `json:"actions"`
	Priority    SegmentPriority `json:"priority"`
	CustomerIDs []string        `json:"customerIds"`
}
