package domain

import (
	"encoding/json"
	"time"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DateRange é um intervalo fechado [Start, End]
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration retorna o tamanho do intervalo
func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains considera as duas extremidades do intervalo
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

type Insight struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Metric         string   `json:"metric"`
	Summary        string   `json:"summary"`
	Recommendation string   `json:"recommendation"`
	Evidence       string   `json:"evidence"`
	Severity       Severity `json:"severity"`
	Score          float64  `json:"score"`
}

type InsightSource string

const (
	InsightSourceLLM       InsightSource = "llm"
	InsightSourceHeuristic InsightSource = "heuristic"
	InsightSourceCache     InsightSource = "cache"
)

// InsightResponse é a resposta das rotas de insights
type InsightResponse struct {
	Insight     Insight       `json:"insight"`
	Candidates  []Insight     `json:"candidates,omitempty"`
	Source      InsightSource `json:"source"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

type SegmentsResponse struct {
	Segments    []Segment     `json:"segments"`
	Source      InsightSource `json:"source"`
	Profiles    int           `json:"profiles"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

type SnapshotKind string

const (
	SnapshotKindCampaign SnapshotKind = "campaign"
	SnapshotKindRevenue  SnapshotKind = "revenue"
	SnapshotKindSegments SnapshotKind = "segments"
)

// InsightSnapshot representa um insight gerado e armazenado no banco
type InsightSnapshot struct {
	ID        string          `json:"id"`
	Kind      SnapshotKind    `json:"kind"`
	CacheKey  string          `json:"cache_key"`
	Source    InsightSource   `json:"source"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
