package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/store-insights-api/internal/domain"
)

type fixedRule struct {
	name    string
	insight *domain.Insight
}

func (r fixedRule) Name() string                       { return r.name }
func (r fixedRule) Evaluate(RankInput) *domain.Insight { return r.insight }

func TestRank(t *testing.T) {
	t.Run("Campeã de receita vence o cenário", func(t *testing.T) {
		input := RankInput{
			Summaries: []domain.CampaignSummary{
				{CampaignID: "X", TotalOrderValue: 500000, ConversionRate: 0.06, TotalSent: 100, Status: "finished"},
				{CampaignID: "Y", TotalOrderValue: 20000, ConversionRate: 0.03, TotalSent: 50, Status: "finished"},
			},
			Now: now,
		}

		insight := Rank(DefaultCampaignRules(), input)

		assert.Equal(t, "revenue-winner", insight.ID)
		assert.Equal(t, domain.SeverityHigh, insight.Severity)
	})

	t.Run("Maior pontuação vence independente da ordem", func(t *testing.T) {
		rules := []Rule{
			fixedRule{name: "a", insight: &domain.Insight{ID: "a", Score: 0.2}},
			fixedRule{name: "b", insight: &domain.Insight{ID: "b", Score: 0.9}},
			fixedRule{name: "c"},
		}

		assert.Equal(t, "b", Rank(rules, RankInput{}).ID)
	})

	t.Run("Empate fica com a primeira regra", func(t *testing.T) {
		rules := []Rule{
			fixedRule{name: "a", insight: &domain.Insight{ID: "a", Score: 0.5}},
			fixedRule{name: "b", insight: &domain.Insight{ID: "b", Score: 0.5}},
		}

		assert.Equal(t, "a", Rank(rules, RankInput{}).ID)
	})

	t.Run("Campeã de receita no limite empata com conversão zerada e vence pela ordem", func(t *testing.T) {
		input := RankInput{
			Summaries: []domain.CampaignSummary{
				{CampaignID: "X", TotalOrderValue: 500000, ConversionRate: RevenueWinnerMinConversion, TotalSent: 100, Status: "finished"},
				{CampaignID: "Y", TotalOrderValue: 0, ConversionRate: 0, TotalSent: 100, Status: "finished"},
			},
			Now: now,
		}

		candidates := Evaluate(DefaultCampaignRules(), input)
		require.Len(t, candidates, 2)
		assert.Equal(t, "revenue-winner", candidates[0].ID)
		assert.Equal(t, "low-conversion", candidates[1].ID)
		assert.Equal(t, 1.0, candidates[0].Score)
		assert.Equal(t, candidates[0].Score, candidates[1].Score)

		assert.Equal(t, "revenue-winner", Rank(DefaultCampaignRules(), input).ID)
	})

	t.Run("Sem candidatos usa o insight padrão", func(t *testing.T) {
		insight := Rank(DefaultCampaignRules(), RankInput{Now: now})

		assert.Equal(t, FallbackInsightID, insight.ID)
		assert.Equal(t, domain.SeverityLow, insight.Severity)
		assert.Equal(t, 0.0, insight.Score)
	})

	t.Run("Determinístico para a mesma entrada", func(t *testing.T) {
		input := RankInput{
			Summaries: []domain.CampaignSummary{{CampaignID: "A", TotalSent: 200, ConversionRate: 0.01}},
			Now:       now,
		}

		assert.Equal(t, Rank(DefaultCampaignRules(), input), Rank(DefaultCampaignRules(), input))
	})
}

func TestEvaluate(t *testing.T) {
	candidates := Evaluate(DefaultCampaignRules(), RankInput{
		Summaries: []domain.CampaignSummary{
			{CampaignID: "A", TotalSent: 100, ConversionRate: 0.01},
			{CampaignID: "B", Status: "running"},
		},
		Now: now,
	})

	require.Len(t, candidates, 2)
	assert.Equal(t, "low-conversion", candidates[0].ID)
	assert.Equal(t, "stalled-campaign", candidates[1].ID)
}

func TestRankRevenue(t *testing.T) {
	tests := []struct {
		name             string
		current          int64
		previous         int64
		expectedID       string
		expectedSeverity domain.Severity
	}{
		{name: "Queda de 25% é severidade alta", current: 750, previous: 1000, expectedID: "weekly-revenue-drop", expectedSeverity: domain.SeverityHigh},
		{name: "Queda de 12% é severidade média", current: 880, previous: 1000, expectedID: "weekly-revenue-drop", expectedSeverity: domain.SeverityMedium},
		{name: "Queda de 10% ainda gera insight", current: 900, previous: 1000, expectedID: "weekly-revenue-drop", expectedSeverity: domain.SeverityMedium},
		{name: "Queda de 5% não gera insight", current: 950, previous: 1000, expectedID: FallbackInsightID, expectedSeverity: domain.SeverityLow},
		{name: "Crescimento não gera insight", current: 1500, previous: 1000, expectedID: FallbackInsightID, expectedSeverity: domain.SeverityLow},
		{name: "Sem receita anterior", current: 100, previous: 0, expectedID: FallbackInsightID, expectedSeverity: domain.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := []domain.Order{
				deliveredAt(now.Add(-2*24*time.Hour), tt.current),
				deliveredAt(now.Add(-10*24*time.Hour), tt.previous),
				{Status: "cancelled", TotalPrice: 99999, CreatedAt: &now},
			}

			insight := RankRevenue(orders, now)

			assert.Equal(t, tt.expectedID, insight.ID)
			assert.Equal(t, tt.expectedSeverity, insight.Severity)
		})
	}

	t.Run("Queda maior pontua mais", func(t *testing.T) {
		big := RankRevenue([]domain.Order{deliveredAt(now.Add(-24*time.Hour), 750), deliveredAt(now.Add(-8*24*time.Hour), 1000)}, now)
		small := RankRevenue([]domain.Order{deliveredAt(now.Add(-24*time.Hour), 880), deliveredAt(now.Add(-8*24*time.Hour), 1000)}, now)

		assert.Greater(t, big.Score, small.Score)
	})
}
