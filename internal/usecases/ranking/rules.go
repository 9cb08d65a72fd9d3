// Package ranking avalia regras heurísticas sobre as métricas agregadas e escolhe o insight de maior pontuação
package ranking

import (
	"fmt"
	"slices"
	"time"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

const (
	RevenueWinnerMinConversion = 0.04
	RevenueWinnerHighValue     = 400000
	LowConversionMinSent       = 80
	LowConversionMaxRate       = 0.02
	WeekdayGapWindowDays       = 30
	WeekdayGapMinRatio         = 1.4
	weekdayGapScoreWeight      = 0.5
	stalledCampaignScore       = 0.5
)

var stalledStatuses = []string{"running", "scheduled", "processing"}

var weekdayNames = [...]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"}

// RankInput reúne os dados avaliados pelas regras. Now define o fim das janelas de tempo.
type RankInput struct {
	Summaries []domain.CampaignSummary
	Orders    []domain.Order
	Now       time.Time
}

// Rule produz no máximo um candidato pontuado
type Rule interface {
	Name() string
	Evaluate(input RankInput) *domain.Insight
}

// DefaultCampaignRules retorna as regras de campanha na ordem de prioridade usada para desempate
func DefaultCampaignRules() []Rule {
	return []Rule{
		revenueWinnerRule{},
		lowConversionRule{},
		stalledCampaignRule{},
		weekdayGapRule{},
	}
}

type revenueWinnerRule struct{}

func (revenueWinnerRule) Name() string { return "revenue-winner" }

func (r revenueWinnerRule) Evaluate(input RankInput) *domain.Insight {
	var winner *domain.CampaignSummary
	for i := range input.Summaries {
		summary := &input.Summaries[i]
		if summary.TotalOrderValue <= 0 {
			continue
		}
		if winner == nil || summary.TotalOrderValue > winner.TotalOrderValue {
			winner = summary
		}
	}

	if winner == nil || winner.ConversionRate < RevenueWinnerMinConversion {
		return nil
	}

	severity := domain.SeverityMedium
	if winner.TotalOrderValue > RevenueWinnerHighValue {
		severity = domain.SeverityHigh
	}

	return &domain.Insight{
		ID:             r.Name(),
		Title:          "Campanha campeã de receita",
		Metric:         utils.FormatCurrency(winner.TotalOrderValue),
		Summary:        fmt.Sprintf("A campanha %s gerou a maior receita entre as campanhas analisadas.", winner.CampaignID),
		Recommendation: fmt.Sprintf("Replique a mensagem e o público %q em novas campanhas.", winner.Targeting),
		Evidence: fmt.Sprintf("%d pedidos entregues com conversão de %s.",
			winner.OrdersDelivered, utils.FormatPercent(winner.ConversionRate)),
		Severity: severity,
		Score:    winner.ConversionRate / RevenueWinnerMinConversion,
	}
}

type lowConversionRule struct{}

func (lowConversionRule) Name() string { return "low-conversion" }

func (r lowConversionRule) Evaluate(input RankInput) *domain.Insight {
	var lowest *domain.CampaignSummary
	for i := range input.Summaries {
		summary := &input.Summaries[i]
		if summary.TotalSent < LowConversionMinSent {
			continue
		}
		if lowest == nil || summary.ConversionRate < lowest.ConversionRate {
			lowest = summary
		}
	}

	if lowest == nil || lowest.ConversionRate > LowConversionMaxRate {
		return nil
	}

	return &domain.Insight{
		ID:             r.Name(),
		Title:          "Conversão abaixo do esperado",
		Metric:         utils.FormatPercent(lowest.ConversionRate),
		Summary:        fmt.Sprintf("A campanha %s teve a menor conversão entre as campanhas com volume relevante.", lowest.CampaignID),
		Recommendation: "Revise a oferta, o horário de envio e a segmentação antes do próximo disparo.",
		Evidence:       fmt.Sprintf("%d mensagens enviadas e %d pedidos entregues.", lowest.TotalSent, lowest.OrdersDelivered),
		Severity:       domain.SeverityHigh,
		Score:          (LowConversionMaxRate - lowest.ConversionRate) / LowConversionMaxRate,
	}
}

type stalledCampaignRule struct{}

func (stalledCampaignRule) Name() string { return "stalled-campaign" }

func (r stalledCampaignRule) Evaluate(input RankInput) *domain.Insight {
	for _, summary := range input.Summaries {
		if !slices.Contains(stalledStatuses, summary.Status) || summary.TotalSent != 0 {
			continue
		}

		return &domain.Insight{
			ID:             r.Name(),
			Title:          "Campanha parada",
			Metric:         "0 envios",
			Summary:        fmt.Sprintf("A campanha %s está com status %q e ainda não enviou mensagens.", summary.CampaignID, summary.Status),
			Recommendation: "Verifique a configuração de envio e a lista de destinatários da campanha.",
			Evidence:       fmt.Sprintf("Status atual: %s.", summary.Status),
			Severity:       domain.SeverityMedium,
			Score:          stalledCampaignScore,
		}
	}

	return nil
}

type weekdayGapRule struct{}

func (weekdayGapRule) Name() string { return "weekday-gap" }

// Dias da semana calculados em UTC
func (r weekdayGapRule) Evaluate(input RankInput) *domain.Insight {
	windowStart := input.Now.AddDate(0, 0, -WeekdayGapWindowDays)

	var counts [7]int
	for _, order := range input.Orders {
		if order.Status != domain.OrderStatusDelivered || order.CreatedAt == nil {
			continue
		}
		createdAt := order.CreatedAt.UTC()
		if createdAt.Before(windowStart) || createdAt.After(input.Now) {
			continue
		}
		counts[createdAt.Weekday()]++
	}

	busiest, quietest := 0, 0
	for weekday := range counts {
		if counts[weekday] > counts[busiest] {
			busiest = weekday
		}
		if counts[weekday] < counts[quietest] {
			quietest = weekday
		}
	}

	maxCount, minCount := counts[busiest], counts[quietest]
	if maxCount == 0 || float64(maxCount) <= float64(minCount)*WeekdayGapMinRatio {
		return nil
	}

	return &domain.Insight{
		ID:     r.Name(),
		Title:  "Diferença de vendas entre dias da semana",
		Metric: fmt.Sprintf("%d x %d pedidos", maxCount, minCount),
		Summary: fmt.Sprintf("%s concentra mais pedidos entregues que %s nos últimos %d dias.",
			weekdayNames[busiest], weekdayNames[quietest], WeekdayGapWindowDays),
		Recommendation: fmt.Sprintf("Programe campanhas para %s para equilibrar a demanda.", weekdayNames[quietest]),
		Evidence:       fmt.Sprintf("%d pedidos em %s contra %d em %s.", maxCount, weekdayNames[busiest], minCount, weekdayNames[quietest]),
		Severity:       domain.SeverityLow,
		Score:          float64(maxCount-minCount) / float64(maxCount) * weekdayGapScoreWeight,
	}
}
