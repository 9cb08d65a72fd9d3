package ranking

import (
	"github.com/vfg2006/store-insights-api/internal/domain"
)

const FallbackInsightID = "stay-the-course"

// Evaluate executa as regras na ordem recebida e devolve os candidatos produzidos
func Evaluate(rules []Rule, input RankInput) []domain.Insight {
	candidates := make([]domain.Insight, 0, len(rules))
	for _, rule := range rules {
		if insight := rule.Evaluate(input); insight != nil {
			candidates = append(candidates, *insight)
		}
	}
	return candidates
}

// Select devolve o candidato de maior pontuação. Empates ficam com o primeiro da lista.
func Select(candidates []domain.Insight) domain.Insight {
	if len(candidates) == 0 {
		return FallbackInsight()
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	return best
}

// Rank combina Evaluate e Select
func Rank(rules []Rule, input RankInput) domain.Insight {
	return Select(Evaluate(rules, input))
}

func FallbackInsight() domain.Insight {
	return domain.Insight{
		ID:             FallbackInsightID,
		Title:          "Siga com a estratégia atual",
		Metric:         "Sem alertas",
		Summary:        "Nenhuma regra identificou oportunidades ou riscos relevantes nos dados atuais.",
		Recommendation: "Mantenha o calendário de campanhas e acompanhe os indicadores na próxima semana.",
		Evidence:       "Todas as métricas avaliadas estão dentro dos limites esperados.",
		Severity:       domain.SeverityLow,
		Score:          0,
	}
}
