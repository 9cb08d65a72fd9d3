// Package segmenting agrupa os perfis de feedback em coortes fixas quando não há segmentação gerada por modelo
package segmenting

import (
	"fmt"
	"math"
	"sort"

	"github.com/vfg2006/store-insights-api/internal/domain"
)

const (
	PromoterMinRating = 4.0
	NeutralMinRating  = 2.5

	NoDataCoverage = "Sem dados suficientes"
	maxSignals     = 2
)

type cohort struct {
	id          string
	name        string
	description string
	actions     []string
	priority    domain.SegmentPriority
	accepts     func(rating float64) bool
}

var cohorts = []cohort{
	{
		id:          "promoters",
		name:        "Promotores",
		description: "Clientes com avaliação média a partir de 4 que tendem a recomendar a loja.",
		actions: []string{
			"Convidar para um programa de indicação com cupom para amigos.",
			"Pedir avaliação pública após a próxima compra.",
		},
		priority: domain.SegmentPriorityMedium,
		accepts:  func(rating float64) bool { return rating >= PromoterMinRating },
	},
	{
		id:          "neutral",
		name:        "Neutros",
		description: "Clientes satisfeitos, mas sem entusiasmo, com avaliação média entre 2,5 e 4.",
		actions: []string{
			"Enviar oferta personalizada com base na categoria mais avaliada.",
		},
		priority: domain.SegmentPriorityMedium,
		accepts:  func(rating float64) bool { return rating >= NeutralMinRating && rating < PromoterMinRating },
	},
	{
		id:          "detractors",
		name:        "Detratores",
		description: "Clientes com avaliação média abaixo de 2,5 e risco de abandono.",
		actions: []string{
			"Entrar em contato para entender o problema e oferecer solução.",
			"Enviar cupom de retratação após o atendimento.",
		},
		priority: domain.SegmentPriorityHigh,
		accepts:  func(rating float64) bool { return rating < NeutralMinRating },
	},
}

// BuildFallbackSegments separa os perfis em promotores, neutros e detratores.
// Coortes vazias não aparecem na saída.
func BuildFallbackSegments(profiles []domain.CustomerFeedbackProfile) []domain.Segment {
	segments := make([]domain.Segment, 0, len(cohorts))

	for _, c := range cohorts {
		members := make([]domain.CustomerFeedbackProfile, 0)
		for _, profile := range profiles {
			if c.accepts(profile.AverageRating) {
				members = append(members, profile)
			}
		}

		if len(members) == 0 {
			continue
		}

		customerIDs := make([]string, 0, len(members))
		for _, member := range members {
			customerIDs = append(customerIDs, member.StoreConsumerID)
		}

		actions := make([]string, len(c.actions))
		copy(actions, c.actions)

		segments = append(segments, domain.Segment{
			ID:          c.id,
			Name:        c.name,
			Description: c.description,
			Coverage:    Coverage(len(members), len(profiles)),
			Signals:     signals(members),
			Actions:     actions,
			Priority:    c.priority,
			CustomerIDs: customerIDs,
		})
	}

	return segments
}

// Coverage descreve quantos perfis recentes a coorte cobre
func Coverage(count, total int) string {
	if count == 0 || total == 0 {
		return NoDataCoverage
	}

	pct := int(math.Round(float64(count) / float64(total) * 100))
	if pct == 0 {
		return NoDataCoverage
	}
	return fmt.Sprintf("%d clientes (%d%% dos perfis recentes)", count, pct)
}

// Até dois sinais: categorias dominantes e um comentário de exemplo
func signals(members []domain.CustomerFeedbackProfile) []string {
	result := make([]string, 0, maxSignals)

	if categories := dominantCategories(members); len(categories) > 0 {
		label := categories[0]
		if len(categories) > 1 {
			label = categories[0] + " e " + categories[1]
		}
		result = append(result, "Categorias mais citadas: "+label)
	}

	for _, member := range members {
		if len(member.SampleComments) > 0 {
			result = append(result, fmt.Sprintf("Comentário: \"%s\"", member.SampleComments[0]))
			break
		}
	}

	if len(result) > maxSignals {
		result = result[:maxSignals]
	}
	return result
}

func dominantCategories(members []domain.CustomerFeedbackProfile) []string {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, member := range members {
		for _, stat := range member.TopCategories {
			if _, ok := counts[stat.Category]; !ok {
				order = append(order, stat.Category)
			}
			counts[stat.Category] += stat.Count
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 2 {
		order = order[:2]
	}
	return order
}
