package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

const (
	DefaultProfileLimit = 180

	maxTopCategories   = 3
	maxSampleComments  = 3
	maxCommentLength   = 160
	truncationEllipsis = "…"
)

type categoryAccumulator struct {
	category  string
	count     int
	ratingSum int
}

type profileAccumulator struct {
	consumerID     string
	count          int
	ratingSum      int
	categories     []*categoryAccumulator
	categoryIndex  map[string]*categoryAccumulator
	comments       []string
	lastFeedbackAt *time.Time
}

func (a *profileAccumulator) add(feedback domain.Feedback) {
	a.count++
	a.ratingSum += feedback.Rating

	category := feedback.Category
	if category == "" {
		category = domain.UncategorizedFeedback
	}
	stat, ok := a.categoryIndex[category]
	if !ok {
		stat = &categoryAccumulator{category: category}
		a.categoryIndex[category] = stat
		a.categories = append(a.categories, stat)
	}
	stat.count++
	stat.ratingSum += feedback.Rating

	if feedback.Comment != "" && len(a.comments) < maxSampleComments {
		a.comments = append(a.comments, truncateComment(feedback.Comment))
	}

	date := feedback.UpdatedAt
	if date == nil {
		date = feedback.CreatedAt
	}
	if date != nil && (a.lastFeedbackAt == nil || date.After(*a.lastFeedbackAt)) {
		a.lastFeedbackAt = date
	}
}

func (a *profileAccumulator) profile(name string) domain.CustomerFeedbackProfile {
	categories := make([]*categoryAccumulator, len(a.categories))
	copy(categories, a.categories)
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].count > categories[j].count
	})
	if len(categories) > maxTopCategories {
		categories = categories[:maxTopCategories]
	}

	topCategories := make([]domain.CategoryStat, 0, len(categories))
	for _, stat := range categories {
		topCategories = append(topCategories, domain.CategoryStat{
			Category:      stat.category,
			Count:         stat.count,
			AverageRating: utils.RoundWithTwoDecimalPlace(float64(stat.ratingSum) / float64(stat.count)),
		})
	}

	comments := a.comments
	if comments == nil {
		comments = []string{}
	}

	return domain.CustomerFeedbackProfile{
		StoreConsumerID: a.consumerID,
		Name:            name,
		TotalFeedbacks:  a.count,
		AverageRating:   utils.RoundWithTwoDecimalPlace(float64(a.ratingSum) / float64(a.count)),
		LastFeedbackAt:  a.lastFeedbackAt,
		TopCategories:   topCategories,
		SampleComments:  comments,
	}
}

func truncateComment(comment string) string {
	runes := []rune(comment)
	if len(runes) <= maxCommentLength {
		return comment
	}
	return string(runes[:maxCommentLength-1]) + truncationEllipsis
}

// BuildCustomerFeedbackProfiles agrupa os feedbacks por cliente e ordena os perfis pelo feedback mais recente.
// Perfis sem data vão para o fim. limit <= 0 usa DefaultProfileLimit.
func BuildCustomerFeedbackProfiles(feedbacks []domain.Feedback, consumers []domain.Consumer, limit int) []domain.CustomerFeedbackProfile {
	if limit <= 0 {
		limit = DefaultProfileLimit
	}

	names := make(map[string]string, len(consumers))
	for _, consumer := range consumers {
		if consumer.ID != "" && consumer.Name != "" {
			names[consumer.ID] = consumer.Name
		}
	}

	accumulators := make([]*profileAccumulator, 0)
	byConsumer := make(map[string]*profileAccumulator)

	for _, feedback := range feedbacks {
		if feedback.StoreConsumerID == "" {
			continue
		}

		acc, ok := byConsumer[feedback.StoreConsumerID]
		if !ok {
			acc = &profileAccumulator{
				consumerID:    feedback.StoreConsumerID,
				categoryIndex: make(map[string]*categoryAccumulator),
			}
			byConsumer[feedback.StoreConsumerID] = acc
			accumulators = append(accumulators, acc)
		}
		acc.add(feedback)
	}

	profiles := make([]domain.CustomerFeedbackProfile, 0, len(accumulators))
	for _, acc := range accumulators {
		profiles = append(profiles, acc.profile(names[acc.consumerID]))
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return lastFeedbackUnix(profiles[i]) > lastFeedbackUnix(profiles[j])
	})

	if len(profiles) > limit {
		profiles = profiles[:limit]
	}

	return profiles
}

func lastFeedbackUnix(profile domain.CustomerFeedbackProfile) int64 {
	if profile.LastFeedbackAt == nil {
		return 0
	}
	return profile.LastFeedbackAt.UnixMilli()
}
