package aggregating

import (
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

var (
	ErrInvalidPeriod = errors.New("período inválido: use daily, weekly ou monthly")
	ErrInvalidRange  = errors.New("intervalo inválido: data inicial maior que a final")
	ErrRangeTooLarge = fmt.Errorf("intervalo grande demais: no máximo %d buckets por série", MaxSeriesBuckets)
)

// MaxSeriesBuckets limita quantos buckets uma série pode enumerar, em qualquer granularidade
const MaxSeriesBuckets = 1000

const bucketLayout = "2006-01-02"

var monthAbbreviations = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// ParsePeriod valida a granularidade recebida na requisição
func ParsePeriod(value string) (domain.Period, error) {
	switch period := domain.Period(value); period {
	case domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly:
		return period, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, value)
	}
}

// BucketStart normaliza uma data para o início do seu bucket em UTC.
// Semanas começam na segunda-feira.
func BucketStart(date time.Time, period domain.Period) time.Time {
	date = date.UTC()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case domain.PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case domain.PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func nextBucket(start time.Time, period domain.Period) time.Time {
	switch period {
	case domain.PeriodWeekly:
		return start.AddDate(0, 0, 7)
	case domain.PeriodMonthly:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

func bucketLabel(start time.Time, period domain.Period) string {
	switch period {
	case domain.PeriodWeekly:
		return "Sem " + start.Format("02/01")
	case domain.PeriodMonthly:
		return fmt.Sprintf("%s/%d", monthAbbreviations[start.Month()-1], start.Year())
	default:
		return start.Format("02/01")
	}
}

// ValidateSeriesRange confere período e intervalo sem enumerar os buckets
func ValidateSeriesRange(period domain.Period, dateRange domain.DateRange) error {
	if _, err := ParsePeriod(string(period)); err != nil {
		return err
	}

	if dateRange.Start.After(dateRange.End) {
		return ErrInvalidRange
	}

	if bucketCount(dateRange, period) > MaxSeriesBuckets {
		return ErrRangeTooLarge
	}

	return nil
}

// time.Time.Sub satura em intervalos muito longos, o que ainda resulta numa contagem acima do limite
func bucketCount(dateRange domain.DateRange, period domain.Period) int64 {
	start := BucketStart(dateRange.Start, period)
	end := BucketStart(dateRange.End, period)

	switch period {
	case domain.PeriodWeekly:
		return int64(end.Sub(start)/(7*24*time.Hour)) + 1
	case domain.PeriodMonthly:
		return int64(end.Year()-start.Year())*12 + int64(end.Month()-start.Month()) + 1
	default:
		return int64(end.Sub(start)/(24*time.Hour)) + 1
	}
}

// RevenueSeries distribui as vendas pagas nos buckets do intervalo, em ordem cronológica.
// Vendas fora de todos os buckets são descartadas.
func RevenueSeries(sales []domain.Sale, period domain.Period, dateRange domain.DateRange) ([]domain.SalesPoint, error) {
	if err := ValidateSeriesRange(period, dateRange); err != nil {
		return nil, err
	}

	points := make([]domain.SalesPoint, 0)
	index := make(map[string]int)

	end := dateRange.End.UTC()
	for cursor := BucketStart(dateRange.Start, period); !cursor.After(end); cursor = nextBucket(cursor, period) {
		key := cursor.Format(bucketLayout)
		index[key] = len(points)
		points = append(points, domain.SalesPoint{
			Period: key,
			Label:  bucketLabel(cursor, period),
			Total:  0,
		})
	}

	for _, sale := range sales {
		if sale.Status != domain.SaleStatusPaid || sale.Date == nil {
			continue
		}

		position, ok := index[BucketStart(*sale.Date, period).Format(bucketLayout)]
		if !ok {
			continue
		}
		points[position].Total += sale.Amount
	}

	return points, nil
}

// DefaultSeriesWindowDays é a janela usada quando a série é pedida sem intervalo
const DefaultSeriesWindowDays = 30

// DefaultSeriesRange cobre os últimos 30 dias até o fim do dia de now
func DefaultSeriesRange(now time.Time) domain.DateRange {
	end := utils.EndOfDay(now)
	start := BucketStart(end, domain.PeriodDaily).AddDate(0, 0, -(DefaultSeriesWindowDays - 1))
	return domain.DateRange{Start: start, End: end}
}
