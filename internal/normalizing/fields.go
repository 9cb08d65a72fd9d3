// Package normalizing converte registros JSON brutos, com campos opcionais, nulos e nomes
// inconsistentes, em registros canônicos do domínio. Cada formato de campo tem um parser
// dedicado e nenhum parser retorna erro: valores inválidos viram nil, zero, false ou lista vazia.
package normalizing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/store-insights-api/internal/domain"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	MinRating = 1
	MaxRating = 5
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Record é um objeto JSON bruto
type Record = map[string]any

// Field busca um campo pelo nome em camelCase e, se ausente ou nulo, pela versão snake_case
func Field(raw Record, name string) any {
	if raw == nil {
		return nil
	}

	if value, ok := raw[name]; ok && value != nil {
		return value
	}

	if value, ok := raw[toSnakeCase(name)]; ok && value != nil {
		return value
	}

	return nil
}

// FirstField retorna o primeiro campo presente entre os nomes informados
func FirstField(raw Record, names ...string) any {
	for _, name := range names {
		if value := Field(raw, name); value != nil {
			return value
		}
	}
	return nil
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseDate aceita uma string ISO-8601 ou um envelope {iso, _date|_timestamp}
func ParseDate(value any) *time.Time {
	switch v := value.(type) {
	case string:
		return parseISO(v)
	case time.Time:
		t := v.UTC()
		return &t
	case *time.Time:
		if v == nil {
			return nil
		}
		t := v.UTC()
		return &t
	case map[string]any:
		if iso, ok := v["iso"].(string); ok {
			return parseISO(iso)
		}
	}

	return nil
}

func parseISO(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}

	return nil
}

// ParseNumber aceita números ou strings numéricas. NaN e infinito viram nil.
func ParseNumber(value any) *float64 {
	var f float64

	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	return &f
}

// ParseCount é usado em contadores: valores inválidos viram 0 para não contaminar somas
func ParseCount(value any) int {
	n := ParseNumber(value)
	if n == nil {
		return 0
	}
	return int(math.Round(*n))
}

// ParseMinorUnits lê valores monetários em centavos
func ParseMinorUnits(value any) int64 {
	n := ParseNumber(value)
	if n == nil {
		return 0
	}
	return int64(math.Round(*n))
}

// ParseRate lê taxas fracionárias (conversão, evasão). Ausente ou inválida vira nil.
func ParseRate(value any) *float64 {
	return ParseNumber(value)
}

func ParseString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func ParseBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	}

	if n := ParseNumber(value); n != nil {
		return *n != 0
	}
	return false
}

// ParseStatus normaliza status livres para minúsculas
func ParseStatus(value any) string {
	return strings.ToLower(ParseString(value))
}

// ClampRating limita a nota ao intervalo 1..5. Notas ausentes ou inválidas valem 1.
func ClampRating(value any) int {
	rating := ParseCount(value)
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}

// ParsePayload normaliza as variantes de mensagem de uma campanha para uma lista de strings.
// Aceita lista, string com JSON (lista ou string) e string simples; outros formatos
// são serializados em JSON e embrulhados numa lista de um elemento.
func ParsePayload(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, v...)
	case []any:
		return stringifyAll(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}
		}

		var parsed any
		if err := jsonCodec.UnmarshalFromString(v, &parsed); err != nil {
			return []string{v}
		}

		switch p := parsed.(type) {
		case []any:
			return stringifyAll(p)
		case string:
			return []string{p}
		}
		return []string{v}
	}

	return []string{stringify(value)}
}

func stringifyAll(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, stringify(value))
	}
	return out
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}

	encoded, err := jsonCodec.MarshalToString(value)
	if err != nil {
		return ""
	}
	return encoded
}

// ParseMedia só aceita objetos com url e type preenchidos
func ParseMedia(value any) *domain.Media {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	url := ParseString(raw["url"])
	mediaType := ParseString(raw["type"])
	if url == "" || mediaType == "" {
		return nil
	}

	return &domain.Media{URL: url, Type: mediaType}
}

// ParseVoucher devolve nil ou um voucher com todos os campos preenchidos com valores padrão
func ParseVoucher(value any) *domain.Voucher {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	discountValue := 0.0
	if n := ParseNumber(FirstField(raw, "discountValue", "value", "amount")); n != nil {
		discountValue = *n
	}

	expiresAt := ""
	if rawExpiry := Field(raw, "expiresAt"); rawExpiry != nil {
		if date := ParseDate(rawExpiry); date != nil {
			expiresAt = date.Format(time.RFC3339)
		} else {
			expiresAt = ParseString(rawExpiry)
		}
	}

	return &domain.Voucher{
		Code:          ParseString(Field(raw, "code")),
		Description:   ParseString(Field(raw, "description")),
		DiscountType:  ParseString(FirstField(raw, "discountType", "type")),
		DiscountValue: discountValue,
		MinOrderValue: ParseMinorUnits(FirstField(raw, "minOrderValue", "minimumOrderValue")),
		MaxUses:       ParseCount(Field(raw, "maxUses")),
		Active:        ParseBool(Field(raw, "active")),
		ExpiresAt:     expiresAt,
	}
}
