package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brazilianPrinter = message.NewPrinter(language.BrazilianPortuguese)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatCurrency converte centavos para o formato R$ 1.234,56
func FormatCurrency(minorUnits int64) string {
	return brazilianPrinter.Sprintf("R$ %.2f", float64(minorUnits)/100)
}

// FormatPercent formata uma fração como porcentagem com uma casa decimal
func FormatPercent(fraction float64) string {
	return brazilianPrinter.Sprintf("%.1f%%", fraction*100)
}
