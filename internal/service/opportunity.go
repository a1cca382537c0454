package service

import (
	"fmt"
	"math"

	"spendpause/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// annualGrowthRate is the fixed assumed annual return used for all
// opportunity-cost projections.
const annualGrowthRate = 0.07

var currencyPrinter = message.NewPrinter(language.English)

func compound(principal float64, years int) float64 {
	return principal * math.Pow(1+annualGrowthRate, float64(years))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateOpportunityCost projects the future value of price if invested at
// a 7% annual return over 5, 10 and 20 years. Non-positive prices produce a
// zeroed result with a prompt to enter a valid price.
func CalculateOpportunityCost(price float64, currency string) models.OpportunityCost {
	if price <= 0 {
		return models.OpportunityCost{
			ComparisonText: "Enter a valid price to see what this purchase could grow into if invested.",
		}
	}

	year20 := round2(compound(price, 20))
	return models.OpportunityCost{
		Amount: price,
		Projections: models.Projections{
			Year5:  round2(compound(price, 5)),
			Year10: round2(compound(price, 10)),
			Year20: year20,
		},
		ComparisonText: fmt.Sprintf(
			"Spending %s now could mean giving up %s in 20 years if that money were invested at a 7%% annual return.",
			FormatCurrency(price, currency), FormatCurrency(year20, currency),
		),
	}
}

// FormatCurrency renders a monetary amount with thousands separators,
// exactly 2 decimal places and the symbol for the given ISO code. Codes
// without a known symbol are printed as a prefix.
func FormatCurrency(amount float64, currencyCode string) string {
	for _, cs := range currencySymbols {
		if cs.Code == currencyCode {
			return currencyPrinter.Sprintf("%s%.2f", cs.Symbol, amount)
		}
	}
	return currencyPrinter.Sprintf("%s %.2f", currencyCode, amount)
}
