package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"printquote/internal/calculators"
	"printquote/internal/catalog"
)

// FormatMoney renders v with two decimals, rounding half away from zero on
// the decimal value rather than its binary approximation.
func FormatMoney(currency string, v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-" + currency + d.Abs().StringFixed(2)
	}
	return currency + d.StringFixed(2)
}

func FormatPriceBreakdown(spool catalog.Record, prices calculators.CostBreakdown, currency string) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	b.WriteString("--- Pricing Breakdown ---\n")
	line("Filament Type", spool.Type)
	line("Filament Color", spool.Color)
	line("Material Cost", FormatMoney(currency, prices.MaterialCost))
	line("Setup Cost", FormatMoney(currency, prices.SetupCost))
	line("Operational Cost", FormatMoney(currency, prices.OperationalCost))
	line("Total Base Cost", FormatMoney(currency, prices.TotalBaseCost))
	line("Profit", FormatMoney(currency, prices.Profit))
	line("Final Price to Charge", FormatMoney(currency, prices.FinalPrice))

	return b.String()
}
