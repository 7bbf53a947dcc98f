// Package catalog loads the filament spool catalog from a tabular source.
package catalog

import (
	"fmt"
	"strconv"
)

// Column names expected in the catalog header.
const (
	ColumnType      = "type"
	ColumnColor     = "color"
	ColumnWeight    = "weight_g"
	ColumnCostTotal = "cost_total"
)

// RequiredColumns lists the header columns every catalog must carry.
var RequiredColumns = []string{ColumnType, ColumnColor, ColumnWeight, ColumnCostTotal}

// Record is one filament spool. WeightGrams is always > 0 and CostTotal >= 0.
type Record struct {
	Type        string
	Color       string
	WeightGrams float64
	CostTotal   float64
}

// CostPerGram is the spool cost spread over its weight.
func (r Record) CostPerGram() float64 {
	return r.CostTotal / r.WeightGrams
}

// Label renders the menu line for the spool, e.g. "PLA (Black) - 1000g for £20.00".
func (r Record) Label(currency string) string {
	return fmt.Sprintf("%s (%s) - %sg for %s%.2f",
		r.Type,
		r.Color,
		strconv.FormatFloat(r.WeightGrams, 'f', -1, 64),
		currency,
		r.CostTotal,
	)
}
