package calculators

import (
	"printquote/internal/catalog"
)

// Job holds the operator's inputs for one print.
type Job struct {
	PrintWeightGrams    float64
	ProfitMarginPercent float64
	SetupCost           float64
	OperationalCost     float64
}

// CostBreakdown is the priced result of one Job.
type CostBreakdown struct {
	MaterialCost    float64
	SetupCost       float64
	OperationalCost float64
	TotalBaseCost   float64
	Profit          float64
	FinalPrice      float64
}

type PrintingCalculator struct{}

func NewPrintingCalculator() *PrintingCalculator {
	return &PrintingCalculator{}
}

// Calculate prices a job printed from spool. The margin is applied on top of
// the base cost; a negative margin is a discount.
func (pc *PrintingCalculator) Calculate(spool catalog.Record, job Job) (CostBreakdown, error) {
	if err := validateSpool(spool); err != nil {
		return CostBreakdown{}, err
	}
	if err := validateJob(job); err != nil {
		return CostBreakdown{}, err
	}

	material := spool.CostPerGram() * job.PrintWeightGrams
	base := material + job.SetupCost + job.OperationalCost
	profit := base * (job.ProfitMarginPercent / 100)

	return CostBreakdown{
		MaterialCost:    material,
		SetupCost:       job.SetupCost,
		OperationalCost: job.OperationalCost,
		TotalBaseCost:   base,
		Profit:          profit,
		FinalPrice:      base + profit,
	}, nil
}

func validateSpool(spool catalog.Record) error {
	if err := finite("spool weight", spool.WeightGrams); err != nil {
		return err
	}
	if err := finite("spool cost", spool.CostTotal); err != nil {
		return err
	}
	if spool.WeightGrams <= 0 {
		return &InvalidInputError{Field: "spool weight", Value: spool.WeightGrams, Reason: "must be greater than zero"}
	}
	if spool.CostTotal < 0 {
		return &InvalidInputError{Field: "spool cost", Value: spool.CostTotal, Reason: "must not be negative"}
	}
	return nil
}

func validateJob(job Job) error {
	checks := []struct {
		field string
		value float64
	}{
		{FieldPrintWeight, job.PrintWeightGrams},
		{FieldProfitMargin, job.ProfitMarginPercent},
		{FieldSetupCost, job.SetupCost},
		{FieldOperationalCost, job.OperationalCost},
	}
	for _, c := range checks {
		if err := finite(c.field, c.value); err != nil {
			return err
		}
	}

	if job.PrintWeightGrams <= 0 {
		return &InvalidInputError{Field: FieldPrintWeight, Value: job.PrintWeightGrams, Reason: "must be greater than zero"}
	}
	if job.SetupCost < 0 {
		return &InvalidInputError{Field: FieldSetupCost, Value: job.SetupCost, Reason: "must not be negative"}
	}
	if job.OperationalCost < 0 {
		return &InvalidInputError{Field: FieldOperationalCost, Value: job.OperationalCost, Reason: "must not be negative"}
	}
	return nil
}
