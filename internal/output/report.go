package output

import (
	"github.com/andiescott-hub/personal-finance-calculator/internal/calculation"
	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
)

// Report bundles everything a formatter needs: the resolved configuration,
// the current-year income breakdown and the full projection.
type Report struct {
	Config    *domain.ForecastConfig      `json:"config"`
	Household calculation.HouseholdIncome `json:"household"`
	Forecast  *domain.ForecastResult      `json:"forecast"`
}

// NewReport assembles a report from a validated configuration by running both
// the single-year income calculation and the full forecast.
func NewReport(cfg *domain.ForecastConfig, logger calculation.Logger) (*Report, error) {
	taxCalc := calculation.NewTaxCalculator()

	engine := calculation.NewForecastEngine(taxCalc, logger)
	result, err := engine.Run(cfg)
	if err != nil {
		return nil, err
	}

	income := calculation.NewIncomeCalculator(taxCalc, logger)
	return &Report{
		Config:    cfg,
		Household: income.CalculateHousehold(cfg),
		Forecast:  result,
	}, nil
}
