package domain

import (
	"github.com/shopspring/decimal"
)

// Mortgage describes the household home loan. Rates are percentages
// (6.5 means 6.5% p.a.); PaymentsPerYear is 12, 26 or 52.
type Mortgage struct {
	LoanAmount          decimal.Decimal `yaml:"loan_amount" json:"loan_amount"`
	CurrentBalance      decimal.Decimal `yaml:"current_balance" json:"current_balance"`
	InterestRate        decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
	LoanTermYears       int             `yaml:"loan_term_years" json:"loan_term_years"`
	PaymentsPerYear     int             `yaml:"payments_per_year" json:"payments_per_year"`
	StartYear           int             `yaml:"start_year" json:"start_year"`
	ExtraMonthlyPayment decimal.Decimal `yaml:"extra_monthly_payment" json:"extra_monthly_payment"`
}

// ExtraPerPeriod converts the configured extra monthly payment to a
// per-payment-period amount.
func (m Mortgage) ExtraPerPeriod() decimal.Decimal {
	if m.PaymentsPerYear == 12 || m.PaymentsPerYear == 0 {
		return m.ExtraMonthlyPayment
	}
	return m.ExtraMonthlyPayment.Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(int64(m.PaymentsPerYear)))
}

// Car is a depreciating vehicle. AnnualDepreciation is a percentage.
type Car struct {
	ID                 string          `yaml:"id" json:"id"`
	Name               string          `yaml:"name" json:"name"`
	CurrentValue       decimal.Decimal `yaml:"current_value" json:"current_value"`
	AnnualDepreciation decimal.Decimal `yaml:"annual_depreciation" json:"annual_depreciation"`
}

// Asset is a generic appreciating or depreciating asset with its own growth
// rate. AnnualGrowthRate is a signed percentage; negative means depreciation.
type Asset struct {
	ID               string          `yaml:"id" json:"id"`
	Name             string          `yaml:"name" json:"name"`
	Category         string          `yaml:"category" json:"category"`
	CurrentValue     decimal.Decimal `yaml:"current_value" json:"current_value"`
	AnnualGrowthRate decimal.Decimal `yaml:"annual_growth_rate" json:"annual_growth_rate"`
}

// PortfolioItem is a single investment holding: either a manually-entered
// value, or a units x unit-price pair where the unit price comes from a
// market feed before the config snapshot is built.
type PortfolioItem struct {
	ID           string          `yaml:"id" json:"id"`
	Name         string          `yaml:"name" json:"name"`
	Ticker       string          `yaml:"ticker,omitempty" json:"ticker,omitempty"`
	Units        decimal.Decimal `yaml:"units,omitempty" json:"units,omitempty"`
	UnitPriceAUD decimal.Decimal `yaml:"unit_price_aud,omitempty" json:"unit_price_aud,omitempty"`
	Value        decimal.Decimal `yaml:"value" json:"value"`
}

// CurrentValue returns units x unit price when both are set, otherwise the
// manually-entered value.
func (pi PortfolioItem) CurrentValue() decimal.Decimal {
	if pi.Units.IsPositive() && pi.UnitPriceAUD.IsPositive() {
		return pi.Units.Mul(pi.UnitPriceAUD)
	}
	return pi.Value
}

// Assets bundles every balance the forecast engine tracks. Growth rates are
// percentages. SuperDrawdownRatio is the percentage of a retirement shortfall
// preferred from superannuation; the remainder is drawn from the portfolio
// first.
type Assets struct {
	SuperBalanceA       decimal.Decimal `yaml:"super_balance_a" json:"super_balance_a"`
	SuperBalanceB       decimal.Decimal `yaml:"super_balance_b" json:"super_balance_b"`
	SuperGrowthRate     decimal.Decimal `yaml:"super_growth_rate" json:"super_growth_rate"`
	PortfolioValue      decimal.Decimal `yaml:"portfolio_value" json:"portfolio_value"`
	PortfolioGrowthRate decimal.Decimal `yaml:"portfolio_growth_rate" json:"portfolio_growth_rate"`
	PortfolioItems      []PortfolioItem `yaml:"portfolio_items" json:"portfolio_items"`
	Cars                []Car           `yaml:"cars" json:"cars"`
	OtherAssets         []Asset         `yaml:"other_assets" json:"other_assets"`
	Mortgage            Mortgage        `yaml:"mortgage" json:"mortgage"`
	SuperDrawdownRatio  decimal.Decimal `yaml:"super_drawdown_ratio" json:"super_drawdown_ratio"`
}

// TotalPortfolioItemValue sums the current value of all holdings. The
// aggregate portfolio value is derived from this, never stored independently.
func (a Assets) TotalPortfolioItemValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range a.PortfolioItems {
		total = total.Add(item.CurrentValue())
	}
	return total
}

// TotalCarValue sums the current value of all vehicles.
func (a Assets) TotalCarValue() decimal.Decimal {
	total := decimal.Zero
	for _, car := range a.Cars {
		total = total.Add(car.CurrentValue)
	}
	return total
}
