package domain

import (
	"github.com/shopspring/decimal"
)

// ForecastConfig is the complete, immutable input snapshot for one simulation
// run. Callers are responsible for supplying fully-resolved, validated
// configuration; the engine performs no defaulting of its own.
type ForecastConfig struct {
	PersonA Person `yaml:"person_a" json:"person_a"`
	PersonB Person `yaml:"person_b" json:"person_b"`

	Expenses []ExpenseItem `yaml:"expenses" json:"expenses"`
	Assets   Assets        `yaml:"assets" json:"assets"`

	// Rates are percentages (3 means 3% p.a.).
	AnnualIncomeIncrease decimal.Decimal `yaml:"annual_income_increase" json:"annual_income_increase"`
	AnnualInflationRate  decimal.Decimal `yaml:"annual_inflation_rate" json:"annual_inflation_rate"`

	// FinancialYear selects the tax and super-guarantee tables and anchors
	// the simulation's first calendar year ("2025-26" starts in 2025).
	FinancialYear       string `yaml:"financial_year" json:"financial_year"`
	IncludeMedicareLevy bool   `yaml:"include_medicare_levy" json:"include_medicare_levy"`

	// SplurgeAutoInvestThreshold, when positive, caps discretionary spending
	// at this percentage of after-tax income; the excess is diverted into the
	// portfolio. Zero disables the policy.
	SplurgeAutoInvestThreshold decimal.Decimal `yaml:"splurge_auto_invest_threshold" json:"splurge_auto_invest_threshold"`

	Children      []Child       `yaml:"children" json:"children"`
	EducationFees EducationFees `yaml:"education_fees" json:"education_fees"`
}

// YearProjection is one simulated year's full state. Immutable once emitted;
// the sequence is ordered by simulated year ascending.
type YearProjection struct {
	Year         int `json:"year"`          // 1-based sequence number
	CalendarYear int `json:"calendar_year"` // e.g. 2026
	AgeA         int `json:"age_a"`
	AgeB         int `json:"age_b"`

	GrossIncomeA        decimal.Decimal `json:"gross_income_a"`
	GrossIncomeB        decimal.Decimal `json:"gross_income_b"`
	CombinedGrossIncome decimal.Decimal `json:"combined_gross_income"`

	TaxA        decimal.Decimal `json:"tax_a"`
	TaxB        decimal.Decimal `json:"tax_b"`
	CombinedTax decimal.Decimal `json:"combined_tax"`

	SuperA        decimal.Decimal `json:"super_a"`
	SuperB        decimal.Decimal `json:"super_b"`
	CombinedSuper decimal.Decimal `json:"combined_super"`

	AfterTaxA        decimal.Decimal `json:"after_tax_a"`
	AfterTaxB        decimal.Decimal `json:"after_tax_b"`
	CombinedAfterTax decimal.Decimal `json:"combined_after_tax"`

	ExpensesA         decimal.Decimal `json:"expenses_a"`
	ExpensesB         decimal.Decimal `json:"expenses_b"`
	CombinedExpenses  decimal.Decimal `json:"combined_expenses"`
	EducationExpenses decimal.Decimal `json:"education_expenses"`

	// Expense breakdown by category.
	RegularExpenses   decimal.Decimal `json:"regular_expenses"`
	MortgageExpenses  decimal.Decimal `json:"mortgage_expenses"`
	DependantExpenses decimal.Decimal `json:"dependant_expenses"`

	// Income sources.
	WorkIncome        decimal.Decimal `json:"work_income"`
	SuperDrawdown     decimal.Decimal `json:"super_drawdown"`
	PortfolioDrawdown decimal.Decimal `json:"portfolio_drawdown"`

	SplurgeA        decimal.Decimal `json:"splurge_a"`
	SplurgeB        decimal.Decimal `json:"splurge_b"`
	CombinedSplurge decimal.Decimal `json:"combined_splurge"`
	AutoInvested    decimal.Decimal `json:"auto_invested"`

	CumulativeSavings decimal.Decimal `json:"cumulative_savings"`

	SuperBalanceA     decimal.Decimal `json:"super_balance_a"`
	SuperBalanceB     decimal.Decimal `json:"super_balance_b"`
	TotalSuperBalance decimal.Decimal `json:"total_super_balance"`
	PortfolioValue    decimal.Decimal `json:"portfolio_value"`
	TotalCarValue     decimal.Decimal `json:"total_car_value"`
	OtherAssetsValue  decimal.Decimal `json:"other_assets_value"`
	MortgageBalance   decimal.Decimal `json:"mortgage_balance"`

	TotalNetWorth decimal.Decimal `json:"total_net_worth"`

	RetiredA bool `json:"retired_a"`
	RetiredB bool `json:"retired_b"`
}

// TotalAssetValue sums every asset balance, excluding liabilities.
func (yp *YearProjection) TotalAssetValue() decimal.Decimal {
	return yp.TotalSuperBalance.Add(yp.PortfolioValue).Add(yp.TotalCarValue).Add(yp.OtherAssetsValue)
}

// IsSuperDepleted reports whether both super balances have hit zero.
func (yp *YearProjection) IsSuperDepleted() bool {
	return yp.TotalSuperBalance.LessThanOrEqual(decimal.Zero)
}

// ForecastSummary aggregates lifetime totals over the projection.
type ForecastSummary struct {
	TotalYears             int             `json:"total_years"`
	TotalIncomeEarned      decimal.Decimal `json:"total_income_earned"`
	TotalTaxPaid           decimal.Decimal `json:"total_tax_paid"`
	TotalSuperContributed  decimal.Decimal `json:"total_super_contributed"`
	TotalExpenses          decimal.Decimal `json:"total_expenses"`
	FinalCumulativeSavings decimal.Decimal `json:"final_cumulative_savings"`
	AverageAnnualSavings   decimal.Decimal `json:"average_annual_savings"`
}

// ForecastResult is the output of one simulation run: the ordered projection
// sequence plus summary aggregates.
type ForecastResult struct {
	Projections []YearProjection `json:"projections"`
	Summary     ForecastSummary  `json:"summary"`
}

// FinalProjection returns the last simulated year. The engine guarantees at
// least one projection, but callers holding a zero value get nil.
func (fr *ForecastResult) FinalProjection() *YearProjection {
	if len(fr.Projections) == 0 {
		return nil
	}
	return &fr.Projections[len(fr.Projections)-1]
}
