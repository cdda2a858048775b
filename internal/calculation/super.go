package calculation

import (
	"github.com/shopspring/decimal"
)

// sgRateEntry pins a super-guarantee rate to the financial year it applies
// in. The table is closed: lookups outside it report a fallback rather than
// failing, so a simulation never halts on an unknown year key.
type sgRateEntry struct {
	Year string
	Rate decimal.Decimal
}

// ATO Table 21: super guarantee percentage by financial year. The rate is
// legislated to step up to 14% by 2029-30.
var superGuaranteeRates = []sgRateEntry{
	{"2024-25", decimal.NewFromFloat(0.115)},
	{"2025-26", decimal.NewFromFloat(0.12)},
	{"2026-27", decimal.NewFromFloat(0.125)},
	{"2027-28", decimal.NewFromFloat(0.13)},
	{"2028-29", decimal.NewFromFloat(0.135)},
	{"2029-30", decimal.NewFromFloat(0.14)},
}

// defaultSGRate is used when a financial year is not in the table.
var defaultSGRate = decimal.NewFromFloat(0.12)

// LookupSGRate returns the super guarantee rate (as a decimal fraction) for
// a financial-year key. The second return value is false when the year was
// unknown and the default rate was substituted; callers should log that.
func LookupSGRate(financialYear string) (decimal.Decimal, bool) {
	for _, entry := range superGuaranteeRates {
		if entry.Year == financialYear {
			return entry.Rate, true
		}
	}
	return defaultSGRate, false
}

// AvailableFinancialYears lists the years the SG table covers, in order.
func AvailableFinancialYears() []string {
	years := make([]string, 0, len(superGuaranteeRates))
	for _, entry := range superGuaranteeRates {
		years = append(years, entry.Year)
	}
	return years
}

// SuperInput holds the salary components superannuation accrues on.
// VoluntaryRate is a decimal fraction (0.05 for 5%), applied to the same base
// as the guarantee, not to after-tax income.
type SuperInput struct {
	BaseSalary    decimal.Decimal
	Bonus         decimal.Decimal
	Allowances    decimal.Decimal
	VoluntaryRate decimal.Decimal
	FinancialYear string
}

// SuperResult is one year's superannuation accrual.
type SuperResult struct {
	SGBase                decimal.Decimal `json:"sg_base"`
	EmployerContribution  decimal.Decimal `json:"employer_contribution"`
	VoluntaryContribution decimal.Decimal `json:"voluntary_contribution"`
	TotalContribution     decimal.Decimal `json:"total_contribution"`
	GuaranteeRatePercent  decimal.Decimal `json:"guarantee_rate_percent"`
	UsedFallbackRate      bool            `json:"used_fallback_rate"`
}

// CalculateSuper computes employer and voluntary contributions. The SG base
// is base + bonus + allowances; both contribution streams are computed on it.
func CalculateSuper(input SuperInput) SuperResult {
	sgRate, found := LookupSGRate(input.FinancialYear)

	sgBase := input.BaseSalary.Add(input.Bonus).Add(input.Allowances)
	employer := sgBase.Mul(sgRate)
	voluntary := sgBase.Mul(input.VoluntaryRate)

	return SuperResult{
		SGBase:                sgBase,
		EmployerContribution:  employer,
		VoluntaryContribution: voluntary,
		TotalContribution:     employer.Add(voluntary),
		GuaranteeRatePercent:  sgRate.Mul(decimal.NewFromInt(100)),
		UsedFallbackRate:      !found,
	}
}
