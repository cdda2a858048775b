package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
	"github.com/andiescott-hub/personal-finance-calculator/pkg/finyear"
)

// IncomeCalculator produces the current-year income picture for one person or
// the household. It is the single-year counterpart of the forecast engine and
// uses the same tax and super rules.
type IncomeCalculator struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewIncomeCalculator creates an income calculator. A nil logger defaults to
// a no-op.
func NewIncomeCalculator(taxCalc *TaxCalculator, logger Logger) *IncomeCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &IncomeCalculator{TaxCalc: taxCalc, Logger: logger}
}

// PersonIncome is one person's full income decomposition for a single year.
type PersonIncome struct {
	Name            string             `json:"name"`
	Input           domain.IncomeInput `json:"input"`
	GrossIncome     decimal.Decimal    `json:"gross_income"` // taxable, after salary sacrifice
	Tax             TaxResult          `json:"tax"`
	Super           SuperResult        `json:"super"`
	AfterTaxIncome  decimal.Decimal    `json:"after_tax_income"`
	SpendableIncome decimal.Decimal    `json:"spendable_income"`
}

// HouseholdIncome pairs both earners with combined totals.
type HouseholdIncome struct {
	FinancialYear    string          `json:"financial_year"`
	PersonA          PersonIncome    `json:"person_a"`
	PersonB          PersonIncome    `json:"person_b"`
	CombinedGross    decimal.Decimal `json:"combined_gross"`
	CombinedTax      decimal.Decimal `json:"combined_tax"`
	CombinedAfterTax decimal.Decimal `json:"combined_after_tax"`
	CombinedSuper    decimal.Decimal `json:"combined_super"`
}

// CalculateForPerson decomposes one person's income for the given financial
// year. Salary-sacrificed super and active pre-tax lease payments reduce
// taxable income; post-tax lease payments and the spendable exclusion reduce
// spendable income only.
func (ic *IncomeCalculator) CalculateForPerson(person domain.Person, financialYear string, includeMedicareLevy bool) PersonIncome {
	calendarYear, err := finyear.StartYear(financialYear)
	if err != nil {
		ic.Logger.Warnf("income: unparseable financial year %q, lease treated as inactive", financialYear)
	}

	super := CalculateSuper(SuperInput{
		BaseSalary:    person.Income.BaseSalary,
		Bonus:         person.Income.VariableIncome,
		Allowances:    person.Income.Allowances,
		VoluntaryRate: person.VoluntarySuperRate.Div(oneHundred),
		FinancialYear: financialYear,
	})
	if super.UsedFallbackRate {
		ic.Logger.Warnf("income: no super guarantee rate for %s, using %s%%", financialYear, super.GuaranteeRatePercent)
	}

	leasePreTax := decimal.Zero
	leasePostTax := decimal.Zero
	if err == nil && person.NovatedLease.ActiveIn(calendarYear) {
		leasePreTax = person.NovatedLease.PreTaxAnnual
		leasePostTax = person.NovatedLease.PostTaxAnnual
	}

	gross := person.Income.Total().Sub(super.VoluntaryContribution).Sub(leasePreTax)
	tax := ic.TaxCalc.Calculate(gross, includeMedicareLevy)
	afterTax := gross.Sub(tax.TotalTax)
	spendable := afterTax.Sub(person.SpendableExclusion).Sub(leasePostTax)

	return PersonIncome{
		Name:            person.Name,
		Input:           person.Income,
		GrossIncome:     gross,
		Tax:             tax,
		Super:           super,
		AfterTaxIncome:  afterTax,
		SpendableIncome: spendable,
	}
}

// CalculateHousehold decomposes both earners' incomes and combines them.
func (ic *IncomeCalculator) CalculateHousehold(cfg *domain.ForecastConfig) HouseholdIncome {
	a := ic.CalculateForPerson(cfg.PersonA, cfg.FinancialYear, cfg.IncludeMedicareLevy)
	b := ic.CalculateForPerson(cfg.PersonB, cfg.FinancialYear, cfg.IncludeMedicareLevy)

	return HouseholdIncome{
		FinancialYear:    cfg.FinancialYear,
		PersonA:          a,
		PersonB:          b,
		CombinedGross:    a.GrossIncome.Add(b.GrossIncome),
		CombinedTax:      a.Tax.TotalTax.Add(b.Tax.TotalTax),
		CombinedAfterTax: a.AfterTaxIncome.Add(b.AfterTaxIncome),
		CombinedSuper:    a.Super.TotalContribution.Add(b.Super.TotalContribution),
	}
}
