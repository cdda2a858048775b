package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeInput holds the annual income components for one person. All values
// are annual dollar amounts; PreTotalAdjustments may be negative.
type IncomeInput struct {
	BaseSalary          decimal.Decimal `yaml:"base_salary" json:"base_salary"`
	VariableIncome      decimal.Decimal `yaml:"variable_income" json:"variable_income"`
	Allowances          decimal.Decimal `yaml:"allowances" json:"allowances"`
	PreTotalAdjustments decimal.Decimal `yaml:"pre_total_adjustments" json:"pre_total_adjustments"`
}

// Total returns the sum of all income components.
func (ii IncomeInput) Total() decimal.Decimal {
	return ii.BaseSalary.Add(ii.VariableIncome).Add(ii.Allowances).Add(ii.PreTotalAdjustments)
}

// NovatedLease describes a salary-packaged vehicle lease with a pre-tax
// (taxable-income-reducing) and post-tax (take-home-reducing) annual component.
type NovatedLease struct {
	PreTaxAnnual   decimal.Decimal `yaml:"pre_tax_annual" json:"pre_tax_annual"`
	PostTaxAnnual  decimal.Decimal `yaml:"post_tax_annual" json:"post_tax_annual"`
	LeaseTermYears int             `yaml:"lease_term_years" json:"lease_term_years"`
	StartYear      int             `yaml:"start_year" json:"start_year"`
}

// ActiveIn reports whether the lease is running in the given calendar year.
// A lease with no pre-tax component or a zero term is never active.
func (nl NovatedLease) ActiveIn(calendarYear int) bool {
	if !nl.PreTaxAnnual.IsPositive() || nl.LeaseTermYears <= 0 {
		return false
	}
	return calendarYear >= nl.StartYear && calendarYear < nl.StartYear+nl.LeaseTermYears
}

// Person holds one earner's demographic and contribution settings.
type Person struct {
	Name          string      `yaml:"name" json:"name"`
	CurrentAge    int         `yaml:"current_age" json:"current_age"`
	RetirementAge int         `yaml:"retirement_age" json:"retirement_age"`
	Income        IncomeInput `yaml:"income" json:"income"`

	// VoluntarySuperRate is a salary-sacrifice percentage (e.g. 2 for 2%).
	VoluntarySuperRate decimal.Decimal `yaml:"voluntary_super_rate" json:"voluntary_super_rate"`

	// PortfolioContribution is an annual dollar amount invested while working.
	PortfolioContribution decimal.Decimal `yaml:"portfolio_contribution" json:"portfolio_contribution"`

	// SpendableExclusion is the annual amount of after-tax income not
	// available for spending (e.g. a car allowance committed elsewhere).
	SpendableExclusion decimal.Decimal `yaml:"spendable_exclusion" json:"spendable_exclusion"`

	NovatedLease NovatedLease `yaml:"novated_lease" json:"novated_lease"`
}

// RetiredAt reports whether the person has retired by the given age.
// The transition is one-way: once age reaches RetirementAge it never reverses.
func (p Person) RetiredAt(age int) bool {
	return age >= p.RetirementAge
}
