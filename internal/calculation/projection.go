package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
)

// compound returns (1 + rate/100)^years. Negative years deflate, which the
// education-fee schedule relies on when the forecast starts before the fee
// base year.
func compound(ratePercent decimal.Decimal, years int) decimal.Decimal {
	base := decimalOne.Add(ratePercent.Div(oneHundred))
	return base.Pow(decimal.NewFromInt(int64(years)))
}

// expenseGroups partitions the configured expense items by the lifecycle rule
// that applies to them. Mortgage payments are fixed-nominal and lapse at
// payoff; the dependant item lapses when no child is in school; everything
// else inflates forever.
type expenseGroups struct {
	regular   CadenceTotals
	mortgage  CadenceTotals
	dependant CadenceTotals
}

func splitExpenseItems(items []domain.ExpenseItem) expenseGroups {
	var regular, mortgage, dependant []domain.ExpenseItem
	for _, item := range items {
		switch {
		case item.IsMortgage():
			mortgage = append(mortgage, item)
		case item.IsDependant():
			dependant = append(dependant, item)
		case item.IsEducation():
			// Education fees are recomputed per child per year; the
			// synthesized items only exist for the expense views.
		default:
			regular = append(regular, item)
		}
	}
	return expenseGroups{
		regular:   SummarizeExpenses(regular).Annual,
		mortgage:  SummarizeExpenses(mortgage).Annual,
		dependant: SummarizeExpenses(dependant).Annual,
	}
}

// educationExpensesFor totals school fees across all children for one
// forecast year. Fees are quoted in base-year dollars and inflated (or
// deflated) to the forecast year.
func educationExpensesFor(forecastYear int, children []domain.Child, fees domain.EducationFees, inflationRatePercent decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, child := range children {
		baseFee := fees.FeeForYearLevel(child.YearLevelIn(forecastYear))
		if !baseFee.IsPositive() {
			continue
		}
		inflated := baseFee.Mul(compound(inflationRatePercent, forecastYear-fees.BaseYear))
		total = total.Add(inflated)
	}
	return total
}

func anyChildInSchool(children []domain.Child, forecastYear int) bool {
	for _, child := range children {
		if child.InSchoolIn(forecastYear) {
			return true
		}
	}
	return false
}

// yearIncome is one person's income decomposition for a single projected
// year. A retired person has an all-zero decomposition.
type yearIncome struct {
	grossBeforeLease decimal.Decimal
	gross            decimal.Decimal
	tax              TaxResult
	employerSG       decimal.Decimal
	voluntary        decimal.Decimal
	superTotal       decimal.Decimal
	afterTax         decimal.Decimal
	leasePostTax     decimal.Decimal
	nonSpendable     decimal.Decimal
	retired          bool
}

// projectIncome computes one person's income for a projected year. Income
// grows from the base year by growthFactor and stops at retirement. A lease
// that is active and pre-retirement reduces taxable income; employer super is
// accrued on the pre-lease gross, voluntary super on the taxable gross.
func (fe *ForecastEngine) projectIncome(person domain.Person, age, forecastYear int, growthFactor, sgRate decimal.Decimal, includeMedicareLevy bool) yearIncome {
	retired := person.RetiredAt(age)

	grossBeforeLease := decimal.Zero
	if !retired {
		grossBeforeLease = person.Income.Total().Mul(growthFactor)
	}

	leasePreTax := decimal.Zero
	leasePostTax := decimal.Zero
	if !retired && person.NovatedLease.ActiveIn(forecastYear) {
		leasePreTax = person.NovatedLease.PreTaxAnnual
		leasePostTax = person.NovatedLease.PostTaxAnnual
	}

	gross := grossBeforeLease.Sub(leasePreTax)
	tax := fe.TaxCalc.Calculate(gross, includeMedicareLevy)

	employerSG := decimal.Zero
	voluntary := decimal.Zero
	nonSpendable := decimal.Zero
	if !retired {
		employerSG = grossBeforeLease.Mul(sgRate)
		voluntary = gross.Mul(person.VoluntarySuperRate.Div(oneHundred))
		nonSpendable = person.Income.Allowances.Add(person.Income.PreTotalAdjustments).Mul(growthFactor)
	}

	return yearIncome{
		grossBeforeLease: grossBeforeLease,
		gross:            gross,
		tax:              tax,
		employerSG:       employerSG,
		voluntary:        voluntary,
		superTotal:       employerSG.Add(voluntary),
		afterTax:         gross.Sub(tax.TotalTax),
		leasePostTax:     leasePostTax,
		nonSpendable:     nonSpendable,
		retired:          retired,
	}
}

// assetState tracks one independently-growing asset through the projection.
type assetState struct {
	value decimal.Decimal
	rate  decimal.Decimal
}

func averageCarDepreciation(cars []domain.Car) decimal.Decimal {
	if len(cars) == 0 {
		return decimal.NewFromInt(15)
	}
	sum := decimal.Zero
	for _, car := range cars {
		sum = sum.Add(car.AnnualDepreciation)
	}
	return sum.Div(decimal.NewFromInt(int64(len(cars))))
}
