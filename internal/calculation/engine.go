package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
	"github.com/andiescott-hub/personal-finance-calculator/pkg/finyear"
)

// maxProjectionAge is the horizon for both partners. The loop runs until
// person A reaches it and stops early once person B has too.
const maxProjectionAge = 80

// defaultStartYear anchors the projection when the configured financial year
// cannot be parsed.
const defaultStartYear = 2025

// ForecastEngine runs the year-by-year household projection. One engine can
// run any number of configurations; Run does not mutate its input.
type ForecastEngine struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewForecastEngine creates a forecast engine. A nil logger defaults to a
// no-op.
func NewForecastEngine(taxCalc *TaxCalculator, logger Logger) *ForecastEngine {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ForecastEngine{TaxCalc: taxCalc, Logger: logger}
}

// Run projects the household forward one year at a time until person A turns
// 80, stopping early once person B has too. Each iteration recomputes income,
// tax, super and expenses from the base-year figures, then rolls every asset
// balance forward from the previous year's closing state.
func (fe *ForecastEngine) Run(cfg *domain.ForecastConfig) (*domain.ForecastResult, error) {
	if cfg.PersonA.CurrentAge > maxProjectionAge {
		return nil, fmt.Errorf("no projection years: %s is already past age %d", cfg.PersonA.Name, maxProjectionAge)
	}

	startYear, err := finyear.StartYear(cfg.FinancialYear)
	if err != nil {
		fe.Logger.Warnf("forecast: %v, anchoring at %d", err, defaultStartYear)
		startYear = defaultStartYear
	}

	sgRate, found := LookupSGRate(cfg.FinancialYear)
	if !found {
		fe.Logger.Warnf("forecast: no super guarantee rate for %q, using %s", cfg.FinancialYear, sgRate)
	}

	groups := splitExpenseItems(cfg.Expenses)

	// Mortgage amortization runs off the running balance; the fixed payment
	// always derives from the original loan terms.
	mortgage := cfg.Assets.Mortgage
	mortgagePayment := PeriodicPayment(mortgage.LoanAmount, mortgage.InterestRate, mortgage.LoanTermYears, mortgage.PaymentsPerYear)
	mortgageRate := periodicRate(mortgage.InterestRate, mortgage.PaymentsPerYear)
	mortgageExtra := mortgage.ExtraPerPeriod()
	runningMortgageBalance := mortgage.CurrentBalance

	superA := cfg.Assets.SuperBalanceA
	superB := cfg.Assets.SuperBalanceB
	portfolioValue := cfg.Assets.PortfolioValue
	totalCarValue := cfg.Assets.TotalCarValue()
	carDepreciation := averageCarDepreciation(cfg.Assets.Cars)

	otherAssets := make([]assetState, len(cfg.Assets.OtherAssets))
	for i, asset := range cfg.Assets.OtherAssets {
		otherAssets[i] = assetState{value: asset.CurrentValue, rate: asset.AnnualGrowthRate}
	}

	cumulativeSavings := decimal.Zero

	// Retirement lifestyle anchors to the last positive working-year splurge,
	// inflated from the year both partners stop working.
	lastWorkingSplurge := decimal.Zero
	retirementStartYearCount := 0

	var projections []domain.YearProjection
	yearCount := 0

	for ageA := cfg.PersonA.CurrentAge; ageA <= maxProjectionAge; ageA++ {
		ageB := cfg.PersonB.CurrentAge + yearCount
		forecastYear := startYear + yearCount

		growthFactor := compound(cfg.AnnualIncomeIncrease, yearCount)
		incomeA := fe.projectIncome(cfg.PersonA, ageA, forecastYear, growthFactor, sgRate, cfg.IncludeMedicareLevy)
		incomeB := fe.projectIncome(cfg.PersonB, ageB, forecastYear, growthFactor, sgRate, cfg.IncludeMedicareLevy)
		bothRetired := incomeA.retired && incomeB.retired

		// Regular expenses inflate every year. Mortgage payments are fixed
		// nominal and lapse at payoff. The dependant item lapses once no
		// child remains in school.
		inflationFactor := compound(cfg.AnnualInflationRate, yearCount)
		expensesA := groups.regular.A.Mul(inflationFactor)
		expensesB := groups.regular.B.Mul(inflationFactor)
		yearRegularExpenses := groups.regular.Combined.Mul(inflationFactor)

		yearMortgageExpenses := decimal.Zero
		if runningMortgageBalance.IsPositive() {
			expensesA = expensesA.Add(groups.mortgage.A)
			expensesB = expensesB.Add(groups.mortgage.B)
			yearMortgageExpenses = groups.mortgage.Combined
		}

		yearDependantExpenses := decimal.Zero
		if anyChildInSchool(cfg.Children, forecastYear) {
			expensesA = expensesA.Add(groups.dependant.A.Mul(inflationFactor))
			expensesB = expensesB.Add(groups.dependant.B.Mul(inflationFactor))
			yearDependantExpenses = groups.dependant.Combined.Mul(inflationFactor)
		}

		educationExpenses := educationExpensesFor(forecastYear, cfg.Children, cfg.EducationFees, cfg.AnnualInflationRate)
		educationHalf := educationExpenses.Div(two)

		combinedExpenses := expensesA.Add(expensesB).Add(educationExpenses)

		portfolioContribA := decimal.Zero
		portfolioContribB := decimal.Zero
		if !incomeA.retired {
			portfolioContribA = cfg.PersonA.PortfolioContribution.Mul(growthFactor)
		}
		if !incomeB.retired {
			portfolioContribB = cfg.PersonB.PortfolioContribution.Mul(growthFactor)
		}

		splurgeA := incomeA.afterTax.Sub(incomeA.voluntary).Sub(incomeA.nonSpendable).
			Sub(expensesA).Sub(educationHalf).Sub(portfolioContribA).Sub(incomeA.leasePostTax)
		splurgeB := incomeB.afterTax.Sub(incomeB.voluntary).Sub(incomeB.nonSpendable).
			Sub(expensesB).Sub(educationHalf).Sub(portfolioContribB).Sub(incomeB.leasePostTax)

		// Auto-invest: cap each working partner's splurge at the configured
		// share of after-tax income and divert the excess to the portfolio.
		autoInvested := decimal.Zero
		if cfg.SplurgeAutoInvestThreshold.IsPositive() {
			threshold := cfg.SplurgeAutoInvestThreshold.Div(oneHundred)
			if !incomeA.retired {
				allowed := incomeA.afterTax.Mul(threshold)
				if splurgeA.GreaterThan(allowed) {
					excess := splurgeA.Sub(allowed)
					portfolioContribA = portfolioContribA.Add(excess)
					autoInvested = autoInvested.Add(excess)
					splurgeA = allowed
				}
			}
			if !incomeB.retired {
				allowed := incomeB.afterTax.Mul(threshold)
				if splurgeB.GreaterThan(allowed) {
					excess := splurgeB.Sub(allowed)
					portfolioContribB = portfolioContribB.Add(excess)
					autoInvested = autoInvested.Add(excess)
					splurgeB = allowed
				}
			}
		}
		combinedSplurge := splurgeA.Add(splurgeB)

		if !bothRetired && combinedSplurge.IsPositive() {
			lastWorkingSplurge = combinedSplurge
			retirementStartYearCount = yearCount + 1
		}

		// In retirement the household keeps spending at the last working
		// year's discretionary level, inflated from the retirement year.
		if bothRetired && lastWorkingSplurge.IsPositive() {
			retirementSplurge := lastWorkingSplurge.Mul(compound(cfg.AnnualInflationRate, yearCount-retirementStartYearCount))
			combinedSplurge = combinedSplurge.Sub(retirementSplurge)
			splurgeA = splurgeA.Sub(retirementSplurge.Div(two))
			splurgeB = splurgeB.Sub(retirementSplurge.Div(two))
		}

		cumulativeSavings = cumulativeSavings.Add(combinedSplurge)

		// Growth applies to the opening balance; contributions land after.
		superGrowth := decimalOne.Add(cfg.Assets.SuperGrowthRate.Div(oneHundred))
		superA = superA.Mul(superGrowth).Add(incomeA.superTotal)
		superB = superB.Mul(superGrowth).Add(incomeB.superTotal)

		portfolioValue = portfolioValue.Mul(decimalOne.Add(cfg.Assets.PortfolioGrowthRate.Div(oneHundred)))
		portfolioValue = portfolioValue.Add(portfolioContribA).Add(portfolioContribB)

		// A retirement shortfall is funded from the portfolio up to its
		// configured share, then from super split in proportion to the two
		// balances.
		superDrawdown := decimal.Zero
		portfolioDrawdown := decimal.Zero
		if bothRetired && combinedSplurge.IsNegative() {
			shortfall := combinedSplurge.Abs()

			desiredFromPortfolio := shortfall.Mul(decimalOne.Sub(cfg.Assets.SuperDrawdownRatio.Div(oneHundred)))
			portfolioDrawdown = decimal.Min(desiredFromPortfolio, portfolioValue)
			portfolioValue = decimal.Max(decimal.Zero, portfolioValue.Sub(portfolioDrawdown))

			superDrawdown = shortfall.Sub(portfolioDrawdown)
			totalSuper := superA.Add(superB)
			split := half
			if totalSuper.IsPositive() {
				split = superA.Div(totalSuper)
			}
			superA = decimal.Max(decimal.Zero, superA.Sub(superDrawdown.Mul(split)))
			superB = decimal.Max(decimal.Zero, superB.Sub(superDrawdown.Mul(decimalOne.Sub(split))))

			cumulativeSavings = cumulativeSavings.Sub(shortfall)
		}

		totalCarValue = totalCarValue.Mul(decimalOne.Sub(carDepreciation.Div(oneHundred)))

		otherAssetsValue := decimal.Zero
		for i := range otherAssets {
			otherAssets[i].value = otherAssets[i].value.Mul(decimalOne.Add(otherAssets[i].rate.Div(oneHundred)))
			otherAssetsValue = otherAssetsValue.Add(otherAssets[i].value)
		}

		// The first projected year reports the opening mortgage balance;
		// amortization starts from the second.
		if yearCount > 0 && runningMortgageBalance.IsPositive() {
			runningMortgageBalance = ProjectBalance(runningMortgageBalance, mortgagePayment, mortgageRate, mortgage.PaymentsPerYear, mortgageExtra)
		}

		totalSuperBalance := superA.Add(superB)
		totalAssets := totalSuperBalance.Add(portfolioValue).Add(totalCarValue).Add(otherAssetsValue)

		projections = append(projections, domain.YearProjection{
			Year:                yearCount + 1,
			CalendarYear:        forecastYear,
			AgeA:                ageA,
			AgeB:                ageB,
			GrossIncomeA:        incomeA.gross,
			GrossIncomeB:        incomeB.gross,
			CombinedGrossIncome: incomeA.gross.Add(incomeB.gross),
			TaxA:                incomeA.tax.TotalTax,
			TaxB:                incomeB.tax.TotalTax,
			CombinedTax:         incomeA.tax.TotalTax.Add(incomeB.tax.TotalTax),
			SuperA:              incomeA.superTotal,
			SuperB:              incomeB.superTotal,
			CombinedSuper:       incomeA.superTotal.Add(incomeB.superTotal),
			AfterTaxA:           incomeA.afterTax,
			AfterTaxB:           incomeB.afterTax,
			CombinedAfterTax:    incomeA.afterTax.Add(incomeB.afterTax),
			ExpensesA:           expensesA,
			ExpensesB:           expensesB,
			CombinedExpenses:    combinedExpenses,
			EducationExpenses:   educationExpenses,
			RegularExpenses:     yearRegularExpenses,
			MortgageExpenses:    yearMortgageExpenses,
			DependantExpenses:   yearDependantExpenses,
			WorkIncome:          incomeA.afterTax.Add(incomeB.afterTax),
			SuperDrawdown:       superDrawdown,
			PortfolioDrawdown:   portfolioDrawdown,
			SplurgeA:            splurgeA,
			SplurgeB:            splurgeB,
			CombinedSplurge:     combinedSplurge,
			AutoInvested:        autoInvested,
			CumulativeSavings:   cumulativeSavings,
			SuperBalanceA:       superA,
			SuperBalanceB:       superB,
			TotalSuperBalance:   totalSuperBalance,
			PortfolioValue:      portfolioValue,
			TotalCarValue:       totalCarValue,
			OtherAssetsValue:    otherAssetsValue,
			MortgageBalance:     runningMortgageBalance,
			TotalNetWorth:       totalAssets.Sub(runningMortgageBalance),
			RetiredA:            incomeA.retired,
			RetiredB:            incomeB.retired,
		})

		yearCount++
		if ageB >= maxProjectionAge {
			break
		}
	}

	if len(projections) == 0 {
		return nil, fmt.Errorf("no projection years produced")
	}

	return &domain.ForecastResult{
		Projections: projections,
		Summary:     summarize(projections, cumulativeSavings),
	}, nil
}

func summarize(projections []domain.YearProjection, finalCumulativeSavings decimal.Decimal) domain.ForecastSummary {
	summary := domain.ForecastSummary{
		TotalYears:             len(projections),
		FinalCumulativeSavings: finalCumulativeSavings,
	}
	for _, p := range projections {
		summary.TotalIncomeEarned = summary.TotalIncomeEarned.Add(p.CombinedGrossIncome)
		summary.TotalTaxPaid = summary.TotalTaxPaid.Add(p.CombinedTax)
		summary.TotalSuperContributed = summary.TotalSuperContributed.Add(p.CombinedSuper)
		summary.TotalExpenses = summary.TotalExpenses.Add(p.CombinedExpenses)
	}
	summary.AverageAnnualSavings = finalCumulativeSavings.Div(decimal.NewFromInt(int64(len(projections))))
	return summary
}
