package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
)

// householdConfig builds a realistic two-earner configuration used across
// the engine tests.
func householdConfig() *domain.ForecastConfig {
	return &domain.ForecastConfig{
		PersonA: domain.Person{
			Name:          "Andy",
			CurrentAge:    35,
			RetirementAge: 67,
			Income: domain.IncomeInput{
				BaseSalary:     decimal.NewFromInt(90000),
				VariableIncome: decimal.NewFromInt(10000),
				Allowances:     decimal.NewFromInt(5000),
			},
			VoluntarySuperRate: decimal.NewFromInt(2),
		},
		PersonB: domain.Person{
			Name:          "Nadiele",
			CurrentAge:    33,
			RetirementAge: 67,
			Income: domain.IncomeInput{
				BaseSalary:     decimal.NewFromInt(75000),
				VariableIncome: decimal.NewFromInt(5000),
			},
			VoluntarySuperRate: decimal.NewFromInt(2),
		},
		Expenses: []domain.ExpenseItem{
			{ID: "groceries", Name: "Groceries", Amount: decimal.NewFromInt(300), Frequency: domain.Weekly,
				ProportionA: decimal.NewFromInt(50), ProportionB: decimal.NewFromInt(50)},
			{ID: domain.MortgageExpenseID, Name: "Mortgage Payment", Category: "Housing",
				Amount: decimal.NewFromFloat(3160.34), Frequency: domain.Monthly,
				ProportionA: decimal.NewFromInt(50), ProportionB: decimal.NewFromInt(50)},
		},
		Assets: domain.Assets{
			SuperBalanceA:       decimal.NewFromInt(150000),
			SuperBalanceB:       decimal.NewFromInt(120000),
			SuperGrowthRate:     decimal.NewFromInt(7),
			PortfolioValue:      decimal.NewFromInt(50000),
			PortfolioGrowthRate: decimal.NewFromInt(7),
			Cars: []domain.Car{
				{ID: "1", Name: "Car 1", CurrentValue: decimal.NewFromInt(25000), AnnualDepreciation: decimal.NewFromInt(15)},
			},
			Mortgage: domain.Mortgage{
				LoanAmount:      decimal.NewFromInt(500000),
				CurrentBalance:  decimal.NewFromInt(500000),
				InterestRate:    decimal.NewFromFloat(6.5),
				LoanTermYears:   30,
				PaymentsPerYear: 12,
				StartYear:       2020,
			},
			SuperDrawdownRatio: decimal.NewFromInt(70),
		},
		AnnualIncomeIncrease: decimal.NewFromInt(3),
		AnnualInflationRate:  decimal.NewFromFloat(2.5),
		FinancialYear:        "2025-26",
		IncludeMedicareLevy:  true,
		Children: []domain.Child{
			{ID: "1", Name: "Tristan", CurrentYearLevel: 1, CurrentYear: 2026},
		},
		EducationFees: domain.EducationFees{
			ELP3:        decimal.NewFromInt(6990),
			ELP4:        decimal.NewFromInt(10500),
			PrepToYear4: decimal.NewFromInt(11500),
			Year5And6:   decimal.NewFromInt(15990),
			Year7To9:    decimal.NewFromInt(21990),
			Year10To12:  decimal.NewFromInt(27990),
			BaseYear:    2026,
		},
	}
}

func runForecast(t *testing.T, cfg *domain.ForecastConfig) *domain.ForecastResult {
	t.Helper()
	engine := NewForecastEngine(NewTaxCalculator(), nil)
	result, err := engine.Run(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, result.Projections)
	return result
}

func TestForecastRunsToAge80(t *testing.T) {
	result := runForecast(t, householdConfig())

	assert.Len(t, result.Projections, 46) // ages 35 through 80
	first := result.Projections[0]
	assert.Equal(t, 1, first.Year)
	assert.Equal(t, 2025, first.CalendarYear)
	assert.Equal(t, 35, first.AgeA)
	assert.Equal(t, 33, first.AgeB)

	final := result.FinalProjection()
	assert.Equal(t, 80, final.AgeA)
	assert.Equal(t, 78, final.AgeB)
	assert.Equal(t, 46, result.Summary.TotalYears)

	for i, p := range result.Projections {
		assert.Equal(t, i+1, p.Year)
		assert.Equal(t, 2025+i, p.CalendarYear)
	}
}

func TestForecastRejectsExhaustedHorizon(t *testing.T) {
	cfg := householdConfig()
	cfg.PersonA.CurrentAge = 81

	engine := NewForecastEngine(NewTaxCalculator(), nil)
	_, err := engine.Run(cfg)
	assert.Error(t, err)
}

// Net worth must equal the sum of asset balances minus the mortgage in every
// projected year.
func TestNetWorthAdditivity(t *testing.T) {
	result := runForecast(t, householdConfig())

	for _, p := range result.Projections {
		expected := p.TotalAssetValue().Sub(p.MortgageBalance)
		assertDecimalEqual(t, expected, p.TotalNetWorth, "year %d", p.CalendarYear)
		assertDecimalEqual(t, p.SuperBalanceA.Add(p.SuperBalanceB), p.TotalSuperBalance)
	}
}

func TestNetWorthGrowsWhileWorking(t *testing.T) {
	result := runForecast(t, householdConfig())

	for i := 1; i < len(result.Projections); i++ {
		p := result.Projections[i]
		if p.RetiredA || p.RetiredB {
			break
		}
		assert.True(t, p.TotalNetWorth.GreaterThan(result.Projections[i-1].TotalNetWorth),
			"net worth fell in %d", p.CalendarYear)
	}
}

func TestMortgagePaysOffAndStaysOff(t *testing.T) {
	result := runForecast(t, householdConfig())

	previous := result.Projections[0].MortgageBalance
	paidOff := false
	for _, p := range result.Projections {
		assert.True(t, p.MortgageBalance.LessThanOrEqual(previous),
			"mortgage balance rose in %d", p.CalendarYear)
		if paidOff {
			assert.True(t, p.MortgageBalance.IsZero(), "mortgage came back in %d", p.CalendarYear)
			assert.True(t, p.MortgageExpenses.IsZero(), "mortgage payments after payoff in %d", p.CalendarYear)
		}
		if p.MortgageBalance.IsZero() {
			paidOff = true
		}
		previous = p.MortgageBalance
	}
	assert.True(t, paidOff, "30 year loan never paid off over 46 years")
}

// Once a person retires their gross income, tax and super contributions are
// zero, permanently.
func TestRetirementZeroesIncome(t *testing.T) {
	result := runForecast(t, householdConfig())

	for _, p := range result.Projections {
		assert.Equal(t, p.AgeA >= 67, p.RetiredA, "year %d", p.CalendarYear)
		if p.RetiredA {
			assert.True(t, p.GrossIncomeA.IsZero(), "retired gross income in %d", p.CalendarYear)
			assert.True(t, p.TaxA.IsZero())
			assert.True(t, p.SuperA.IsZero())
		} else {
			assert.True(t, p.GrossIncomeA.IsPositive())
		}
		if p.RetiredA && p.RetiredB {
			assert.True(t, p.CombinedGrossIncome.IsZero())
			assert.True(t, p.WorkIncome.IsZero())
		}
	}
}

// Working-year income compounds at the configured growth rate.
func TestIncomeGrowth(t *testing.T) {
	cfg := householdConfig()
	result := runForecast(t, cfg)

	assertDecimalEqual(t, cfg.PersonA.Income.Total(), result.Projections[0].GrossIncomeA)

	growth := decimal.NewFromFloat(1.03)
	for i := 1; i < 6; i++ {
		ratio := result.Projections[i].GrossIncomeA.Div(result.Projections[i-1].GrossIncomeA)
		assertDecimalEqual(t, growth, ratio, "year %d growth", result.Projections[i].CalendarYear)
	}
}

// With no contributions or drawdowns, a balance is pure geometric growth.
func TestPortfolioCompounding(t *testing.T) {
	cfg := &domain.ForecastConfig{
		PersonA: domain.Person{Name: "A", CurrentAge: 70, RetirementAge: 60},
		PersonB: domain.Person{Name: "B", CurrentAge: 70, RetirementAge: 60},
		Assets: domain.Assets{
			PortfolioValue:      decimal.NewFromInt(100000),
			PortfolioGrowthRate: decimal.NewFromInt(7),
		},
		FinancialYear: "2025-26",
	}

	result := runForecast(t, cfg)

	growth := decimal.NewFromFloat(1.07)
	for i := 0; i < 5; i++ {
		expected := decimal.NewFromInt(100000).Mul(growth.Pow(decimal.NewFromInt(int64(i + 1))))
		assertDecimalEqual(t, expected, result.Projections[i].PortfolioValue, "year %d", i)
	}
}

// A retirement shortfall is funded from the portfolio up to its share, with
// the remainder drawn from super.
func TestRetirementDrawdownSplit(t *testing.T) {
	cfg := &domain.ForecastConfig{
		PersonA: domain.Person{Name: "A", CurrentAge: 70, RetirementAge: 60},
		PersonB: domain.Person{Name: "B", CurrentAge: 70, RetirementAge: 60},
		Expenses: []domain.ExpenseItem{
			{ID: "living", Name: "Living", Amount: decimal.NewFromInt(26000), Frequency: domain.Annual,
				ProportionA: decimal.NewFromInt(50), ProportionB: decimal.NewFromInt(50)},
		},
		Assets: domain.Assets{
			SuperBalanceA:      decimal.NewFromInt(200000),
			SuperBalanceB:      decimal.NewFromInt(200000),
			PortfolioValue:     decimal.NewFromInt(100000),
			SuperDrawdownRatio: decimal.NewFromInt(70),
		},
		FinancialYear: "2025-26",
	}

	result := runForecast(t, cfg)
	first := result.Projections[0]

	// Shortfall is the full 26000 of expenses.
	assertDecimalEqual(t, decimal.NewFromInt(7800), first.PortfolioDrawdown, "30% from portfolio")
	assertDecimalEqual(t, decimal.NewFromInt(18200), first.SuperDrawdown, "70% from super")
	assertDecimalEqual(t, decimal.NewFromInt(92200), first.PortfolioValue)
	// Equal super balances take equal halves of the super draw.
	assertDecimalEqual(t, first.SuperBalanceA, first.SuperBalanceB)
}

// When the portfolio cannot cover its share, super covers the remainder.
func TestDrawdownFallsBackToSuper(t *testing.T) {
	cfg := &domain.ForecastConfig{
		PersonA: domain.Person{Name: "A", CurrentAge: 70, RetirementAge: 60},
		PersonB: domain.Person{Name: "B", CurrentAge: 70, RetirementAge: 60},
		Expenses: []domain.ExpenseItem{
			{ID: "living", Name: "Living", Amount: decimal.NewFromInt(26000), Frequency: domain.Annual},
		},
		Assets: domain.Assets{
			SuperBalanceA:      decimal.NewFromInt(300000),
			PortfolioValue:     decimal.NewFromInt(1000),
			SuperDrawdownRatio: decimal.NewFromInt(70),
		},
		FinancialYear: "2025-26",
	}

	result := runForecast(t, cfg)
	first := result.Projections[0]

	assertDecimalEqual(t, decimal.NewFromInt(1000), first.PortfolioDrawdown, "portfolio exhausted")
	assertDecimalEqual(t, decimal.NewFromInt(25000), first.SuperDrawdown)
	assert.True(t, first.PortfolioValue.IsZero())
}

// Depleted balances clamp at zero rather than going negative.
func TestDrawdownNeverGoesNegative(t *testing.T) {
	cfg := &domain.ForecastConfig{
		PersonA: domain.Person{Name: "A", CurrentAge: 70, RetirementAge: 60},
		PersonB: domain.Person{Name: "B", CurrentAge: 70, RetirementAge: 60},
		Expenses: []domain.ExpenseItem{
			{ID: "living", Name: "Living", Amount: decimal.NewFromInt(260000), Frequency: domain.Annual},
		},
		Assets: domain.Assets{
			SuperBalanceA:      decimal.NewFromInt(5000),
			PortfolioValue:     decimal.NewFromInt(2000),
			SuperDrawdownRatio: decimal.NewFromInt(70),
		},
		FinancialYear: "2025-26",
	}

	result := runForecast(t, cfg)
	for _, p := range result.Projections {
		assert.True(t, p.SuperBalanceA.GreaterThanOrEqual(decimal.Zero), "year %d", p.CalendarYear)
		assert.True(t, p.SuperBalanceB.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, p.PortfolioValue.GreaterThanOrEqual(decimal.Zero))
	}
}

func TestEducationExpensesFollowYearLevels(t *testing.T) {
	result := runForecast(t, householdConfig())

	byYear := make(map[int]domain.YearProjection)
	for _, p := range result.Projections {
		byYear[p.CalendarYear] = p
	}

	// 2026 is the fee base year and Tristan is in Year 1: no inflation.
	assertDecimalEqual(t, decimal.NewFromInt(11500), byYear[2026].EducationExpenses)

	// 2025: Prep, one year before the base year, so the fee deflates.
	expected2025 := decimal.NewFromInt(11500).Div(decimal.NewFromFloat(1.025))
	assertDecimalEqual(t, expected2025, byYear[2025].EducationExpenses)

	// Year 12 is 2037; fees stop after that.
	assert.True(t, byYear[2037].EducationExpenses.IsPositive())
	assert.True(t, byYear[2038].EducationExpenses.IsZero())
	assert.True(t, byYear[2050].EducationExpenses.IsZero())
}

func TestSplurgeAutoInvest(t *testing.T) {
	cfg := householdConfig()
	cfg.SplurgeAutoInvestThreshold = decimal.NewFromInt(10)

	capped := runForecast(t, cfg)
	uncapped := runForecast(t, householdConfig())

	first := capped.Projections[0]
	if assert.True(t, first.AutoInvested.IsPositive(), "expected splurge above 10%% of after-tax") {
		limit := first.CombinedAfterTax.Mul(decimal.NewFromFloat(0.1))
		assert.True(t, first.CombinedSplurge.LessThanOrEqual(limit.Add(decimal.NewFromFloat(0.01))))

		// Diverted splurge lands in the portfolio.
		assert.True(t, first.PortfolioValue.GreaterThan(uncapped.Projections[0].PortfolioValue))
	}
}

// Retirees keep spending at the last working year's discretionary level, so
// retirement years draw down savings.
func TestRetirementLifestyleSpending(t *testing.T) {
	result := runForecast(t, householdConfig())

	var sawDrawdown bool
	for _, p := range result.Projections {
		if p.RetiredA && p.RetiredB && p.SuperDrawdown.Add(p.PortfolioDrawdown).IsPositive() {
			sawDrawdown = true
			break
		}
	}
	assert.True(t, sawDrawdown, "retirement years never drew on savings")
}

func TestMinimalConfigRuns(t *testing.T) {
	cfg := &domain.ForecastConfig{
		PersonA:       domain.Person{Name: "A", CurrentAge: 35, RetirementAge: 67},
		PersonB:       domain.Person{Name: "B", CurrentAge: 33, RetirementAge: 67},
		FinancialYear: "2025-26",
	}

	result := runForecast(t, cfg)
	assert.Len(t, result.Projections, 46)
	for _, p := range result.Projections {
		assert.True(t, p.TotalNetWorth.GreaterThanOrEqual(decimal.Zero))
	}
}

func TestSummaryTotals(t *testing.T) {
	result := runForecast(t, householdConfig())

	income := decimal.Zero
	tax := decimal.Zero
	for _, p := range result.Projections {
		income = income.Add(p.CombinedGrossIncome)
		tax = tax.Add(p.CombinedTax)
	}
	assertDecimalEqual(t, income, result.Summary.TotalIncomeEarned)
	assertDecimalEqual(t, tax, result.Summary.TotalTaxPaid)
	assertDecimalEqual(t,
		result.Summary.FinalCumulativeSavings.Div(decimal.NewFromInt(46)),
		result.Summary.AverageAnnualSavings)
	assertDecimalEqual(t, result.FinalProjection().CumulativeSavings, result.Summary.FinalCumulativeSavings)
}

// An unparseable financial year falls back to a warning, not a failure.
func TestBadFinancialYearFallsBack(t *testing.T) {
	cfg := householdConfig()
	cfg.FinancialYear = "not-a-year"

	result := runForecast(t, cfg)
	assert.Equal(t, 2025, result.Projections[0].CalendarYear)
}
