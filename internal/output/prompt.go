package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andiescott-hub/personal-finance-calculator/internal/calculation"
	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
	"github.com/andiescott-hub/personal-finance-calculator/pkg/finyear"
)

// BuildAssistantContext renders the full household state and projection as a
// plain-text system prompt for a financial-assistant chat model. Everything
// the model may be asked about is inlined; it never needs to compute.
func BuildAssistantContext(report *Report) string {
	cfg := report.Config
	currentYear, err := finyear.StartYear(cfg.FinancialYear)
	if err != nil {
		currentYear = 0
	}

	var household []string
	household = append(household,
		fmt.Sprintf("%s: age %d, retires at %d (year %d)",
			cfg.PersonA.Name, cfg.PersonA.CurrentAge, cfg.PersonA.RetirementAge,
			currentYear+(cfg.PersonA.RetirementAge-cfg.PersonA.CurrentAge)),
		fmt.Sprintf("%s: age %d, retires at %d (year %d)",
			cfg.PersonB.Name, cfg.PersonB.CurrentAge, cfg.PersonB.RetirementAge,
			currentYear+(cfg.PersonB.RetirementAge-cfg.PersonB.CurrentAge)))
	for _, child := range cfg.Children {
		household = append(household, fmt.Sprintf("Child: %s, currently in %s (%d)",
			child.Name, domain.YearLevelLabel(child.CurrentYearLevel), child.CurrentYear))
	}

	incomeSection := []string{
		personIncomeLines(cfg.PersonA, report.Household.PersonA),
		"",
		personIncomeLines(cfg.PersonB, report.Household.PersonB),
		"",
		fmt.Sprintf("COMBINED: Gross %s, Tax %s, After-tax %s, Super %s",
			FormatCurrency(report.Household.CombinedGross),
			FormatCurrency(report.Household.CombinedTax),
			FormatCurrency(report.Household.CombinedAfterTax),
			FormatCurrency(report.Household.CombinedSuper)),
	}

	var leaseLines []string
	for _, person := range []domain.Person{cfg.PersonA, cfg.PersonB} {
		lease := person.NovatedLease
		if lease.PreTaxAnnual.IsPositive() || lease.PostTaxAnnual.IsPositive() {
			leaseLines = append(leaseLines, fmt.Sprintf("%s: pre-tax %s/yr, post-tax %s/yr, %dyr term from %d",
				person.Name, FormatCurrency(lease.PreTaxAnnual), FormatCurrency(lease.PostTaxAnnual),
				lease.LeaseTermYears, lease.StartYear))
		}
	}

	var expenseLines []string
	for _, e := range cfg.Expenses {
		expenseLines = append(expenseLines, fmt.Sprintf("  %s (%s): %s/%s = %s/yr [%s %s%% / %s %s%%]",
			e.Name, e.Category, FormatCurrency(e.Amount), e.Frequency,
			FormatCurrency(annualAmount(e)),
			cfg.PersonA.Name, e.ProportionA, cfg.PersonB.Name, e.ProportionB))
	}

	fees := cfg.EducationFees
	eduLines := []string{
		fmt.Sprintf("Base year: %d", fees.BaseYear),
		fmt.Sprintf("ELP3: %s, ELP4: %s", FormatCurrency(fees.ELP3), FormatCurrency(fees.ELP4)),
		fmt.Sprintf("Prep-Year 4: %s, Year 5-6: %s", FormatCurrency(fees.PrepToYear4), FormatCurrency(fees.Year5And6)),
		fmt.Sprintf("Year 7-9: %s, Year 10-12: %s", FormatCurrency(fees.Year7To9), FormatCurrency(fees.Year10To12)),
		fmt.Sprintf("(fees inflate at %s p.a.)", FormatPercentage(cfg.AnnualInflationRate)),
	}

	assets := cfg.Assets
	assetLines := []string{
		fmt.Sprintf("Super: %s %s, %s %s, growth %s p.a.",
			cfg.PersonA.Name, FormatCurrency(assets.SuperBalanceA),
			cfg.PersonB.Name, FormatCurrency(assets.SuperBalanceB),
			FormatPercentage(assets.SuperGrowthRate)),
		fmt.Sprintf("Portfolio: %s, growth %s p.a.",
			FormatCurrency(assets.PortfolioValue), FormatPercentage(assets.PortfolioGrowthRate)),
	}
	if len(assets.PortfolioItems) > 0 {
		var holdings []string
		for _, item := range assets.PortfolioItems {
			holdings = append(holdings, fmt.Sprintf("%s %s", item.Name, FormatCurrency(item.CurrentValue())))
		}
		assetLines = append(assetLines, "  Holdings: "+strings.Join(holdings, ", "))
	}
	for _, car := range assets.Cars {
		assetLines = append(assetLines, fmt.Sprintf("Car: %s %s, depreciates %s p.a.",
			car.Name, FormatCurrency(car.CurrentValue), FormatPercentage(car.AnnualDepreciation)))
	}
	for _, a := range assets.OtherAssets {
		assetLines = append(assetLines, fmt.Sprintf("Other: %s (%s) %s, growth %s p.a.",
			a.Name, a.Category, FormatCurrency(a.CurrentValue), FormatPercentage(a.AnnualGrowthRate)))
	}
	m := assets.Mortgage
	cadence := "monthly"
	if m.PaymentsPerYear != 12 {
		cadence = "fortnightly"
	}
	mortgageLine := fmt.Sprintf("Mortgage: %s remaining of %s loan, %s rate, %dyr term, %s payments",
		FormatCurrency(m.CurrentBalance), FormatCurrency(m.LoanAmount),
		FormatPercentage(m.InterestRate), m.LoanTermYears, cadence)
	if m.ExtraMonthlyPayment.IsPositive() {
		mortgageLine += fmt.Sprintf(", extra %s/month", FormatCurrency(m.ExtraMonthlyPayment))
	}
	assetLines = append(assetLines, mortgageLine)
	assetLines = append(assetLines, fmt.Sprintf("Retirement drawdown split: %s%% from super, %s%% from portfolio",
		assets.SuperDrawdownRatio, decimal.NewFromInt(100).Sub(assets.SuperDrawdownRatio)))

	assumptions := []string{
		fmt.Sprintf("Income growth: %s p.a.", FormatPercentage(cfg.AnnualIncomeIncrease)),
		fmt.Sprintf("Inflation: %s p.a.", FormatPercentage(cfg.AnnualInflationRate)),
		fmt.Sprintf("Super growth: %s p.a.", FormatPercentage(assets.SuperGrowthRate)),
		fmt.Sprintf("Portfolio growth: %s p.a.", FormatPercentage(assets.PortfolioGrowthRate)),
		fmt.Sprintf("Voluntary super: %s %s, %s %s",
			cfg.PersonA.Name, FormatPercentage(cfg.PersonA.VoluntarySuperRate),
			cfg.PersonB.Name, FormatPercentage(cfg.PersonB.VoluntarySuperRate)),
		fmt.Sprintf("Portfolio contributions: %s %s/yr, %s %s/yr",
			cfg.PersonA.Name, FormatCurrency(cfg.PersonA.PortfolioContribution),
			cfg.PersonB.Name, FormatCurrency(cfg.PersonB.PortfolioContribution)),
	}
	if cfg.SplurgeAutoInvestThreshold.IsPositive() {
		assumptions = append(assumptions, fmt.Sprintf(
			"Splurge Auto-Invest Threshold: %s of after-tax income, discretionary spending above this share is automatically invested into portfolio",
			FormatPercentage(cfg.SplurgeAutoInvestThreshold)))
	} else {
		assumptions = append(assumptions, "Splurge Auto-Invest Threshold: off (0%)")
	}

	milestones := buildMilestones(cfg, report.Forecast)

	tableHeader := "Year | " + cfg.PersonA.Name + " Age | " + cfg.PersonB.Name + " Age | Gross Income | Tax | After-Tax | Expenses | Education | Splurge | Auto-Invested | Super Bal | Portfolio | Mortgage | Net Worth"
	var tableRows []string
	for _, y := range report.Forecast.Projections {
		tableRows = append(tableRows, fmt.Sprintf("%d | %d | %d | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s",
			y.CalendarYear, y.AgeA, y.AgeB,
			FormatCurrency(y.CombinedGrossIncome),
			FormatCurrency(y.CombinedTax),
			FormatCurrency(y.CombinedAfterTax),
			FormatCurrency(y.CombinedExpenses),
			FormatCurrency(y.EducationExpenses),
			FormatCurrency(y.CombinedSplurge),
			FormatCurrency(y.AutoInvested),
			FormatCurrency(y.TotalSuperBalance),
			FormatCurrency(y.PortfolioValue),
			FormatCurrency(y.MortgageBalance),
			FormatCurrency(y.TotalNetWorth)))
	}

	var b strings.Builder
	b.WriteString("You are a helpful financial assistant for an Australian household. You have access to their complete financial data and year-by-year projections below. Answer questions accurately using the data provided. Use Australian dollar formatting ($X,XXX). Be concise but thorough. When referencing specific years or ages, cite the exact numbers from the data. If a question requires extrapolation beyond the data, say so.\n\n")
	writeSection(&b, "HOUSEHOLD", household)
	writeSection(&b, fmt.Sprintf("CURRENT INCOME (FY %s)", cfg.FinancialYear), incomeSection)
	if len(leaseLines) > 0 {
		writeSection(&b, "NOVATED LEASES", leaseLines)
	}
	writeSection(&b, "EXPENSES", expenseLines)
	writeSection(&b, fmt.Sprintf("EDUCATION FEES (annual, base year %d)", fees.BaseYear), eduLines)
	writeSection(&b, "ASSETS", assetLines)
	writeSection(&b, "GROWTH ASSUMPTIONS", assumptions)
	writeSection(&b, "KEY MILESTONES", milestones)
	writeSection(&b, "YEAR-BY-YEAR PROJECTIONS",
		append([]string{tableHeader, strings.Repeat("-", len(tableHeader))}, tableRows...))
	return strings.TrimRight(b.String(), "\n")
}

func writeSection(b *strings.Builder, title string, lines []string) {
	fmt.Fprintf(b, "=== %s ===\n", title)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
}

func personIncomeLines(person domain.Person, income calculation.PersonIncome) string {
	lines := []string{
		strings.ToUpper(person.Name) + ":",
		fmt.Sprintf("  Gross (before deductions): %s", FormatCurrency(person.Income.Total())),
		fmt.Sprintf("    Base salary: %s, Variable: %s, Allowances: %s",
			FormatCurrency(person.Income.BaseSalary),
			FormatCurrency(person.Income.VariableIncome),
			FormatCurrency(person.Income.Allowances)),
		fmt.Sprintf("  Taxable income: %s", FormatCurrency(income.GrossIncome)),
		fmt.Sprintf("  Tax: %s (effective rate %s)",
			FormatCurrency(income.Tax.TotalTax), FormatPercentage(income.Tax.EffectiveTaxRate)),
		fmt.Sprintf("  After-tax: %s", FormatCurrency(income.AfterTaxIncome)),
		fmt.Sprintf("  Super contributions: %s (employer %s + voluntary %s)",
			FormatCurrency(income.Super.TotalContribution),
			FormatCurrency(income.Super.EmployerContribution),
			FormatCurrency(income.Super.VoluntaryContribution)),
	}
	return strings.Join(lines, "\n")
}

func annualAmount(e domain.ExpenseItem) decimal.Decimal {
	switch e.Frequency {
	case domain.Weekly:
		return e.Amount.Mul(decimal.NewFromInt(52))
	case domain.Fortnightly:
		return e.Amount.Mul(decimal.NewFromInt(26))
	case domain.Monthly:
		return e.Amount.Mul(decimal.NewFromInt(12))
	default:
		return e.Amount
	}
}

func buildMilestones(cfg *domain.ForecastConfig, forecast *domain.ForecastResult) []string {
	var milestones []string

	for _, y := range forecast.Projections {
		if y.RetiredA && y.RetiredB {
			milestones = append(milestones, fmt.Sprintf(
				"At retirement (%d, %s %d/%s %d): Net worth %s, Super %s, Portfolio %s, Mortgage %s",
				y.CalendarYear, cfg.PersonA.Name, y.AgeA, cfg.PersonB.Name, y.AgeB,
				FormatCurrency(y.TotalNetWorth), FormatCurrency(y.TotalSuperBalance),
				FormatCurrency(y.PortfolioValue), FormatCurrency(y.MortgageBalance)))
			break
		}
	}

	if final := forecast.FinalProjection(); final != nil {
		milestones = append(milestones, fmt.Sprintf(
			"At age 80 (%d): Net worth %s, Super %s, Portfolio %s",
			final.CalendarYear, FormatCurrency(final.TotalNetWorth),
			FormatCurrency(final.TotalSuperBalance), FormatCurrency(final.PortfolioValue)))
	}

	for _, y := range forecast.Projections {
		if y.MortgageBalance.LessThanOrEqual(decimal.Zero) {
			milestones = append(milestones, fmt.Sprintf("Mortgage paid off: %d (%s age %d)",
				y.CalendarYear, cfg.PersonA.Name, y.AgeA))
			break
		}
	}

	milestones = append(milestones, fmt.Sprintf(
		"Lifetime totals: Income earned %s, Tax paid %s, Super contributed %s, Expenses %s",
		FormatCurrency(forecast.Summary.TotalIncomeEarned),
		FormatCurrency(forecast.Summary.TotalTaxPaid),
		FormatCurrency(forecast.Summary.TotalSuperContributed),
		FormatCurrency(forecast.Summary.TotalExpenses)))
	return milestones
}
