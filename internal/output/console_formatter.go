package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
)

// ConsoleFormatter renders a concise plain-text summary with a year-by-year
// table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	cfg := report.Config

	fmt.Fprintln(&buf, "HOUSEHOLD FINANCIAL FORECAST")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "%s: age %d, retires at %d\n", cfg.PersonA.Name, cfg.PersonA.CurrentAge, cfg.PersonA.RetirementAge)
	fmt.Fprintf(&buf, "%s: age %d, retires at %d\n", cfg.PersonB.Name, cfg.PersonB.CurrentAge, cfg.PersonB.RetirementAge)
	for _, child := range cfg.Children {
		fmt.Fprintf(&buf, "Child: %s, %s in %d\n", child.Name, domain.YearLevelLabel(child.CurrentYearLevel), child.CurrentYear)
	}
	fmt.Fprintln(&buf)

	hh := report.Household
	fmt.Fprintf(&buf, "Current income (FY %s):\n", cfg.FinancialYear)
	fmt.Fprintf(&buf, "  %s: taxable %s, tax %s (%s), after-tax %s, super %s\n",
		cfg.PersonA.Name,
		FormatCurrency(hh.PersonA.GrossIncome),
		FormatCurrency(hh.PersonA.Tax.TotalTax),
		FormatPercentage(hh.PersonA.Tax.EffectiveTaxRate),
		FormatCurrency(hh.PersonA.AfterTaxIncome),
		FormatCurrency(hh.PersonA.Super.TotalContribution))
	fmt.Fprintf(&buf, "  %s: taxable %s, tax %s (%s), after-tax %s, super %s\n",
		cfg.PersonB.Name,
		FormatCurrency(hh.PersonB.GrossIncome),
		FormatCurrency(hh.PersonB.Tax.TotalTax),
		FormatPercentage(hh.PersonB.Tax.EffectiveTaxRate),
		FormatCurrency(hh.PersonB.AfterTaxIncome),
		FormatCurrency(hh.PersonB.Super.TotalContribution))
	fmt.Fprintf(&buf, "  Combined: gross %s, tax %s, after-tax %s\n",
		FormatCurrency(hh.CombinedGross),
		FormatCurrency(hh.CombinedTax),
		FormatCurrency(hh.CombinedAfterTax))
	fmt.Fprintln(&buf)

	summary := report.Forecast.Summary
	fmt.Fprintf(&buf, "Projection: %d years\n", summary.TotalYears)
	fmt.Fprintf(&buf, "  Lifetime income: %s, tax: %s, super contributed: %s, expenses: %s\n",
		FormatCurrency(summary.TotalIncomeEarned),
		FormatCurrency(summary.TotalTaxPaid),
		FormatCurrency(summary.TotalSuperContributed),
		FormatCurrency(summary.TotalExpenses))
	if final := report.Forecast.FinalProjection(); final != nil {
		fmt.Fprintf(&buf, "  Final net worth (%d): %s\n", final.CalendarYear, FormatCurrency(final.TotalNetWorth))
	}
	fmt.Fprintln(&buf)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Year\tAges\tGross\tTax\tAfter-Tax\tExpenses\tSplurge\tSuper\tPortfolio\tMortgage\tNet Worth")
	for _, p := range report.Forecast.Projections {
		fmt.Fprintf(tw, "%d\t%d/%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.CalendarYear,
			p.AgeA, p.AgeB,
			FormatCurrency(p.CombinedGrossIncome),
			FormatCurrency(p.CombinedTax),
			FormatCurrency(p.CombinedAfterTax),
			FormatCurrency(p.CombinedExpenses),
			FormatCurrency(p.CombinedSplurge),
			FormatCurrency(p.TotalSuperBalance),
			FormatCurrency(p.PortfolioValue),
			FormatCurrency(p.MortgageBalance),
			FormatCurrency(p.TotalNetWorth))
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
