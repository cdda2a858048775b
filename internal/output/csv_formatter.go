package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter exports the full projection, one row per year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "CalendarYear", "AgeA", "AgeB",
		"GrossIncomeA", "GrossIncomeB", "CombinedGrossIncome",
		"TaxA", "TaxB", "CombinedTax",
		"SuperA", "SuperB", "CombinedSuper",
		"AfterTaxA", "AfterTaxB", "CombinedAfterTax",
		"CombinedExpenses", "EducationExpenses", "RegularExpenses", "MortgageExpenses", "DependantExpenses",
		"CombinedSplurge", "AutoInvested", "SuperDrawdown", "PortfolioDrawdown",
		"CumulativeSavings",
		"SuperBalanceA", "SuperBalanceB", "TotalSuperBalance",
		"PortfolioValue", "TotalCarValue", "OtherAssetsValue", "MortgageBalance",
		"TotalNetWorth",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range report.Forecast.Projections {
		row := []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.CalendarYear),
			strconv.Itoa(p.AgeA),
			strconv.Itoa(p.AgeB),
			p.GrossIncomeA.StringFixed(2),
			p.GrossIncomeB.StringFixed(2),
			p.CombinedGrossIncome.StringFixed(2),
			p.TaxA.StringFixed(2),
			p.TaxB.StringFixed(2),
			p.CombinedTax.StringFixed(2),
			p.SuperA.StringFixed(2),
			p.SuperB.StringFixed(2),
			p.CombinedSuper.StringFixed(2),
			p.AfterTaxA.StringFixed(2),
			p.AfterTaxB.StringFixed(2),
			p.CombinedAfterTax.StringFixed(2),
			p.CombinedExpenses.StringFixed(2),
			p.EducationExpenses.StringFixed(2),
			p.RegularExpenses.StringFixed(2),
			p.MortgageExpenses.StringFixed(2),
			p.DependantExpenses.StringFixed(2),
			p.CombinedSplurge.StringFixed(2),
			p.AutoInvested.StringFixed(2),
			p.SuperDrawdown.StringFixed(2),
			p.PortfolioDrawdown.StringFixed(2),
			p.CumulativeSavings.StringFixed(2),
			p.SuperBalanceA.StringFixed(2),
			p.SuperBalanceB.StringFixed(2),
			p.TotalSuperBalance.StringFixed(2),
			p.PortfolioValue.StringFixed(2),
			p.TotalCarValue.StringFixed(2),
			p.OtherAssetsValue.StringFixed(2),
			p.MortgageBalance.StringFixed(2),
			p.TotalNetWorth.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
