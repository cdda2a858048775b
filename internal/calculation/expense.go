package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
)

// Cadence conversion pivots on fortnights: 26 per year, 2 weeks each,
// 12/26 months each. Converting through the pivot keeps weekly, fortnightly,
// monthly and annual views mutually consistent.

var (
	two          = decimal.NewFromInt(2)
	twelve       = decimal.NewFromInt(12)
	twentySix    = decimal.NewFromInt(26)
	oneHundred   = decimal.NewFromInt(100)
	half         = decimal.NewFromFloat(0.5)
	decimalOne   = decimal.NewFromInt(1)
	fortnightsPM = twelve.Div(twentySix) // months per fortnight
)

func toFortnightly(amount decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	switch freq {
	case domain.Weekly:
		return amount.Mul(two)
	case domain.Fortnightly:
		return amount
	case domain.Monthly:
		return amount.Mul(fortnightsPM)
	case domain.Annual:
		return amount.Div(twentySix)
	}
	return decimal.Zero
}

// ExpenseBreakdown is one expense item restated per fortnight and split
// between the two partners.
type ExpenseBreakdown struct {
	Item        domain.ExpenseItem `json:"item"`
	Fortnightly decimal.Decimal    `json:"fortnightly"`
	ShareA      decimal.Decimal    `json:"share_a"`
	ShareB      decimal.Decimal    `json:"share_b"`
}

// CadenceTotals carries the household split at one cadence.
type CadenceTotals struct {
	A        decimal.Decimal `json:"a"`
	B        decimal.Decimal `json:"b"`
	Combined decimal.Decimal `json:"combined"`
}

// ExpenseSummary restates a set of expense items at every cadence the
// household plans at. All three cadence views derive from the same
// fortnightly totals, so they always agree.
type ExpenseSummary struct {
	Breakdowns  []ExpenseBreakdown `json:"breakdowns"`
	Fortnightly CadenceTotals      `json:"fortnightly"`
	Monthly     CadenceTotals      `json:"monthly"`
	Annual      CadenceTotals      `json:"annual"`
}

// splitProportions normalizes an item's proportion pair to fractions that sum
// to one. A 0/0 pair means an even split.
func splitProportions(a, b decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	total := a.Add(b)
	if total.IsZero() {
		return half, half
	}
	return a.Div(total), b.Div(total)
}

// SummarizeExpenses converts each item to a fortnightly amount, splits it by
// the configured proportions, and totals the result at fortnightly, monthly
// and annual cadence.
func SummarizeExpenses(items []domain.ExpenseItem) ExpenseSummary {
	summary := ExpenseSummary{Breakdowns: make([]ExpenseBreakdown, 0, len(items))}

	for _, item := range items {
		fortnightly := toFortnightly(item.Amount, item.Frequency)
		fracA, fracB := splitProportions(item.ProportionA, item.ProportionB)
		shareA := fortnightly.Mul(fracA)
		shareB := fortnightly.Mul(fracB)

		summary.Breakdowns = append(summary.Breakdowns, ExpenseBreakdown{
			Item:        item,
			Fortnightly: fortnightly,
			ShareA:      shareA,
			ShareB:      shareB,
		})

		summary.Fortnightly.A = summary.Fortnightly.A.Add(shareA)
		summary.Fortnightly.B = summary.Fortnightly.B.Add(shareB)
		summary.Fortnightly.Combined = summary.Fortnightly.Combined.Add(fortnightly)
	}

	summary.Monthly = summary.Fortnightly.scale(twentySix.Div(twelve))
	summary.Annual = summary.Fortnightly.scale(twentySix)
	return summary
}

func (ct CadenceTotals) scale(factor decimal.Decimal) CadenceTotals {
	return CadenceTotals{
		A:        ct.A.Mul(factor),
		B:        ct.B.Mul(factor),
		Combined: ct.Combined.Mul(factor),
	}
}
