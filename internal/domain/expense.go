package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Frequency is the cadence an expense amount is quoted at.
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Fortnightly Frequency = "fortnightly"
	Monthly     Frequency = "monthly"
	Annual      Frequency = "annual"
)

// Valid reports whether the frequency is one of the supported cadences.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Fortnightly, Monthly, Annual:
		return true
	}
	return false
}

// Well-known IDs for engine-synthesized expense items. These are kept in sync
// with their source (mortgage terms, children) by the normalization pass.
const (
	MortgageExpenseID        = "mortgage-auto"
	MortgageExtraExpenseID   = "mortgage-extra-auto"
	EducationExpenseIDPrefix = "education-auto-"
)

// ExpenseItem is a recurring household expense split between the two
// partners. Proportions need not sum to 100; they are normalized at read
// time, and a 0/0 pair means an even split.
type ExpenseItem struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Category    string          `yaml:"category" json:"category"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency   Frequency       `yaml:"frequency" json:"frequency"`
	ProportionA decimal.Decimal `yaml:"proportion_a" json:"proportion_a"`
	ProportionB decimal.Decimal `yaml:"proportion_b" json:"proportion_b"`
}

// IsMortgage reports whether the item is one of the synthesized mortgage
// payment items.
func (e ExpenseItem) IsMortgage() bool {
	return e.ID == MortgageExpenseID || e.ID == MortgageExtraExpenseID
}

// IsEducation reports whether the item is a synthesized per-child education
// fee item.
func (e ExpenseItem) IsEducation() bool {
	return strings.HasPrefix(e.ID, EducationExpenseIDPrefix)
}

// IsDependant reports whether the item is the general "children" living-cost
// item, which lapses once no child remains in school.
func (e ExpenseItem) IsDependant() bool {
	return strings.EqualFold(e.Name, "children") && !e.IsEducation()
}
