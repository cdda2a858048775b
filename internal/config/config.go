package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/andiescott-hub/personal-finance-calculator/internal/calculation"
	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
	"github.com/andiescott-hub/personal-finance-calculator/pkg/finyear"
)

// Parser handles loading, validation and normalization of forecast
// configuration files.
type Parser struct{}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	return &Parser{}
}

// LoadFromFile loads a configuration from a YAML file, validates it and
// synthesizes the derived expense items.
func (p *Parser) LoadFromFile(filename string) (*domain.ForecastConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var cfg domain.ForecastConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := p.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	p.Normalize(&cfg)
	return &cfg, nil
}

// Validate checks the configuration for values the engine cannot work with.
func (p *Parser) Validate(cfg *domain.ForecastConfig) error {
	if err := p.validatePerson("person_a", cfg.PersonA); err != nil {
		return err
	}
	if err := p.validatePerson("person_b", cfg.PersonB); err != nil {
		return err
	}

	if _, err := finyear.StartYear(cfg.FinancialYear); err != nil {
		return err
	}

	if cfg.AnnualInflationRate.LessThan(decimal.NewFromInt(-10)) {
		return fmt.Errorf("annual inflation rate cannot be less than -10%%")
	}

	for i, item := range cfg.Expenses {
		if !item.Frequency.Valid() {
			return fmt.Errorf("expense %d (%s): unsupported frequency %q", i, item.Name, item.Frequency)
		}
		if item.Amount.IsNegative() {
			return fmt.Errorf("expense %d (%s): amount cannot be negative", i, item.Name)
		}
		if item.ProportionA.IsNegative() || item.ProportionB.IsNegative() {
			return fmt.Errorf("expense %d (%s): proportions cannot be negative", i, item.Name)
		}
	}

	if err := p.validateAssets(cfg.Assets); err != nil {
		return err
	}

	for i, child := range cfg.Children {
		if child.ID == "" {
			return fmt.Errorf("child %d (%s): id is required", i, child.Name)
		}
		if child.CurrentYear <= 0 {
			return fmt.Errorf("child %d (%s): current year is required", i, child.Name)
		}
	}

	return nil
}

func (p *Parser) validatePerson(label string, person domain.Person) error {
	if person.CurrentAge <= 0 {
		return fmt.Errorf("%s: current age must be positive", label)
	}
	if person.RetirementAge <= 0 {
		return fmt.Errorf("%s: retirement age must be positive", label)
	}
	if person.Income.BaseSalary.IsNegative() {
		return fmt.Errorf("%s: base salary cannot be negative", label)
	}
	if person.VoluntarySuperRate.IsNegative() {
		return fmt.Errorf("%s: voluntary super rate cannot be negative", label)
	}
	if person.PortfolioContribution.IsNegative() {
		return fmt.Errorf("%s: portfolio contribution cannot be negative", label)
	}
	return nil
}

func (p *Parser) validateAssets(assets domain.Assets) error {
	if assets.SuperBalanceA.IsNegative() || assets.SuperBalanceB.IsNegative() {
		return fmt.Errorf("super balances cannot be negative")
	}
	if assets.PortfolioValue.IsNegative() {
		return fmt.Errorf("portfolio value cannot be negative")
	}
	if assets.SuperDrawdownRatio.IsNegative() || assets.SuperDrawdownRatio.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("super drawdown ratio must be between 0 and 100")
	}

	m := assets.Mortgage
	if m.LoanAmount.IsPositive() {
		switch m.PaymentsPerYear {
		case 12, 26, 52:
		default:
			return fmt.Errorf("mortgage payments per year must be 12, 26 or 52")
		}
		if m.LoanTermYears <= 0 {
			return fmt.Errorf("mortgage loan term must be positive")
		}
		if m.InterestRate.IsNegative() {
			return fmt.Errorf("mortgage interest rate cannot be negative")
		}
	}

	return nil
}

// Normalize fills in derived state: the running mortgage balance, the
// aggregate portfolio value, and the synthesized expense items that mirror
// the mortgage terms and each child's current school fees. It is idempotent.
func (p *Parser) Normalize(cfg *domain.ForecastConfig) {
	if cfg.Assets.Mortgage.CurrentBalance.IsZero() {
		cfg.Assets.Mortgage.CurrentBalance = cfg.Assets.Mortgage.LoanAmount
	}

	if len(cfg.Assets.PortfolioItems) > 0 {
		cfg.Assets.PortfolioValue = cfg.Assets.TotalPortfolioItemValue()
	}

	p.syncMortgageExpenses(cfg)
	p.syncEducationExpenses(cfg)
}

// syncMortgageExpenses keeps the two synthesized mortgage expense items in
// step with the loan terms. Any hand-entered housing expense mentioning the
// mortgage is dropped so payments are never double-counted.
func (p *Parser) syncMortgageExpenses(cfg *domain.ForecastConfig) {
	if !cfg.Assets.Mortgage.LoanAmount.IsPositive() {
		return
	}

	monthlyPayment := calculation.PeriodicPayment(
		cfg.Assets.Mortgage.LoanAmount,
		cfg.Assets.Mortgage.InterestRate,
		cfg.Assets.Mortgage.LoanTermYears,
		cfg.Assets.Mortgage.PaymentsPerYear,
	)

	upsertExpense(cfg, domain.ExpenseItem{
		ID:          domain.MortgageExpenseID,
		Name:        "Mortgage Payment",
		Category:    "Housing",
		Amount:      monthlyPayment,
		Frequency:   domain.Monthly,
		ProportionA: decimal.NewFromInt(50),
		ProportionB: decimal.NewFromInt(50),
	})

	if cfg.Assets.Mortgage.ExtraMonthlyPayment.IsPositive() {
		upsertExpense(cfg, domain.ExpenseItem{
			ID:          domain.MortgageExtraExpenseID,
			Name:        "Extra Mortgage Payment",
			Category:    "Housing",
			Amount:      cfg.Assets.Mortgage.ExtraMonthlyPayment,
			Frequency:   domain.Monthly,
			ProportionA: decimal.NewFromInt(50),
			ProportionB: decimal.NewFromInt(50),
		})
	} else {
		removeExpense(cfg, domain.MortgageExtraExpenseID)
	}

	kept := cfg.Expenses[:0]
	for _, item := range cfg.Expenses {
		duplicate := !item.IsMortgage() &&
			item.Category == "Housing" &&
			strings.Contains(strings.ToLower(item.Name), "mortgage")
		if !duplicate {
			kept = append(kept, item)
		}
	}
	cfg.Expenses = kept
}

// syncEducationExpenses maintains one expense item per child currently in
// school, priced at this year's inflated fee. These items feed the expense
// views; the forecast engine reprices fees per projected year itself.
func (p *Parser) syncEducationExpenses(cfg *domain.ForecastConfig) {
	currentYear, err := finyear.StartYear(cfg.FinancialYear)
	if err != nil {
		return
	}

	valid := make(map[string]bool, len(cfg.Children))
	for _, child := range cfg.Children {
		id := domain.EducationExpenseIDPrefix + child.ID
		level := child.YearLevelIn(currentYear)
		baseFee := cfg.EducationFees.FeeForYearLevel(level)

		if !baseFee.IsPositive() {
			removeExpense(cfg, id)
			continue
		}
		valid[id] = true

		inflation := decimal.NewFromInt(1).Add(cfg.AnnualInflationRate.Div(decimal.NewFromInt(100))).
			Pow(decimal.NewFromInt(int64(currentYear - cfg.EducationFees.BaseYear)))
		monthlyFee := baseFee.Mul(inflation).Div(decimal.NewFromInt(12))

		upsertExpense(cfg, domain.ExpenseItem{
			ID:          id,
			Name:        fmt.Sprintf("%s - %s Education", child.Name, domain.YearLevelLabel(level)),
			Category:    "Education",
			Amount:      monthlyFee,
			Frequency:   domain.Monthly,
			ProportionA: decimal.NewFromInt(50),
			ProportionB: decimal.NewFromInt(50),
		})
	}

	kept := cfg.Expenses[:0]
	for _, item := range cfg.Expenses {
		if item.IsEducation() && !valid[item.ID] {
			continue
		}
		kept = append(kept, item)
	}
	cfg.Expenses = kept
}

func upsertExpense(cfg *domain.ForecastConfig, item domain.ExpenseItem) {
	for i, existing := range cfg.Expenses {
		if existing.ID == item.ID {
			// Preserve a hand-tuned split; everything else follows the source.
			item.ProportionA = existing.ProportionA
			item.ProportionB = existing.ProportionB
			cfg.Expenses[i] = item
			return
		}
	}
	cfg.Expenses = append(cfg.Expenses, item)
}

func removeExpense(cfg *domain.ForecastConfig, id string) {
	for i, existing := range cfg.Expenses {
		if existing.ID == id {
			cfg.Expenses = append(cfg.Expenses[:i], cfg.Expenses[i+1:]...)
			return
		}
	}
}

// ExampleConfig returns a fully-populated configuration for a two-earner
// household, suitable as a starting template.
func ExampleConfig() *domain.ForecastConfig {
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
			{
				ID:          "groceries",
				Name:        "Groceries",
				Category:    "Food",
				Amount:      decimal.NewFromInt(300),
				Frequency:   domain.Weekly,
				ProportionA: decimal.NewFromInt(50),
				ProportionB: decimal.NewFromInt(50),
			},
			{
				ID:          "utilities",
				Name:        "Utilities",
				Category:    "Bills",
				Amount:      decimal.NewFromInt(400),
				Frequency:   domain.Monthly,
				ProportionA: decimal.NewFromInt(55),
				ProportionB: decimal.NewFromInt(45),
			},
		},
		Assets: domain.Assets{
			SuperBalanceA:       decimal.NewFromInt(150000),
			SuperBalanceB:       decimal.NewFromInt(120000),
			SuperGrowthRate:     decimal.NewFromInt(7),
			PortfolioValue:      decimal.NewFromInt(50000),
			PortfolioGrowthRate: decimal.NewFromInt(7),
			PortfolioItems: []domain.PortfolioItem{
				{ID: "1", Name: "General Portfolio", Value: decimal.NewFromInt(50000)},
			},
			Cars: []domain.Car{
				{ID: "1", Name: "Car 1", CurrentValue: decimal.NewFromInt(25000), AnnualDepreciation: decimal.NewFromInt(15)},
			},
			Mortgage: domain.Mortgage{
				LoanAmount:      decimal.NewFromInt(500000),
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
