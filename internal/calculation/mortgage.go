package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
)

// PeriodicPayment returns the fixed payment for an amortizing loan via the
// annuity formula PMT = P * r(1+r)^n / ((1+r)^n - 1). A zero periodic rate
// degenerates to principal / periods.
func PeriodicPayment(principal, annualRatePercent decimal.Decimal, termYears, paymentsPerYear int) decimal.Decimal {
	periods := int64(termYears) * int64(paymentsPerYear)
	if periods <= 0 {
		return decimal.Zero
	}

	rate := periodicRate(annualRatePercent, paymentsPerYear)
	if rate.IsZero() {
		return principal.Div(decimal.NewFromInt(periods))
	}

	factor := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(periods))
	return principal.Mul(rate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
}

// ProjectBalance advances a loan balance through the given number of payment
// periods. The iteration is deliberate: an extra per-period payment breaks
// the closed-form geometric solution. The balance is clamped at zero and the
// loop exits early at payoff.
func ProjectBalance(balance, payment, rate decimal.Decimal, periods int, extraPerPeriod decimal.Decimal) decimal.Decimal {
	for i := 0; i < periods; i++ {
		if balance.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero
		}
		interest := balance.Mul(rate)
		principal := payment.Sub(interest).Add(extraPerPeriod)
		balance = balance.Sub(principal)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
	}
	return balance
}

// RemainingBalance projects a mortgage forward from its original loan amount
// by a number of elapsed years, honoring any configured extra payment.
func RemainingBalance(m domain.Mortgage, yearsElapsed int) decimal.Decimal {
	payment := PeriodicPayment(m.LoanAmount, m.InterestRate, m.LoanTermYears, m.PaymentsPerYear)
	rate := periodicRate(m.InterestRate, m.PaymentsPerYear)
	return ProjectBalance(m.LoanAmount, payment, rate, yearsElapsed*m.PaymentsPerYear, m.ExtraPerPeriod())
}

func periodicRate(annualRatePercent decimal.Decimal, paymentsPerYear int) decimal.Decimal {
	if paymentsPerYear <= 0 {
		return decimal.Zero
	}
	return annualRatePercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(paymentsPerYear)))
}
