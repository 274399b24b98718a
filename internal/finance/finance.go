// Package finance estimates monthly ownership cost for the digest.
//
// The assumptions are deliberately fixed rather than configurable: the
// estimate exists to make listings comparable at a glance, not to quote a
// lender.
package finance

import (
	"fmt"
	"math"
)

// Fixed assumptions behind every estimate.
const (
	DownPaymentPercent = 0.20  // 20% down
	InterestRate       = 0.07  // 7% annual, 30-year fixed
	LoanTermYears      = 30
	PropertyTaxRate    = 0.022 // 2.2%/year, Travis County average
	AnnualInsurance    = 2000  // dollars/year
)

// DownPayment returns the assumed down payment for a price.
func DownPayment(price float64) float64 {
	return price * DownPaymentPercent
}

// LoanAmount returns the financed principal after the down payment.
func LoanAmount(price float64) float64 {
	return price * (1 - DownPaymentPercent)
}

// MonthlyPI returns the monthly principal-and-interest payment using the
// standard amortization formula M = P * r(1+r)^n / ((1+r)^n - 1).
func MonthlyPI(price float64) float64 {
	principal := LoanAmount(price)
	monthlyRate := InterestRate / 12
	numPayments := float64(LoanTermYears * 12)

	if monthlyRate == 0 {
		return principal / numPayments
	}

	growth := math.Pow(1+monthlyRate, numPayments)
	return principal * (monthlyRate * growth) / (growth - 1)
}

// MonthlyTax returns the monthly property tax estimate.
func MonthlyTax(price float64) float64 {
	return price * PropertyTaxRate / 12
}

// MonthlyInsurance returns the monthly insurance estimate.
func MonthlyInsurance() float64 {
	return AnnualInsurance / 12.0
}

// TotalMonthly returns the full PITI estimate: principal, interest,
// property tax, and insurance. No PMI with 20% down.
func TotalMonthly(price float64) float64 {
	return MonthlyPI(price) + MonthlyTax(price) + MonthlyInsurance()
}

// AssumptionsText renders the assumptions for the digest footer.
func AssumptionsText() string {
	return fmt.Sprintf(`- Down payment: %d%%
- Interest rate: %.1f%% (30-year fixed)
- Property tax: %.1f%%/year (Travis County avg)
- Insurance: $%d/year
- Monthly = P&I + Tax + Insurance (no PMI with 20%% down)`,
		int(DownPaymentPercent*100), InterestRate*100, PropertyTaxRate*100, AnnualInsurance)
}
