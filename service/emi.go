package service

import (
	"math"
)

// EMIResult holds the rounded figures shown to the applicant and stored.
type EMIResult struct {
	EMI           float64
	TotalInterest float64
	TotalPayment  float64
}

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// monthlyPayment is the unrounded installment. A zero rate splits the
// principal evenly.
func monthlyPayment(principal, annualRate float64, termYears int) float64 {
	n := float64(termYears * MonthsPerYear)
	r := annualRate / MonthsPerYear
	if r == 0 {
		return principal / n
	}
	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}

// ComputeEMI amortizes principal over termYears at annualRate.
// The installment is rounded first and the totals are derived from the
// rounded installment, so TotalPayment == EMI*n exactly up to rounding.
func ComputeEMI(principal, annualRate float64, termYears int) EMIResult {
	months := float64(termYears * MonthsPerYear)

	emi := roundTo2Decimals(monthlyPayment(principal, annualRate, termYears))
	if annualRate == 0 {
		return EMIResult{
			EMI:           emi,
			TotalInterest: 0,
			TotalPayment:  roundTo2Decimals(principal),
		}
	}

	return EMIResult{
		EMI:           emi,
		TotalPayment:  roundTo2Decimals(emi * months),
		TotalInterest: roundTo2Decimals(emi*months - principal),
	}
}
