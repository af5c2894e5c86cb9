package service

const (
	MinApplicantAge    = 21
	MinMonthlyIncome   = 25000.0
	MaxLoanIncomeYears = 2  // loan may not exceed this many years of gross income
	MonthsPerYear      = 12 // also the compounding periods per year
	RoundingTolerance  = 0.01

	// Bounds enforced by the input form before validation runs. The form
	// accepts ages the business rules later reject.
	FormMinAge      = 18
	FormMaxAge      = 70
	FormMinTermYear = 1
	FormMaxTermYear = 30

	BaseRiskScore       = 100
	LowRiskThreshold    = 75
	MediumRiskThreshold = 50
)
