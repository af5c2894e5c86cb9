package domain

// DefaultAnnualInterestRate is the fixed yearly rate applied to every
// application (10%).
const DefaultAnnualInterestRate = 0.10

// LoanTerms holds the process-wide pricing parameters.
type LoanTerms struct {
	AnnualInterestRate float64
}

// DefaultLoanTerms is the only pricing this calculator offers.
var DefaultLoanTerms = LoanTerms{AnnualInterestRate: DefaultAnnualInterestRate}

// ApplicantInput is the raw form submission. It is never persisted as is.
type ApplicantInput struct {
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	MonthlyIncome float64 `json:"monthly_income"`
	LoanAmount    float64 `json:"loan_amount"`
	LoanTermYears int     `json:"loan_term_years"`
}

// ComputationResult is derived from an ApplicantInput and LoanTerms.
// Monetary values are rounded to 2 decimals.
type ComputationResult struct {
	EMI           float64      `json:"emi"`
	TotalInterest float64      `json:"total_interest"`
	TotalPayment  float64      `json:"total_payment"`
	RiskCategory  RiskCategory `json:"risk_category"`
}
