package domain

// ApplicationRecord is one persisted, eligible application: the applicant
// input plus its computed result, keyed by a store-assigned id.
type ApplicationRecord struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Age           int          `json:"age"`
	MonthlyIncome float64      `json:"monthly_income"`
	LoanAmount    float64      `json:"loan_amount"`
	LoanTermYears int          `json:"loan_term_years"`
	EMI           float64      `json:"emi"`
	TotalInterest float64      `json:"total_interest"`
	TotalPayment  float64      `json:"total_payment"`
	RiskCategory  RiskCategory `json:"risk_category"`
}

// NewApplicationRecord joins an input and its result. ID is left zero for the
// store to assign.
func NewApplicationRecord(input ApplicantInput, result ComputationResult) ApplicationRecord {
	return ApplicationRecord{
		Name:          input.Name,
		Age:           input.Age,
		MonthlyIncome: input.MonthlyIncome,
		LoanAmount:    input.LoanAmount,
		LoanTermYears: input.LoanTermYears,
		EMI:           result.EMI,
		TotalInterest: result.TotalInterest,
		TotalPayment:  result.TotalPayment,
		RiskCategory:  result.RiskCategory,
	}
}

// RecordMetrics summarises the stored records for the admin view.
type RecordMetrics struct {
	TotalApplicants   int                `json:"total_applicants"`
	TotalLoanAmount   float64            `json:"total_loan_amount"`
	AverageLoanAmount float64            `json:"average_loan_amount"`
	Distribution      []LoanDistribution `json:"distribution"`
}

// LoanDistribution is one bar of the loan-by-applicant chart.
type LoanDistribution struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	LoanAmount float64 `json:"loan_amount"`
}
