package service

const (
	ReasonAgeTooLow    = "age must be ≥ 21"
	ReasonIncomeTooLow = "income must be ≥ 25000"
)

// CheckEligibility applies the admission rules. Both rules are always
// evaluated so every applicable reason is returned.
func CheckEligibility(age int, monthlyIncome float64) (bool, []string) {
	var reasons []string

	if age < MinApplicantAge {
		reasons = append(reasons, ReasonAgeTooLow)
	}
	if !(monthlyIncome >= MinMonthlyIncome) {
		reasons = append(reasons, ReasonIncomeTooLow)
	}

	return len(reasons) == 0, reasons
}
