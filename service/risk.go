package service

import (
	"loan-eligibility/domain"
)

// RiskAssessment exposes the intermediate figures behind a category.
type RiskAssessment struct {
	Score    int                 `json:"score"`
	DTI      float64             `json:"dti"`
	LTI      float64             `json:"lti"`
	Category domain.RiskCategory `json:"category"`
}

// ScoreRisk runs the penalty model. It recomputes the installment without
// rounding so category boundaries do not move with display precision.
func ScoreRisk(age int, monthlyIncome, loanAmount float64, termYears int, annualRate float64) RiskAssessment {
	score := BaseRiskScore

	emi := monthlyPayment(loanAmount, annualRate, termYears)
	dti := emi / monthlyIncome
	switch {
	case dti > 0.5:
		score -= 60
	case dti > 0.4:
		score -= 40
	case dti > 0.3:
		score -= 20
	}

	lti := loanAmount / (monthlyIncome * MonthsPerYear)
	switch {
	case lti > 2:
		score -= 30
	case lti > 1:
		score -= 15
	}

	switch {
	case age < MinApplicantAge:
		score -= 40
	case age < 25:
		score -= 10
	case age > 60:
		score -= 20
	}

	score = max(0, min(score, BaseRiskScore))

	return RiskAssessment{
		Score:    score,
		DTI:      dti,
		LTI:      lti,
		Category: categoryFor(score),
	}
}

// AssessRisk returns only the category of ScoreRisk.
func AssessRisk(age int, monthlyIncome, loanAmount float64, termYears int, annualRate float64) domain.RiskCategory {
	return ScoreRisk(age, monthlyIncome, loanAmount, termYears, annualRate).Category
}

func categoryFor(score int) domain.RiskCategory {
	switch {
	case score >= LowRiskThreshold:
		return domain.RiskLow
	case score >= MediumRiskThreshold:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}
