package service

import (
	"math"
	"strings"

	"loan-eligibility/domain"
)

// Validation messages.
const (
	MsgNameEmpty             = "name empty"
	MsgAgeBelowMinimum       = "age below minimum"
	MsgIncomeNotPositive     = "income not positive"
	MsgLoanAmountNotPositive = "loan amount not positive"
	MsgLoanTermNotPositive   = "loan term not positive"
	MsgLoanAmountUnrealistic = "loan amount unrealistic relative to income"
	MsgIncomeNotFinite       = "income not finite"
	MsgLoanAmountNotFinite   = "loan amount not finite"
)

// ValidationError is one failed input check.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// Validate runs every input check and returns all violations. An empty
// result means the input may proceed to the eligibility gate.
func Validate(input domain.ApplicantInput) []ValidationError {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if strings.TrimSpace(input.Name) == "" {
		add("name", MsgNameEmpty)
	}
	if input.Age < MinApplicantAge {
		add("age", MsgAgeBelowMinimum)
	}

	if isNonFinite(input.MonthlyIncome) {
		add("monthly_income", MsgIncomeNotFinite)
	}
	// Written as !(x > 0) so NaN is rejected too.
	if !(input.MonthlyIncome > 0) {
		add("monthly_income", MsgIncomeNotPositive)
	}

	if isNonFinite(input.LoanAmount) {
		add("loan_amount", MsgLoanAmountNotFinite)
	}
	if !(input.LoanAmount > 0) {
		add("loan_amount", MsgLoanAmountNotPositive)
	}

	if input.LoanTermYears < 1 {
		add("loan_term_years", MsgLoanTermNotPositive)
	}

	if input.LoanAmount > input.MonthlyIncome*MonthsPerYear*MaxLoanIncomeYears {
		add("loan_amount", MsgLoanAmountUnrealistic)
	}

	return errs
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// CheckFormBounds applies the input form's clamps (age 18-70, term 1-30
// years, non-negative amounts). It is a presentation concern kept separate
// from Validate.
func CheckFormBounds(input domain.ApplicantInput) []ValidationError {
	var errs []ValidationError
	if input.Age < FormMinAge || input.Age > FormMaxAge {
		errs = append(errs, ValidationError{Field: "age", Message: "age must be between 18 and 70"})
	}
	if input.LoanTermYears < FormMinTermYear || input.LoanTermYears > FormMaxTermYear {
		errs = append(errs, ValidationError{Field: "loan_term_years", Message: "loan term must be between 1 and 30 years"})
	}
	if input.MonthlyIncome < 0 {
		errs = append(errs, ValidationError{Field: "monthly_income", Message: "monthly income cannot be negative"})
	}
	if input.LoanAmount < 0 {
		errs = append(errs, ValidationError{Field: "loan_amount", Message: "loan amount cannot be negative"})
	}
	return errs
}
