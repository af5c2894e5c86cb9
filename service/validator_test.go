package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-eligibility/domain"
)

func validInput() domain.ApplicantInput {
	return domain.ApplicantInput{
		Name:          "Asha Rao",
		Age:           30,
		MonthlyIncome: 50000,
		LoanAmount:    500000,
		LoanTermYears: 5,
	}
}

func messages(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, Validate(validInput()))
}

func TestValidate_SingleViolations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.ApplicantInput)
		expected string
	}{
		{"blank name", func(in *domain.ApplicantInput) { in.Name = "   " }, MsgNameEmpty},
		{"age 20", func(in *domain.ApplicantInput) { in.Age = 20 }, MsgAgeBelowMinimum},
		{"loan term zero", func(in *domain.ApplicantInput) { in.LoanTermYears = 0 }, MsgLoanTermNotPositive},
		{"loan over two years income", func(in *domain.ApplicantInput) { in.LoanAmount = 1200000.01 }, MsgLoanAmountUnrealistic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			assert.Equal(t, []string{tt.expected}, messages(Validate(in)))
		})
	}
}

func TestValidate_LoanAtTwoYearsIncomeAllowed(t *testing.T) {
	in := validInput()
	in.LoanAmount = in.MonthlyIncome * 24

	assert.Empty(t, Validate(in))
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	in := domain.ApplicantInput{
		Name:          "",
		Age:           19,
		MonthlyIncome: 0,
		LoanAmount:    0,
		LoanTermYears: 0,
	}

	assert.Equal(t, []string{
		MsgNameEmpty,
		MsgAgeBelowMinimum,
		MsgIncomeNotPositive,
		MsgLoanAmountNotPositive,
		MsgLoanTermNotPositive,
	}, messages(Validate(in)))
}

func TestValidate_NegativeIncomeMakesAnyLoanUnrealistic(t *testing.T) {
	in := validInput()
	in.MonthlyIncome = -1

	assert.Equal(t, []string{MsgIncomeNotPositive, MsgLoanAmountUnrealistic}, messages(Validate(in)))
}

func TestValidate_NonFinite(t *testing.T) {
	in := validInput()
	in.MonthlyIncome = math.NaN()
	in.LoanAmount = math.Inf(1)

	got := messages(Validate(in))

	assert.Contains(t, got, MsgIncomeNotFinite)
	assert.Contains(t, got, MsgIncomeNotPositive)
	assert.Contains(t, got, MsgLoanAmountNotFinite)
}

func TestCheckFormBounds(t *testing.T) {
	in := validInput()
	in.Age = 18
	assert.Empty(t, CheckFormBounds(in), "18 is admissible on the form")
	assert.NotEmpty(t, Validate(in), "but rejected by validation")

	in = validInput()
	in.Age = 71
	in.LoanTermYears = 31
	in.LoanAmount = -5

	errs := CheckFormBounds(in)
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.Equal(t, []string{"age", "loan_term_years", "loan_amount"}, fields)
}
