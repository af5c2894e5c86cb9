package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-eligibility/domain"
)

type MockRecordRepository struct {
	AppendCalled bool
	ForceError   bool
	Saved        []domain.ApplicationRecord
}

func (m *MockRecordRepository) Append(_ context.Context, rec domain.ApplicationRecord) (int64, error) {
	m.AppendCalled = true
	if m.ForceError {
		return 0, errors.New("disk full")
	}
	rec.ID = int64(len(m.Saved) + 1)
	m.Saved = append(m.Saved, rec)
	return rec.ID, nil
}

func (m *MockRecordRepository) ListAll(context.Context) ([]domain.ApplicationRecord, error) {
	return m.Saved, nil
}

func (m *MockRecordRepository) Delete(context.Context, int64) error {
	return nil
}

func (m *MockRecordRepository) DeleteAll(context.Context) (int64, error) {
	n := int64(len(m.Saved))
	m.Saved = nil
	return n, nil
}

type countingRecorder struct {
	outcomes []string
}

func (c *countingRecorder) RecordSubmission(outcome string, _ domain.RiskCategory) {
	c.outcomes = append(c.outcomes, outcome)
}

func TestSubmit_Approved(t *testing.T) {
	repo := &MockRecordRepository{}
	rec := &countingRecorder{}
	svc := NewLoanService(repo, nil, rec)

	d, err := svc.Submit(context.Background(), validInput())

	require.NoError(t, err)
	assert.True(t, d.Eligible)
	assert.True(t, d.Persisted)
	assert.Equal(t, int64(1), d.RecordID)
	require.NotNil(t, d.Result)
	assert.Equal(t, 10623.52, d.Result.EMI)
	assert.Equal(t, domain.RiskLow, d.Result.RiskCategory)
	require.NotNil(t, d.Risk)
	assert.Equal(t, 100, d.Risk.Score)

	require.Len(t, repo.Saved, 1)
	saved := repo.Saved[0]
	assert.Equal(t, "Asha Rao", saved.Name)
	assert.Equal(t, 637411.20, saved.TotalPayment)
	assert.Equal(t, 137411.20, saved.TotalInterest)
	assert.Equal(t, []string{OutcomeApproved}, rec.outcomes)
}

func TestSubmit_HighRiskStillSaved(t *testing.T) {
	repo := &MockRecordRepository{}
	svc := NewLoanService(repo, nil, nil)

	d, err := svc.Submit(context.Background(), domain.ApplicantInput{
		Name:          "Ravi",
		Age:           22,
		MonthlyIncome: 25000,
		LoanAmount:    550000,
		LoanTermYears: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, d.Result.RiskCategory)
	assert.Equal(t, 17746.95, d.Result.EMI)
	assert.True(t, repo.AppendCalled)
}

func TestSubmit_InvalidNotPersisted(t *testing.T) {
	repo := &MockRecordRepository{}
	rec := &countingRecorder{}
	svc := NewLoanService(repo, nil, rec)

	in := validInput()
	in.Age = 20
	d, err := svc.Submit(context.Background(), in)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, MsgAgeBelowMinimum, verrs[0].Message)
	assert.True(t, IsUserError(err))
	assert.Nil(t, d.Result)
	assert.False(t, repo.AppendCalled)
	assert.Equal(t, []string{OutcomeInvalid}, rec.outcomes)
}

func TestSubmit_IneligibleNotPersisted(t *testing.T) {
	repo := &MockRecordRepository{}
	svc := NewLoanService(repo, nil, nil)

	in := validInput()
	in.MonthlyIncome = 24999.99
	in.LoanAmount = 100000
	d, err := svc.Submit(context.Background(), in)

	var ineligible *IneligibleError
	require.ErrorAs(t, err, &ineligible)
	assert.Equal(t, []string{ReasonIncomeTooLow}, ineligible.Reasons)
	assert.False(t, d.Eligible)
	assert.Equal(t, []string{ReasonIncomeTooLow}, d.Reasons)
	assert.Nil(t, d.Result)
	assert.False(t, repo.AppendCalled)
}

func TestSubmit_StorageFailureKeepsResult(t *testing.T) {
	repo := &MockRecordRepository{ForceError: true}
	rec := &countingRecorder{}
	svc := NewLoanService(repo, nil, rec)

	d, err := svc.Submit(context.Background(), validInput())

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.False(t, IsUserError(err))
	assert.EqualError(t, errors.Unwrap(err), "disk full")
	assert.True(t, repo.AppendCalled)
	assert.False(t, d.Persisted)
	require.NotNil(t, d.Result)
	assert.Equal(t, 10623.52, d.Result.EMI)
	assert.Equal(t, []string{OutcomeStorageError}, rec.outcomes)
}

func TestSubmit_SameInputSameResult(t *testing.T) {
	svc := NewLoanService(&MockRecordRepository{}, nil, nil)

	first, _ := svc.Compute(validInput())
	second, _ := svc.Compute(validInput())

	assert.Equal(t, first, second)
}

func TestValidationErrors_Message(t *testing.T) {
	err := ValidationErrors{
		{Field: "name", Message: MsgNameEmpty},
		{Field: "age", Message: MsgAgeBelowMinimum},
	}

	assert.EqualError(t, err, "invalid input: name empty; age below minimum")
}
