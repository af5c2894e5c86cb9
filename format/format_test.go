package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-eligibility/domain"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "Rs 10,623.52", Currency(10623.52))
	assert.Equal(t, "Rs 1,295,554.80", Currency(1295554.8))
	assert.Equal(t, "Rs 0.00", Currency(0))
	assert.Equal(t, "-Rs 5.00", Currency(-5))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "999.99", Number(999.99))
	assert.Equal(t, "1,000.00", Number(1000))
}

func TestRecordsTable(t *testing.T) {
	out := RecordsTable([]domain.ApplicationRecord{{
		ID:            7,
		Name:          "Asha",
		Age:           30,
		MonthlyIncome: 50000,
		LoanAmount:    500000,
		LoanTermYears: 5,
		EMI:           10623.52,
		RiskCategory:  domain.RiskLow,
	}})

	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "10,623.52")
	assert.Contains(t, out, "low")
}

func TestMetricsTable_Empty(t *testing.T) {
	out := MetricsTable(domain.RecordMetrics{Distribution: []domain.LoanDistribution{}})

	assert.Contains(t, out, "No data to display.")
	assert.Contains(t, out, "Rs 0.00")
}
