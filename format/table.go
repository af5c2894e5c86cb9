package format

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"loan-eligibility/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RecordsTable renders records as a bordered table.
func RecordsTable(records []domain.ApplicationRecord) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Name,
			strconv.Itoa(rec.Age),
			Number(rec.MonthlyIncome),
			Number(rec.LoanAmount),
			strconv.Itoa(rec.LoanTermYears),
			Number(rec.EMI),
			Number(rec.TotalInterest),
			Number(rec.TotalPayment),
			string(rec.RiskCategory),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Age", "Income", "Loan", "Term", "EMI", "Interest", "Total", "Risk").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// MetricsTable renders the aggregate metrics followed by the per-applicant
// loan distribution.
func MetricsTable(m domain.RecordMetrics) string {
	summary := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Total Applicants", "Total Loan Amount", "Average Loan").
		Row(strconv.Itoa(m.TotalApplicants), Currency(m.TotalLoanAmount), Currency(m.AverageLoanAmount)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if len(m.Distribution) == 0 {
		return summary.String() + "\nNo data to display."
	}

	dist := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Loan Amount")
	for _, d := range m.Distribution {
		dist.Row(strconv.FormatInt(d.ID, 10), d.Name, Currency(d.LoanAmount))
	}
	return summary.String() + "\n" + dist.String()
}
