package domain

import (
	"fmt"
	"strings"
)

type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// ParseRiskCategory maps a stored value back to a RiskCategory. Only the
// leading word counts, so display labels such as "low risk ✅" written by
// older deployments parse as well.
func ParseRiskCategory(s string) (RiskCategory, error) {
	fields := strings.Fields(s)
	if len(fields) > 0 {
		switch c := RiskCategory(strings.ToLower(fields[0])); c {
		case RiskLow, RiskMedium, RiskHigh:
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown risk category %q", s)
}

// Label is the text shown to applicants, e.g. "low risk".
func (c RiskCategory) Label() string {
	return string(c) + " risk"
}
