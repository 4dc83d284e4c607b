package breakeven

import (
	"encoding/json"
	"testing"

	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *IncomeLimitResult {
	return &IncomeLimitResult{
		Profile:           child(10, 40000, "TX"),
		Status:            StatusFound,
		Program:           "Medicaid",
		HouseholdSize:     2,
		FPL:               decimal.NewFromInt(19720),
		MaxEligibleIncome: decimal.RequireFromString("27223.45"),
		FPLPercentAtLimit: decimal.RequireFromString("138.0"),
		Headroom:          decimal.RequireFromString("-12776.55"),
		Iterations:        25,
	}
}

func TestTableFormatter_Format(t *testing.T) {
	tf := &TableFormatter{}
	out := tf.Format(sampleResult())

	assert.Contains(t, out, "MEDICAID/CHIP INCOME LIMIT")
	assert.Contains(t, out, "Sam, age 10, TX")
	assert.Contains(t, out, "Poverty Guideline:   $19,720.00")
	assert.Contains(t, out, "Currently Eligible:  no")
	assert.Contains(t, out, "Max Eligible Income: $27,223.45")
	assert.Contains(t, out, "Income vs FPL:       138.0%")
	assert.Contains(t, out, "Headroom:            -$12,776.55")

	never := sampleResult()
	never.Status = StatusNeverQualifies
	never.Warnings = []domain.Warning{{Kind: domain.WarningThresholdNotFound, Message: "eligibility data unavailable for state NY"}}
	out = tf.Format(never)
	assert.Contains(t, out, "does not qualify for Medicaid or CHIP at any income")
	assert.Contains(t, out, "! threshold_not_found")

	unlimited := sampleResult()
	unlimited.Status = StatusNoLimit
	unlimited.Program = "CHIP"
	unlimited.MaxEligibleIncome = decimal.NewFromInt(197200)
	unlimited.FPLPercentAtLimit = decimal.NewFromInt(1000)
	assert.Contains(t, tf.Format(unlimited), "Qualifies for CHIP at every income up to $197,200.00 (1000.0% of FPL)")
}

func TestTableFormatter_FormatTable(t *testing.T) {
	never := *sampleResult()
	never.Status = StatusNeverQualifies
	never.HouseholdSize = 3

	out := (&TableFormatter{}).FormatTable([]IncomeLimitResult{*sampleResult(), never})
	assert.Contains(t, out, "INCOME LIMITS BY HOUSEHOLD SIZE")
	assert.Contains(t, out, "$27,223.45")
	assert.Contains(t, out, "138.0%")
	assert.Contains(t, out, "none")
}

func TestTableFormatter_FormatCurrency(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "0.00", tf.formatCurrency(decimal.Zero))
	assert.Equal(t, "999.99", tf.formatCurrency(decimal.RequireFromString("999.99")))
	assert.Equal(t, "1,234,567.80", tf.formatCurrency(decimal.RequireFromString("1234567.8")))
	assert.Equal(t, "-1,500.00", tf.formatCurrency(decimal.NewFromInt(-1500)))
	assert.Equal(t, "+$10.00", tf.formatDelta(decimal.NewFromInt(10)))
}

func TestJSONFormatter(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleResult())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "found", decoded["status"])
	assert.Equal(t, "27223.45", decoded["maxEligibleIncome"])

	compact, err := (&JSONFormatter{}).Format([]IncomeLimitResult{*sampleResult()})
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")
}
