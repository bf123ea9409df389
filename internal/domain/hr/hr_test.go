package hr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLatestLoanPicksMostRecentStartDate(t *testing.T) {
	loans := []Loan{
		{ID: "loan-1", EmployeeID: "emp-1", StartDate: date("2023-01-01")},
		{ID: "loan-2", EmployeeID: "emp-1", StartDate: date("2023-06-01")},
	}

	latest, ok := LatestLoan(loans, "emp-1")
	require.True(t, ok)
	assert.Equal(t, "loan-2", latest.ID)
	assert.Equal(t, date("2023-06-01"), latest.StartDate)
}

func TestLatestLoanTieKeepsEarlierEntry(t *testing.T) {
	loans := []Loan{
		{ID: "loan-a", EmployeeID: "emp-1", StartDate: date("2023-03-01")},
		{ID: "loan-b", EmployeeID: "emp-1", StartDate: date("2023-03-01")},
	}

	latest, ok := LatestLoan(loans, "emp-1")
	require.True(t, ok)
	assert.Equal(t, "loan-a", latest.ID)
}

func TestLatestLoanIgnoresOtherEmployees(t *testing.T) {
	loans := []Loan{
		{ID: "loan-1", EmployeeID: "emp-2", StartDate: date("2024-01-01")},
	}

	_, ok := LatestLoan(loans, "emp-1")
	assert.False(t, ok)
}

func TestNextDeduction(t *testing.T) {
	cases := []struct {
		name string
		loan Loan
		want float64
	}{
		{"normal", Loan{MonthlyDeduction: 100, RemainingBalance: 500}, 100},
		{"capped at balance", Loan{MonthlyDeduction: 100, RemainingBalance: 40}, 40},
		{"settled", Loan{MonthlyDeduction: 100, RemainingBalance: 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextDeduction(tc.loan))
		})
	}
}

func TestActiveAssetAssignment(t *testing.T) {
	assignments := []AssetAssignment{
		{ID: "as-1", AssetID: "asset-1", EmployeeID: "emp-1", Status: "returned"},
		{ID: "as-2", AssetID: "asset-1", EmployeeID: "emp-1", Status: AssignmentActive},
		{ID: "as-3", AssetID: "asset-1", EmployeeID: "emp-2", Status: AssignmentActive},
	}

	active, ok := ActiveAssetAssignment(assignments, "asset-1", "emp-1")
	require.True(t, ok)
	assert.Equal(t, "as-2", active.ID)

	_, ok = ActiveAssetAssignment(assignments, "asset-9", "emp-1")
	assert.False(t, ok)
}

func TestClassifyExpiry(t *testing.T) {
	now := date("2024-05-01")
	soon := date("2024-05-20")
	far := date("2024-08-01")
	past := date("2024-04-30")

	assert.Equal(t, ExpiryValid, ClassifyExpiry(EmployeeDocument{}, now))
	assert.Equal(t, ExpiryExpiringSoon, ClassifyExpiry(EmployeeDocument{ExpiresAt: &soon}, now))
	assert.Equal(t, ExpiryValid, ClassifyExpiry(EmployeeDocument{ExpiresAt: &far}, now))
	assert.Equal(t, ExpiryExpired, ClassifyExpiry(EmployeeDocument{ExpiresAt: &past}, now))
}

func TestFilterEventsInRange(t *testing.T) {
	events := []EmployeeEvent{
		{ID: "e1", Date: date("2024-01-15")},
		{ID: "e2", Date: date("2024-02-15")},
		{ID: "e3", Date: date("2024-03-15")},
	}

	got := FilterEventsInRange(events, date("2024-02-01"), date("2024-02-28"))
	require.Len(t, got, 1)
	assert.Equal(t, "e2", got[0].ID)

	got = FilterEventsInRange(events, time.Time{}, date("2024-02-28"))
	assert.Len(t, got, 2)
}
