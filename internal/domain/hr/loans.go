package hr

// LatestLoan returns the employee's loan with the most recent start
// date. Ties keep the earlier array entry. The boolean is false when
// the employee has no loans at all.
func LatestLoan(loans []Loan, employeeID string) (Loan, bool) {
	var (
		latest Loan
		found  bool
	)
	for _, l := range loans {
		if l.EmployeeID != employeeID {
			continue
		}
		if !found || l.StartDate.After(latest.StartDate) {
			latest = l
			found = true
		}
	}
	return latest, found
}

// NextDeduction returns the amount the next payroll run will withhold
// for the loan: the fixed monthly deduction, capped at what is left.
func NextDeduction(l Loan) float64 {
	if l.RemainingBalance <= 0 {
		return 0
	}
	if l.MonthlyDeduction > l.RemainingBalance {
		return l.RemainingBalance
	}
	return l.MonthlyDeduction
}

// ActiveAssetAssignment finds the employee's single active assignment
// for the given asset. The boolean is false when none exists.
func ActiveAssetAssignment(assignments []AssetAssignment, assetID, employeeID string) (AssetAssignment, bool) {
	for _, a := range assignments {
		if a.AssetID == assetID && a.EmployeeID == employeeID && a.Status == AssignmentActive {
			return a, true
		}
	}
	return AssetAssignment{}, false
}

// ActiveCarAssignment finds the active assignment for the given car.
func ActiveCarAssignment(assignments []CarAssignment, carID string) (CarAssignment, bool) {
	for _, a := range assignments {
		if a.CarID == carID && a.Status == AssignmentActive {
			return a, true
		}
	}
	return CarAssignment{}, false
}
