package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"institute-backend/internal/models"
)

func TestEligibilityGateRejectsPendingFees(t *testing.T) {
	fees := &models.FeeDetailsResponse{RemainingFeesPaise: 150000}
	exam := &models.ExamSummaryResponse{Complete: true, FinalGrade: "B"}

	err := eligibilityGate(fees, exam)
	assert.ErrorContains(t, err, "fees pending")
	assert.ErrorContains(t, err, "Rs. 1500.00")
}

func TestEligibilityGateRejectsIncompleteMarksheet(t *testing.T) {
	fees := &models.FeeDetailsResponse{}
	exam := &models.ExamSummaryResponse{Complete: false, FinalGrade: "Pending"}

	err := eligibilityGate(fees, exam)
	assert.ErrorContains(t, err, "marks have not been entered")
}

func TestEligibilityGateRejectsFailingGrade(t *testing.T) {
	fees := &models.FeeDetailsResponse{}
	exam := &models.ExamSummaryResponse{Complete: true, FinalGrade: "F"}

	err := eligibilityGate(fees, exam)
	assert.ErrorContains(t, err, "grade F")
}

func TestEligibilityGatePassesClearedStudent(t *testing.T) {
	fees := &models.FeeDetailsResponse{RemainingFeesPaise: 0}
	for _, grade := range []string{"A", "B", "C", "D"} {
		exam := &models.ExamSummaryResponse{Complete: true, FinalGrade: grade}
		assert.NoError(t, eligibilityGate(fees, exam))
	}
}
