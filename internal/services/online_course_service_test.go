package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"institute-backend/internal/models"
)

func validOnlineCourseRequest() *models.OnlineCourseRegisterRequest {
	return &models.OnlineCourseRegisterRequest{
		Name:       "Ankit Sharma",
		FatherName: "Rajesh Sharma",
		Phone:      "9876543210",
		Email:      "ankit@example.com",
		Course:     "VN Video editing",
	}
}

func TestValidateOnlineCourseRequest(t *testing.T) {
	assert.NoError(t, validateOnlineCourseRequest(validOnlineCourseRequest()))

	req := validOnlineCourseRequest()
	req.Name = "  "
	assert.ErrorContains(t, validateOnlineCourseRequest(req), "name is required")

	req = validOnlineCourseRequest()
	req.FatherName = ""
	assert.ErrorContains(t, validateOnlineCourseRequest(req), "father's name")

	req = validOnlineCourseRequest()
	req.Phone = "12345"
	assert.ErrorContains(t, validateOnlineCourseRequest(req), "phone number")

	req = validOnlineCourseRequest()
	req.Email = "not-an-email"
	assert.ErrorContains(t, validateOnlineCourseRequest(req), "invalid email")

	req = validOnlineCourseRequest()
	req.Course = "Quantum Basket Weaving"
	assert.ErrorContains(t, validateOnlineCourseRequest(req), "not open for online registration")
}
