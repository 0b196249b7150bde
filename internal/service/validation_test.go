package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/onboarding-api/internal/domain"
)

func TestEmailPattern(t *testing.T) {
	valid := []string{"a@b.co", "john.doe+tag@example.co.uk", "x@y.z"}
	invalid := []string{"", "plain", "@b.com", "a@b", "a@.com", "a@b.", "a b@c.com", "a@@b.com"}

	for _, email := range valid {
		assert.True(t, emailPattern.MatchString(email), email)
	}
	for _, email := range invalid {
		assert.False(t, emailPattern.MatchString(email), email)
	}
}

func TestValidateInput_Details(t *testing.T) {
	v := newValidator()

	err := validateInput(v, RegisterInput{Email: "bad", Password: "short", Role: "root"})
	de := requireCode(t, err, "VALIDATION_FAILED")

	assert.Equal(t, "email must be a valid email address", de.Details["email"])
	assert.Equal(t, "password must be at least 8 characters", de.Details["password"])
	assert.Equal(t, "role must be one of: customer, admin", de.Details["role"])
}

func TestValidateInput_Status(t *testing.T) {
	v := newValidator()

	assert.NoError(t, validateInput(v, statusUpdateInput{Status: domain.ApplicationStatusUnderReview}))

	de := requireCode(t, validateInput(v, statusUpdateInput{Status: "done"}), "VALIDATION_FAILED")
	assert.Equal(t, "status must be one of: submitted, under_review, approved, rejected", de.Details["status"])

	de = requireCode(t, validateInput(v, statusUpdateInput{}), "VALIDATION_FAILED")
	assert.Equal(t, "status is required", de.Details["status"])
}
