package domain

import "time"

// ApplicationStatus enumerates lifecycle states for onboarding applications.
// Any status may move to any other; there is no enforced workflow.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// DefaultProductType is used when a submission omits the product.
const DefaultProductType = "checking"

// ApplicationStatuses lists every valid status in display order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusSubmitted,
		ApplicationStatusUnderReview,
		ApplicationStatusApproved,
		ApplicationStatusRejected,
	}
}

// Valid reports whether s is a member of the fixed status set.
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Application is a submitted onboarding request.
type Application struct {
	ID          int64
	UserID      *int64
	FirstName   string
	LastName    string
	Email       string
	ProductType string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
