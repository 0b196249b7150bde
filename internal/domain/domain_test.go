package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCustomer.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestApplicationStatusValid(t *testing.T) {
	for _, s := range ApplicationStatuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.Len(t, ApplicationStatuses(), 4)
	assert.False(t, ApplicationStatus("done").Valid())
	assert.False(t, ApplicationStatus(" approved").Valid())
	assert.False(t, ApplicationStatus("APPROVED").Valid())
}
