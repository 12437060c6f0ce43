package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerFullName(t *testing.T) {
	c := &Customer{FirstName: "Abebe", LastName: "Kebede"}
	assert.Equal(t, "Abebe Kebede", c.FullName())

	c.MiddleName = "Tesfaye"
	assert.Equal(t, "Abebe Tesfaye Kebede", c.FullName())
}

func TestDecisionFinal(t *testing.T) {
	assert.True(t, (&Decision{Decision: DecisionApproved}).Final())
	assert.True(t, (&Decision{Decision: DecisionRejected}).Final())
	assert.False(t, (&Decision{Decision: DecisionCommitteReversed}).Final())
	// Member votes never close an application, whatever the outcome.
	assert.False(t, (&Decision{Decision: DecisionApproved, Member: true}).Final())
}

func TestValidDecision(t *testing.T) {
	assert.True(t, ValidDecision("APPROVED"))
	assert.True(t, ValidDecision("REJECTED"))
	assert.True(t, ValidDecision("COMMITTE_REVERSED"))
	assert.False(t, ValidDecision("COMMITTEE_REVERSED"))
	assert.False(t, ValidDecision(""))
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{
		RoleRelationshipManager, RoleCreditAnalyst, RoleSupervisor,
		RoleCommitteMember, RoleApprovalCommitte, RoleAdmin,
	} {
		assert.True(t, ValidRole(role), role)
	}
	assert.False(t, ValidRole("COMMITTEE_MEMBER"))
	assert.False(t, ValidRole("admin"))
}

func TestUserClaimsIsReviewer(t *testing.T) {
	assert.True(t, (&UserClaims{Role: RoleCreditAnalyst}).IsReviewer())
	assert.True(t, (&UserClaims{Role: RoleApprovalCommitte}).IsReviewer())
	assert.False(t, (&UserClaims{Role: RoleRelationshipManager}).IsReviewer())
	assert.False(t, (&UserClaims{Role: RoleAdmin}).IsReviewer())
}
