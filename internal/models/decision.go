package models

import (
	"time"
)

// Decision outcomes. COMMITTE_REVERSED is spelled as external consumers
// expect it.
const (
	DecisionApproved         = "APPROVED"
	DecisionRejected         = "REJECTED"
	DecisionCommitteReversed = "COMMITTE_REVERSED"
)

// Decision is an append-only record of a committee-level action on an
// application. Member votes carry Member=true and are unique per
// (applicationReferenceNumber, userID) among member rows only; the partial
// index must not cover committee rows, because the user who reversed an
// application also issues its binding decision after the rework loop.
type Decision struct {
	ID                         uint   `gorm:"primarykey" json:"id"`
	DecisionID                 string `gorm:"uniqueIndex;not null" json:"decisionId"`
	ApplicationReferenceNumber string `gorm:"not null;index:idx_decision_ref_user,unique,where:member = true" json:"applicationReferenceNumber"`
	UserID                     uint   `gorm:"not null;index:idx_decision_ref_user,unique" json:"userId"`
	CommitteeMember            string `json:"committeeMember"`
	Member                     bool   `gorm:"not null;default:false" json:"member"`

	Decision       string `gorm:"not null" json:"decision"`
	DecisionReason string `json:"decisionReason"`

	// Responsible-unit contact, attached only to the final approve/reject.
	ResponsibleUnitName  string `json:"responsibleUnitName"`
	ResponsibleUnitEmail string `json:"responsibleUnitEmail"`
	ResponsibleUnitPhone string `json:"responsibleUnitPhone"`

	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"decisionDate"`
}

// Final reports whether this decision closes the application.
func (d *Decision) Final() bool {
	return !d.Member && (d.Decision == DecisionApproved || d.Decision == DecisionRejected)
}

// ValidDecision reports whether v is a recognized decision outcome.
func ValidDecision(v string) bool {
	return v == DecisionApproved || v == DecisionRejected || v == DecisionCommitteReversed
}
