package workflow

import (
	"context"

	"dashen/internal/models"
)

// TransitionRequest asks the engine to move one application to a target
// status, optionally recording a committee decision in the same database
// transaction.
type TransitionRequest struct {
	Ref    string `json:"applicationReferenceNumber"`
	Target string `json:"targetStatus"`
	Reason string `json:"decisionReason"`

	// Responsible-unit contact, attached when the decision is final.
	ResponsibleUnitName  string `json:"responsibleUnitName"`
	ResponsibleUnitEmail string `json:"responsibleUnitEmail"`
	ResponsibleUnitPhone string `json:"responsibleUnitPhone"`
}

// VoteRequest records one committee member's vote on an application.
type VoteRequest struct {
	Ref      string `json:"applicationReferenceNumber"`
	Decision string `json:"decision"`
	Reason   string `json:"decisionReason"`
}

// Notifier delivers decision outcomes to the applicant and the responsible
// unit. The workflow engine treats delivery as best effort.
type Notifier interface {
	SendDecisionNotification(ctx context.Context, customer *models.Customer, decision *models.Decision) error
}

// MetricsCollector records workflow activity.
type MetricsCollector interface {
	RecordTransition(role, from, to string)
	RecordConflict(from, to string)
	RecordVote(outcome string)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransition(string, string, string) {}
func (NoopMetricsCollector) RecordConflict(string, string)          {}
func (NoopMetricsCollector) RecordVote(string)                      {}
func (NoopMetricsCollector) RecordError(string, string)             {}
