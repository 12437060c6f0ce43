package status

import "dashen/internal/models"

// transition is a single allowed status write for a role.
type transition struct {
	from string
	to   string
}

// queues lists the statuses each role reads as its work queue.
var queues = map[string][]string{
	models.RoleRelationshipManager: {Pending, UnderReview},
	models.RoleCreditAnalyst:       {UnderReview, FinalAnalysis, CommitteReversed, Supervised},
	models.RoleSupervisor:          {Conditional, SupervisorReviewing},
	models.RoleCommitteMember:      {MemberReview},
	models.RoleApprovalCommitte:    {CommitteeReview, MemberReview},
	models.RoleAdmin:               All(),
}

// transitions is the reconstructed rule table: which status writes each
// role may perform. Every write anywhere in the service goes through
// Allowed, so the rules live in exactly one place.
var transitions = map[string][]transition{
	models.RoleRelationshipManager: {
		{from: Pending, to: UnderReview}, // submit, assigns the reference number
	},
	models.RoleCreditAnalyst: {
		{from: UnderReview, to: RMRecommendation},
		{from: UnderReview, to: Conditional},
		{from: RMRecommendation, to: Conditional},
		{from: FinalAnalysis, to: MemberReview},   // hand off to committee members
		{from: CommitteReversed, to: FinalAnalysis}, // re-edit and resubmit
	},
	models.RoleSupervisor: {
		{from: Conditional, to: SupervisorReviewing},
		{from: SupervisorReviewing, to: Supervised},
		{from: Supervised, to: FinalAnalysis},
	},
	models.RoleCommitteMember: {
		{from: MemberReview, to: CommitteeReview},
		{from: MemberReview, to: CommitteReversed},
	},
	models.RoleApprovalCommitte: {
		{from: CommitteeReview, to: Approved},
		{from: CommitteeReview, to: Rejected},
		{from: CommitteeReview, to: CommitteReversed},
		{from: MemberReview, to: Approved},
		{from: MemberReview, to: Rejected},
		{from: MemberReview, to: CommitteReversed},
	},
}

// QueuesFor returns the statuses role may list.
func QueuesFor(role string) []string {
	return queues[role]
}

// CanRead reports whether role may list applications in status s.
func CanRead(role, s string) bool {
	for _, q := range queues[role] {
		if q == s {
			return true
		}
	}
	return false
}

// Allowed reports whether role may move an application from one status to
// another. Admins read everything but transition nothing, so they have no
// entry here.
func Allowed(role, from, to string) bool {
	for _, t := range transitions[role] {
		if t.from == from && t.to == to {
			return true
		}
	}
	return false
}

// CommitteeAction reports whether a transition into target is a
// committee-level action that must append a Decision row.
func CommitteeAction(target string) bool {
	return target == Approved || target == Rejected || target == CommitteReversed
}
