// Package workflow is the application status transition engine. Every
// status write in the service goes through it: it checks the role rule
// table, enforces the reason requirement, appends Decision rows for
// committee actions and performs the status update and the decision write
// in one database transaction.
package workflow

import (
	"context"
	"errors"
	"log"
	"strings"

	"dashen/internal/models"
	"dashen/internal/repositories"
	"dashen/internal/repositories/cache"
	"dashen/internal/services/status"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	customers repositories.CustomerRepository
	decisions repositories.DecisionRepository
	cache     *cache.CacheService
	metrics   MetricsCollector
	notifier  Notifier
}

// NewService creates the transition engine. notifier may be nil.
func NewService(
	db *gorm.DB,
	customers repositories.CustomerRepository,
	decisions repositories.DecisionRepository,
	cacheSvc *cache.CacheService,
	metrics MetricsCollector,
	notifier Notifier,
) *Service {
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &Service{
		db:        db,
		customers: customers,
		decisions: decisions,
		cache:     cacheSvc,
		metrics:   metrics,
		notifier:  notifier,
	}
}

// Transition moves an application to req.Target on behalf of actor. For
// committee-level targets it also appends a Decision row; both writes
// happen in one transaction, conditional on the status the actor saw, so a
// concurrent reviewer surfaces as ErrConflict instead of a silent
// overwrite.
func (s *Service) Transition(ctx context.Context, actor *models.UserClaims, req TransitionRequest) (*models.Customer, error) {
	customer, err := s.customers.GetByReference(req.Ref)
	if err != nil {
		return nil, err
	}
	if customer.ApplicationReferenceNumber == nil {
		return nil, ErrNotSubmitted
	}

	current := customer.ApplicationStatus
	if !status.Allowed(actor.Role, current, req.Target) {
		s.metrics.RecordError("transition", "not_allowed")
		return nil, ErrTransitionNotAllowed
	}
	reason := strings.TrimSpace(req.Reason)
	if status.ReasonRequired(req.Target) && reason == "" {
		s.metrics.RecordError("transition", "reason_required")
		return nil, ErrReasonRequired
	}

	var decision *models.Decision
	if status.CommitteeAction(req.Target) {
		decision = &models.Decision{
			DecisionID:                 uuid.NewString(),
			ApplicationReferenceNumber: req.Ref,
			UserID:                     actor.UserID,
			CommitteeMember:            actor.Name,
			Member:                     false,
			Decision:                   req.Target,
			DecisionReason:             reason,
			ResponsibleUnitName:        req.ResponsibleUnitName,
			ResponsibleUnitEmail:       req.ResponsibleUnitEmail,
			ResponsibleUnitPhone:       req.ResponsibleUnitPhone,
		}
	}

	if err := s.apply(ctx, customer, req.Target, reason, decision); err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(actor.Role, current, req.Target)
	if decision != nil && decision.Final() && s.notifier != nil {
		if err := s.notifier.SendDecisionNotification(ctx, customer, decision); err != nil {
			log.Printf("decision notification for %s failed: %v", req.Ref, err)
		}
	}
	return customer, nil
}

// MemberVote records one committee member's vote. A reversal vote moves
// the application to COMMITTE_REVERSED; approve/reject votes advance it
// from MEMBER_REVIEW to COMMITTEE_REVIEW and otherwise leave the status
// where it is. One vote per member per application, enforced by both an
// exists-check and the unique index on the decision log.
func (s *Service) MemberVote(ctx context.Context, actor *models.UserClaims, req VoteRequest) (*models.Decision, error) {
	if !models.ValidDecision(req.Decision) {
		return nil, ErrInvalidDecision
	}
	reason := strings.TrimSpace(req.Reason)
	if status.ReasonRequired(req.Decision) && reason == "" {
		s.metrics.RecordError("member_vote", "reason_required")
		return nil, ErrReasonRequired
	}

	customer, err := s.customers.GetByReference(req.Ref)
	if err != nil {
		return nil, err
	}
	current := customer.ApplicationStatus
	if current != status.MemberReview && current != status.CommitteeReview {
		return nil, ErrVoteNotOpen
	}

	voted, err := s.decisions.ExistsForUser(req.Ref, actor.UserID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	decision := &models.Decision{
		DecisionID:                 uuid.NewString(),
		ApplicationReferenceNumber: req.Ref,
		UserID:                     actor.UserID,
		CommitteeMember:            actor.Name,
		Member:                     true,
		Decision:                   req.Decision,
		DecisionReason:             reason,
	}

	target := current
	switch {
	case req.Decision == models.DecisionCommitteReversed:
		target = status.CommitteReversed
	case current == status.MemberReview:
		target = status.CommitteeReview
	}

	if err := s.apply(ctx, customer, target, reason, decision); err != nil {
		return nil, err
	}
	s.metrics.RecordVote(req.Decision)
	return decision, nil
}

// apply performs the decision append and the conditional status update in
// one transaction and refreshes the in-memory customer on success.
func (s *Service) apply(ctx context.Context, customer *models.Customer, target, reason string, decision *models.Decision) error {
	current := customer.ApplicationStatus
	version := customer.Version

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if decision != nil {
			if err := tx.Create(decision).Error; err != nil {
				// The partial unique index only guards member votes; a
				// committee user may hold several non-member rows across
				// reversal loops.
				if decision.Member && errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrAlreadyVoted
				}
				return err
			}
		}

		updates := map[string]interface{}{
			"application_status": target,
			"version":            version + 1,
		}
		if reason != "" {
			updates["decision_reason"] = reason
		}
		res := tx.Model(&models.Customer{}).
			Where("id = ? AND application_status = ? AND version = ?", customer.ID, current, version).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			s.metrics.RecordConflict(current, target)
		}
		return err
	}

	customer.ApplicationStatus = target
	customer.Version = version + 1
	if reason != "" {
		customer.DecisionReason = reason
	}
	if s.cache != nil {
		if err := s.cache.InvalidateCustomer(ctx, customer); err != nil {
			log.Printf("failed to invalidate customer cache %d: %v", customer.ID, err)
		}
	}
	return nil
}

// MemberVotes returns the member-decision aggregate for an application.
func (s *Service) MemberVotes(ref string) ([]models.Decision, error) {
	return s.decisions.FindMemberVotes(ref)
}

// MemberVoteFor returns one member's vote on an application, if any.
func (s *Service) MemberVoteFor(ref string, userID uint) (*models.Decision, error) {
	return s.decisions.FindMemberVote(ref, userID)
}

// FinalDecision returns the latest binding committee decision.
func (s *Service) FinalDecision(ref string) (*models.Decision, error) {
	return s.decisions.FindLatestFinal(ref)
}

// History returns every decision recorded for an application, oldest first.
func (s *Service) History(ref string) ([]models.Decision, error) {
	return s.decisions.FindByReference(ref)
}
