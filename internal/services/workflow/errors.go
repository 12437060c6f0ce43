package workflow

import "errors"

// Service errors
var (
	ErrNotSubmitted         = errors.New("application has no reference number yet")
	ErrTransitionNotAllowed = errors.New("transition not allowed for this role and status")
	ErrReasonRequired       = errors.New("decision reason is required")
	ErrInvalidDecision      = errors.New("invalid decision value")
	ErrVoteNotOpen          = errors.New("application is not open for member votes")
	ErrAlreadyVoted         = errors.New("member has already voted on this application")
	// ErrConflict means another reviewer transitioned the application
	// between read and write; the caller should reload and retry.
	ErrConflict = errors.New("application was modified by another reviewer")
)
