package handlers

import (
	"errors"

	"dashen/internal/middleware"
	"dashen/internal/models"
	"dashen/internal/repositories"
	"dashen/internal/services/workflow"
	"dashen/internal/utils/response"
	"dashen/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DecisionHandler serves the transition/decision endpoints. The status
// update and the decision append ride one service call, so there is no
// partial-failure window between them.
type DecisionHandler struct {
	workflowService *workflow.Service
}

func NewDecisionHandler(workflowService *workflow.Service) *DecisionHandler {
	return &DecisionHandler{workflowService: workflowService}
}

// Transition moves an application to a target status, appending a Decision
// row for committee-level targets.
func (h *DecisionHandler) Transition(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req workflow.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Ref == "" || req.Target == "" {
		return response.BadRequest(c, "Reference number and target status are required")
	}

	// A binding approve/reject must name the responsible unit contact.
	if claims.Role == models.RoleApprovalCommitte &&
		(req.Target == models.DecisionApproved || req.Target == models.DecisionRejected) {
		v := validation.New()
		v.Required("responsibleUnitName", req.ResponsibleUnitName)
		v.Email("responsibleUnitEmail", req.ResponsibleUnitEmail)
		if !v.Valid() {
			return response.ValidationError(c, v.First())
		}
	}

	customer, err := h.workflowService.Transition(c.Context(), claims, req)
	if err != nil {
		return workflowError(c, err)
	}
	return response.Success(c, "Application updated", customer)
}

// MemberVote records one committee member's vote.
func (h *DecisionHandler) MemberVote(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req workflow.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Ref == "" {
		return response.BadRequest(c, "Reference number is required")
	}

	decision, err := h.workflowService.MemberVote(c.Context(), claims, req)
	if err != nil {
		return workflowError(c, err)
	}
	return response.Success(c, "Vote recorded", decision)
}

// OwnVote returns the acting member's vote on an application, if cast.
func (h *DecisionHandler) OwnVote(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	decision, err := h.workflowService.MemberVoteFor(c.Params("ref"), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "No vote recorded yet")
		}
		return response.ServerError(c, "Failed to load vote")
	}
	return c.JSON(decision)
}

// MemberVotes returns the member-decision aggregate for the committee view.
func (h *DecisionHandler) MemberVotes(c *fiber.Ctx) error {
	votes, err := h.workflowService.MemberVotes(c.Params("ref"))
	if err != nil {
		return response.ServerError(c, "Failed to load member votes")
	}
	return c.JSON(fiber.Map{"votes": votes, "count": len(votes)})
}

// FinalDecision returns the latest binding committee decision.
func (h *DecisionHandler) FinalDecision(c *fiber.Ctx) error {
	decision, err := h.workflowService.FinalDecision(c.Params("ref"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "No final decision yet")
		}
		return response.ServerError(c, "Failed to load decision")
	}
	return c.JSON(decision)
}

// History returns every decision for an application, oldest first.
func (h *DecisionHandler) History(c *fiber.Ctx) error {
	decisions, err := h.workflowService.History(c.Params("ref"))
	if err != nil {
		return response.ServerError(c, "Failed to load decision history")
	}
	return c.JSON(fiber.Map{"decisions": decisions})
}

func workflowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrCustomerNotFound):
		return response.NotFound(c, "Application not found")
	case errors.Is(err, workflow.ErrNotSubmitted):
		return response.Conflict(c, "Application has not been submitted yet")
	case errors.Is(err, workflow.ErrTransitionNotAllowed):
		return response.Forbidden(c, "Transition not allowed for your role at this stage")
	case errors.Is(err, workflow.ErrReasonRequired):
		return response.BadRequest(c, "A decision reason is required for rejections and reversals")
	case errors.Is(err, workflow.ErrInvalidDecision):
		return response.BadRequest(c, "Decision must be APPROVED, REJECTED or COMMITTE_REVERSED")
	case errors.Is(err, workflow.ErrVoteNotOpen):
		return response.Conflict(c, "Application is not open for member votes")
	case errors.Is(err, workflow.ErrAlreadyVoted):
		return response.Conflict(c, "You have already voted on this application")
	case errors.Is(err, workflow.ErrConflict):
		return response.Conflict(c, "Application was modified by another reviewer, reload and retry")
	default:
		return response.ServerError(c, "Operation failed")
	}
}
