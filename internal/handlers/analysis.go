package handlers

import (
	"errors"

	"dashen/internal/repositories"
	"dashen/internal/services/analysis"
	"dashen/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AnalysisHandler struct {
	analysisService *analysis.Service
}

func NewAnalysisHandler(analysisService *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Get returns the analysis record for an application reference.
func (h *AnalysisHandler) Get(c *fiber.Ctx) error {
	record, err := h.analysisService.Get(c.Context(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return response.NotFound(c, "No analysis exists for this application yet")
		}
		return response.ServerError(c, "Failed to load analysis")
	}
	return c.JSON(record)
}

// Upsert merges analyst fields into the record, creating it on first write.
func (h *AnalysisHandler) Upsert(c *fiber.Ctx) error {
	var input analysis.UpsertInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.analysisService.Upsert(c.Context(), c.Params("ref"), input)
	if err != nil {
		return analysisError(c, err)
	}
	return response.Success(c, "Analysis saved", record)
}

// Review applies supervisor scores, notes and decision.
func (h *AnalysisHandler) Review(c *fiber.Ctx) error {
	var input analysis.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.analysisService.Review(c.Context(), input)
	if err != nil {
		return analysisError(c, err)
	}
	return response.Success(c, "Review saved", record)
}

func analysisError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, analysis.ErrNoReference):
		return response.BadRequest(c, "Application reference number is required")
	case errors.Is(err, analysis.ErrUnknownCustomer):
		return response.NotFound(c, "No application exists for this reference")
	default:
		return response.ServerError(c, "Failed to save analysis")
	}
}
