package handlers

import (
	"errors"
	"strconv"

	"dashen/internal/middleware"
	"dashen/internal/models"
	"dashen/internal/repositories"
	"dashen/internal/services/intake"
	"dashen/internal/utils/pagination"
	"dashen/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	intakeService *intake.Service
}

func NewCustomerHandler(intakeService *intake.Service) *CustomerHandler {
	return &CustomerHandler{intakeService: intakeService}
}

// Create registers a new loan application in PENDING.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var input models.Customer
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customer, err := h.intakeService.Create(c.Context(), claims, &input)
	if err != nil {
		var vErr *intake.ValidationError
		if errors.As(err, &vErr) {
			return response.ValidationError(c, vErr.Error())
		}
		return response.ServerError(c, "Failed to create application")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List returns the acting relationship manager's applications.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	p := pagination.ParseFromRequest(c)
	customers, total, err := h.intakeService.ListOwn(claims, p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to list applications")
	}
	p.Total = total
	return c.JSON(pagination.Response(p, customers))
}

// Get returns one application.
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	customer, err := h.intakeService.Get(claims, id)
	if err != nil {
		return customerError(c, err)
	}
	return c.JSON(customer)
}

// Update edits a PENDING application.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	var input models.Customer
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customer, err := h.intakeService.Update(c.Context(), claims, id, &input)
	if err != nil {
		var vErr *intake.ValidationError
		if errors.As(err, &vErr) {
			return response.ValidationError(c, vErr.Error())
		}
		return customerError(c, err)
	}
	return c.JSON(customer)
}

// Submit assigns the reference number and moves the application into
// review.
func (h *CustomerHandler) Submit(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	customer, err := h.intakeService.Submit(c.Context(), claims, id)
	if err != nil {
		return customerError(c, err)
	}
	return response.Success(c, "Application submitted", customer)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

func customerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrCustomerNotFound):
		return response.NotFound(c, "Application not found")
	case errors.Is(err, intake.ErrNotOwner):
		return response.Forbidden(c, "Application belongs to another relationship manager")
	case errors.Is(err, intake.ErrNotEditable):
		return response.Conflict(c, "Application can only be edited while pending")
	case errors.Is(err, intake.ErrAlreadySubmitted):
		return response.Conflict(c, "Application has already been submitted")
	case errors.Is(err, intake.ErrRefExhausted):
		return response.Error(c, fiber.StatusServiceUnavailable,
			"Could not assign a reference number, try again")
	default:
		return response.ServerError(c, "Operation failed")
	}
}
