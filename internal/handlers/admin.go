package handlers

import (
	"log"

	"dashen/internal/repositories"
	"dashen/internal/utils/pagination"
	"dashen/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office listings. Route-level role guards
// admit only admins here.
type AdminHandler struct {
	users     repositories.UserRepository
	customers repositories.CustomerRepository
}

func NewAdminHandler(users repositories.UserRepository, customers repositories.CustomerRepository) *AdminHandler {
	return &AdminHandler{users: users, customers: customers}
}

// ListUsers returns all workflow users, paginated.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	users, total, err := h.users.List(p.Offset, p.Limit)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		return response.ServerError(c, "Failed to fetch users")
	}
	p.Total = total
	return c.JSON(pagination.Response(p, users))
}

// ListCustomers returns every application regardless of status, paginated.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	customers, total, err := h.customers.List(p.Offset, p.Limit)
	if err != nil {
		log.Printf("failed to list customers: %v", err)
		return response.ServerError(c, "Failed to fetch applications")
	}
	p.Total = total
	return c.JSON(pagination.Response(p, customers))
}
