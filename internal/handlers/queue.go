package handlers

import (
	"dashen/internal/middleware"
	"dashen/internal/repositories"
	"dashen/internal/services/status"
	"dashen/internal/utils/pagination"
	"dashen/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// QueueHandler serves the per-role work queues: each role lists the
// applications sitting in the statuses it is allowed to read.
type QueueHandler struct {
	customers repositories.CustomerRepository
}

func NewQueueHandler(customers repositories.CustomerRepository) *QueueHandler {
	return &QueueHandler{customers: customers}
}

// List returns the queue for one status, gated by the role rule table.
func (h *QueueHandler) List(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	st := c.Params("status")
	if !status.Valid(st) {
		return response.BadRequest(c, "Unknown application status")
	}
	if !status.CanRead(claims.Role, st) {
		return response.Forbidden(c, "This queue is not readable by your role")
	}

	p := pagination.ParseFromRequest(c)
	customers, total, err := h.customers.ListByStatus(st, p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to list queue")
	}
	p.Total = total
	return c.JSON(pagination.Response(p, customers))
}

// Queues returns the statuses the acting role may list, with their badges.
func (h *QueueHandler) Queues(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	type entry struct {
		Status string       `json:"status"`
		Badge  status.Badge `json:"badge"`
	}
	queues := status.QueuesFor(claims.Role)
	out := make([]entry, 0, len(queues))
	for _, q := range queues {
		out = append(out, entry{Status: q, Badge: status.BadgeFor(q)})
	}
	return c.JSON(fiber.Map{"queues": out})
}

// Statuses returns the full status registry with display badges.
func (h *QueueHandler) Statuses(c *fiber.Ctx) error {
	out := make(map[string]status.Badge, len(status.All()))
	for _, s := range status.All() {
		out[s] = status.BadgeFor(s)
	}
	return c.JSON(out)
}
