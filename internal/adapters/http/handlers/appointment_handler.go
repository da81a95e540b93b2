package handlers

import (
	"errors"

	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles the appointment booking workflow
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// BookAppointmentRequest represents an appointment booking body
type BookAppointmentRequest struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Reason  string `json:"reason"`
}

// ProcessAppointmentRequest carries the head-of-queue decision:
// approve, reject, or skip
type ProcessAppointmentRequest struct {
	Decision string `json:"decision"`
}

// Book queues an appointment for the authenticated customer
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	appt := &domain.Appointment{
		Username: username,
		Service:  req.Service,
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
	}

	if err := h.appointmentService.Book(appt); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Service, date and time are required")
		}
		return response.InternalServerError(c, "Failed to book appointment")
	}

	return response.Created(c, "Appointment booked, awaiting approval", appt)
}

// Mine lists the authenticated customer's appointments
func (h *AppointmentHandler) Mine(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	pending, approved := h.appointmentService.ForUser(username)
	return response.Success(c, "Appointments retrieved", fiber.Map{
		"pending":  pending,
		"approved": approved,
	})
}

// Pending lists waiting appointments in queue order (admin)
func (h *AppointmentHandler) Pending(c *fiber.Ctx) error {
	return response.Success(c, "Pending appointments retrieved", h.appointmentService.Pending())
}

// Approved lists approved appointments (admin)
func (h *AppointmentHandler) Approved(c *fiber.Ctx) error {
	return response.Success(c, "Approved appointments retrieved", h.appointmentService.Approved())
}

// ProcessNext applies a decision to the head of the queue (admin).
// A skipped request goes back to the tail, not out of the system.
func (h *AppointmentHandler) ProcessNext(c *fiber.Ctx) error {
	var req ProcessAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	appt, outcome, err := h.appointmentService.ProcessNext(req.Decision)
	if err != nil {
		if errors.Is(err, services.ErrQueueEmpty) {
			return response.NotFound(c, "No pending appointments")
		}
		return response.InternalServerError(c, "Failed to process appointment")
	}

	return response.Success(c, "Appointment processed", fiber.Map{
		"appointment": appt,
		"outcome":     outcome,
	})
}
