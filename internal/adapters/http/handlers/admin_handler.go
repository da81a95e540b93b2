package handlers

import (
	"errors"

	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles operator maintenance: lockouts, backups and the
// full data reset
type AdminHandler struct {
	authService   *services.AuthService
	backupService *services.BackupService
}

func NewAdminHandler(authService *services.AuthService, backupService *services.BackupService) *AdminHandler {
	return &AdminHandler{
		authService:   authService,
		backupService: backupService,
	}
}

// UnlockRequest carries the unlock confirmation
type UnlockRequest struct {
	Confirm bool `json:"confirm"`
}

// LockedUsers lists every locked account
func (h *AdminHandler) LockedUsers(c *fiber.Ctx) error {
	locked := h.authService.ListLocked()

	out := make([]fiber.Map, 0, len(locked))
	for _, u := range locked {
		out = append(out, fiber.Map{
			"username":        u.Username,
			"role":            u.Role,
			"failed_attempts": u.FailedAttempts,
		})
	}
	return response.Success(c, "Locked accounts retrieved", out)
}

// Unlock clears the lock on a username
func (h *AdminHandler) Unlock(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return response.BadRequest(c, "Username is required")
	}

	var req UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.authService.Unlock(username, req.Confirm); err != nil {
		switch {
		case errors.Is(err, services.ErrConfirmationNeeded):
			return response.BadRequest(c, "Unlock requires confirmation")
		case errors.Is(err, services.ErrAccountNotLocked):
			return response.BadRequest(c, "Account is not locked")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to unlock account")
		}
	}
	return response.Success(c, "Account unlocked", nil)
}

// Backup snapshots the data directory immediately
func (h *AdminHandler) Backup(c *fiber.Ctx) error {
	path, err := h.backupService.Backup()
	if err != nil {
		return response.InternalServerError(c, "Failed to create backup")
	}
	return response.Success(c, "Backup created", fiber.Map{"path": path})
}

// DeleteAll wipes every data file and resets the system
func (h *AdminHandler) DeleteAll(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.backupService.DeleteAll(req.Confirm); err != nil {
		if errors.Is(err, services.ErrConfirmationNeeded) {
			return response.BadRequest(c, "Delete-all requires confirmation")
		}
		return response.InternalServerError(c, "Failed to delete data")
	}
	return response.Success(c, "All data deleted", nil)
}
