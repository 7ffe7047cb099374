package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"veloxtrade/internal/domain"
)

// SettingsHandler handles the settings and portfolio documents
type SettingsHandler struct {
	docRepo domain.DocumentRepository
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(docRepo domain.DocumentRepository) *SettingsHandler {
	return &SettingsHandler{docRepo: docRepo}
}

// GetSettings returns the saved settings, or the defaults
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	settings, err := h.docRepo.GetSettings(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get settings", err)
	}
	return SuccessResponse(c, settings)
}

// SaveSettings replaces the settings document wholesale
// PUT /api/v1/settings
func (h *SettingsHandler) SaveSettings(c echo.Context) error {
	settings := &domain.Settings{}
	if err := c.Bind(settings); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.docRepo.SaveSettings(ctx, settings); err != nil {
		return InternalServerErrorResponse(c, "Failed to save settings", err)
	}
	return SuccessResponse(c, settings)
}

// GetPortfolio returns the saved portfolio snapshot
// GET /api/v1/portfolio
func (h *SettingsHandler) GetPortfolio(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	portfolio, err := h.docRepo.GetPortfolio(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get portfolio", err)
	}
	return SuccessResponse(c, portfolio)
}

// SavePortfolio replaces the portfolio document wholesale
// PUT /api/v1/portfolio
func (h *SettingsHandler) SavePortfolio(c echo.Context) error {
	portfolio := &domain.Portfolio{}
	if err := c.Bind(portfolio); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.docRepo.SavePortfolio(ctx, portfolio); err != nil {
		return InternalServerErrorResponse(c, "Failed to save portfolio", err)
	}
	return SuccessResponse(c, portfolio)
}
