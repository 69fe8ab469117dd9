package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byronjee/restaurant-reservation/internal/repository"
)

// StaffHandler lists the employee roster for booking assignment.
type StaffHandler struct {
	Staff *repository.StaffRepo
}

func NewStaffHandler(s *repository.StaffRepo) *StaffHandler {
	return &StaffHandler{Staff: s}
}

func (h *StaffHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	staff, err := h.Staff.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, staff)
}
