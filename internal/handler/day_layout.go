package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byronjee/restaurant-reservation/internal/service"
)

// DayLayoutHandler serves the per-date floor view used by the booking
// screen.
type DayLayoutHandler struct {
	Availability *service.Availability
}

func NewDayLayoutHandler(av *service.Availability) *DayLayoutHandler {
	return &DayLayoutHandler{Availability: av}
}

// Get builds the layout for ?date=YYYY-MM-DD, defaulting to today.
func (h *DayLayoutHandler) Get(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("date"))
	var date time.Time
	if raw == "" {
		date = service.DateOnly(time.Now().UTC())
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	layout, err := h.Availability.DayLayout(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build layout failed"})
	}
	return c.JSON(http.StatusOK, layout)
}
