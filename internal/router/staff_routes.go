package router

import (
	"github.com/labstack/echo/v4"

	"github.com/byronjee/restaurant-reservation/internal/handler"
	"github.com/byronjee/restaurant-reservation/internal/middleware"
)

// StaffHandlers collects the handlers mounted on the staff group so
// registration does not take a parade of positional arguments.
type StaffHandlers struct {
	Bookings     *handler.BookingHandler
	DayLayout    *handler.DayLayoutHandler
	Tables       *handler.TableHandler
	Staff        *handler.StaffHandler
	Transactions *handler.TransactionHandler
}

// RegisterStaff registers the day-to-day endpoints under /v1.  All
// routes require a valid JWT with the STAFF or ADMIN role.  The cache
// middleware wraps only the read-heavy views; booking writes must
// always hit the database.
func RegisterStaff(e *echo.Echo, h StaffHandlers, jwtSecret string, cache, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF", "ADMIN"),
		limiter,
	)

	// ---- Bookings ----
	g.POST("/bookings", h.Bookings.Create)
	g.GET("/bookings", h.Bookings.List)
	g.GET("/bookings/events", h.Bookings.Events, cache)
	g.GET("/bookings/:id", h.Bookings.Get)
	g.PUT("/bookings/:id", h.Bookings.Update)
	g.PATCH("/bookings/:id", h.Bookings.Update) // alias for clients that use PATCH
	g.DELETE("/bookings/:id", h.Bookings.Delete)

	// ---- Floor view ----
	g.GET("/day-layout", h.DayLayout.Get, cache)

	// ---- Tables (read side; writes are admin only) ----
	g.GET("/tables", h.Tables.List)
	g.GET("/tables/:id", h.Tables.Get)

	// ---- Staff roster ----
	g.GET("/staff", h.Staff.List)

	// ---- Payment ledger ----
	g.GET("/transactions", h.Transactions.List)
	g.PATCH("/transactions/:id/status", h.Transactions.UpdateStatus)
}
