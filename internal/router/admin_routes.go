package router

import (
	"github.com/labstack/echo/v4"

	"github.com/byronjee/restaurant-reservation/internal/handler"
	"github.com/byronjee/restaurant-reservation/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1.  All routes
// require a valid JWT and the ADMIN role.  Admins shape the floor plan
// and manage staff logins.
func RegisterAdmin(e *echo.Echo, t *handler.TableHandler, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
		limiter,
	)

	// ---- Tables ----
	g.POST("/tables", t.Create)
	g.PUT("/tables/:id", t.Update)
	g.PATCH("/tables/:id", t.Update)
	g.DELETE("/tables/:id", t.Delete)

	// ---- Accounts ----
	g.POST("/accounts", a.CreateAccount)
}
