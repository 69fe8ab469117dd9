package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byronjee/restaurant-reservation/internal/model"
	"github.com/byronjee/restaurant-reservation/internal/repository"
)

// TableHandler exposes the dining floor.  Reads are open to staff,
// writes are admin only.
type TableHandler struct {
	Tables *repository.TableRepo
}

func NewTableHandler(t *repository.TableRepo) *TableHandler {
	return &TableHandler{Tables: t}
}

type tableReq struct {
	TableNumber uint32 `json:"table_number"`
	Seats       uint32 `json:"seats"`
	IsAvailable *bool  `json:"is_available"`
}

func (r *tableReq) validate() []string {
	var errs []string
	if r.TableNumber == 0 {
		errs = append(errs, "table_number must be positive")
	}
	if r.Seats < 1 || r.Seats > 50 {
		errs = append(errs, "seats must be between 1 and 50")
	}
	return errs
}

// List returns every table, or only bookable ones with ?bookable=true.
func (h *TableHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		tables []model.Table
		err    error
	)
	if c.QueryParam("bookable") == "true" {
		tables, err = h.Tables.Bookable(ctx)
	} else {
		tables, err = h.Tables.TablesByNumber(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, tables)
}

// Get returns one table by id.
func (h *TableHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// Create adds a table to the floor (admin).
func (h *TableHandler) Create(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	id, err := h.Tables.Create(ctx, req.TableNumber, req.Seats, available)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create table failed"})
	}
	return c.JSON(http.StatusCreated, model.Table{
		ID: id, TableNumber: req.TableNumber, Seats: req.Seats, IsAvailable: available,
	})
}

// Update rewrites a table's number, seats and availability flag
// (admin).  Flipping is_available off retires the table from new
// bookings without touching existing ones.
func (h *TableHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	if err := h.Tables.Update(ctx, id, req.TableNumber, req.Seats, available); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "table number already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update table failed"})
		}
	}
	return c.JSON(http.StatusOK, model.Table{
		ID: id, TableNumber: req.TableNumber, Seats: req.Seats, IsAvailable: available,
	})
}

// Delete removes a table that has no bookings (admin).
func (h *TableHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tables.Delete(ctx, id); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "table has bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete table failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
