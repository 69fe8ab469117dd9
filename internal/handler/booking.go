package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byronjee/restaurant-reservation/internal/queue"
	"github.com/byronjee/restaurant-reservation/internal/repository"
	"github.com/byronjee/restaurant-reservation/internal/service"
	"github.com/byronjee/restaurant-reservation/internal/utils"
)

// BookingHandler translates HTTP requests into the booking lifecycle:
// validation and reference checks here, the conflict check and the
// atomic booking+payment writes in service.Booker.
type BookingHandler struct {
	Bookings     *repository.BookingRepo
	Tables       *repository.TableRepo
	Staff        *repository.StaffRepo
	Transactions *repository.TransactionRepo
	Booker       *service.Booker
}

func NewBookingHandler(b *repository.BookingRepo, t *repository.TableRepo, s *repository.StaffRepo, tx *repository.TransactionRepo, bk *service.Booker) *BookingHandler {
	return &BookingHandler{Bookings: b, Tables: t, Staff: s, Transactions: tx, Booker: bk}
}

type bookingReq struct {
	BookingDate   string  `json:"booking_date"` // YYYY-MM-DD
	BookingTime   string  `json:"booking_time"` // HH:MM
	GuestCount    uint32  `json:"guest_count"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	TableID       uint64  `json:"table_id"`
	StaffID       *uint64 `json:"staff_id"`
}

// parse validates the request and returns a record plus the parsed
// date.  Validation errors are collected so the client sees them all
// at once.
func (r *bookingReq) parse() (repository.BookingRecord, time.Time, []string) {
	var errs []string
	var rec repository.BookingRecord

	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(r.BookingDate), time.UTC)
	if err != nil {
		errs = append(errs, "booking_date must be YYYY-MM-DD")
	}
	clock := strings.TrimSpace(r.BookingTime)
	if _, err := time.Parse("15:04", clock); err != nil {
		if _, err2 := time.Parse("15:04:05", clock); err2 != nil {
			errs = append(errs, "booking_time must be HH:MM")
		}
	}
	if r.GuestCount < 1 || r.GuestCount > 20 {
		errs = append(errs, "guest_count must be between 1 and 20")
	}
	name := strings.TrimSpace(r.CustomerName)
	if name == "" || len(name) > 100 {
		errs = append(errs, "customer_name is required (max 100 chars)")
	}
	var phone *string
	if r.CustomerPhone != nil && strings.TrimSpace(*r.CustomerPhone) != "" {
		p := utils.NormalizePhone(*r.CustomerPhone)
		if !utils.ValidPhone(p) {
			errs = append(errs, "customer_phone is not a valid phone number")
		} else {
			phone = &p
		}
	}
	if r.TableID == 0 {
		errs = append(errs, "table_id is required")
	}

	rec = repository.BookingRecord{
		BookingDate:   date,
		BookingTime:   clock,
		GuestCount:    r.GuestCount,
		CustomerName:  name,
		CustomerPhone: phone,
		TableID:       r.TableID,
		StaffID:       r.StaffID,
	}
	return rec, date, errs
}

// Create books a table for a calendar date.  The availability check is
// advisory; the unique key on (table_id, booking_date) is what finally
// decides a race, surfacing as ErrTableTaken.
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rec, date, errs := req.parse()
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tbl, err := h.Tables.GetByID(ctx, rec.TableID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if rec.StaffID != nil {
		ok, err := h.Staff.Exists(ctx, *rec.StaffID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff member not found"})
		}
	}

	trn, err := h.Booker.Create(ctx, &rec)
	if err != nil {
		if err == repository.ErrTableTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table already booked for that date"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	// Notifications are best effort; the booking stands either way.
	go func() {
		ev := queue.BookingCreatedEvent{
			BookingID:    rec.ID,
			BookingDate:  date.Format("2006-01-02"),
			BookingTime:  rec.BookingTime,
			CustomerName: rec.CustomerName,
			TableNumber:  tbl.TableNumber,
			GuestCount:   rec.GuestCount,
			AmountCents:  trn.AmountCents,
			Reference:    trn.Reference,
			CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pcancel()
		if err := queue.Publish(pctx, queue.CreatedQueue, ev); err != nil {
			log.Printf("⚠️  publish booking.created failed: %v", err)
		}
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"id": rec.ID,
		"transaction": echo.Map{
			"id":           trn.ID,
			"reference":    trn.Reference,
			"amount_cents": trn.AmountCents,
			"status":       trn.Status,
		},
	})
}

// List returns bookings with optional search and sorting.
//
//	GET /v1/bookings?search=smith&sort=name_asc
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Bookings.List(ctx, c.QueryParam("search"), c.QueryParam("sort"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Events renders all bookings as calendar events for the booking
// calendar view.
func (h *BookingHandler) Events(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	evs, err := h.Bookings.Events(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, evs)
}

// Get returns a single booking with its payment transaction attached.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Bookings.GetDetail(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := echo.Map{"booking": d}
	if trn, err := h.Transactions.GetByBooking(ctx, id); err == nil {
		resp["transaction"] = trn
	}
	return c.JSON(http.StatusOK, resp)
}

// Update rewrites a booking.  Moving it to an occupied table/date pair
// fails with 409 via the same unique key that guards Create.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rec, _, errs := req.parse()
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tables.GetByID(ctx, rec.TableID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if rec.StaffID != nil {
		ok, err := h.Staff.Exists(ctx, *rec.StaffID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff member not found"})
		}
	}

	rec.ID = id
	if err := h.Bookings.Update(ctx, &rec); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrTableTaken:
			return c.JSON(http.StatusConflict, echo.Map{"error": "table already booked for that date"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking updated"})
}

// Delete cancels a booking, removing its transaction rows in the same
// transaction so no orphan payments remain.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Bookings.GetDetail(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := h.Booker.Cancel(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete booking failed"})
	}

	go func() {
		ev := queue.BookingCancelledEvent{
			BookingID:    id,
			BookingDate:  d.BookingDate,
			CustomerName: d.CustomerName,
			TableNumber:  d.TableNumber,
			CancelledAt:  time.Now().UTC().Format(time.RFC3339),
		}
		pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pcancel()
		if err := queue.Publish(pctx, queue.CancelledQueue, ev); err != nil {
			log.Printf("⚠️  publish booking.cancelled failed: %v", err)
		}
	}()

	return c.NoContent(http.StatusNoContent)
}
