package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byronjee/restaurant-reservation/internal/repository"
)

// TransactionHandler exposes the payment ledger.  Rows are created by
// the booking flow; only the status is mutable here.
type TransactionHandler struct {
	Transactions *repository.TransactionRepo
}

func NewTransactionHandler(t *repository.TransactionRepo) *TransactionHandler {
	return &TransactionHandler{Transactions: t}
}

var transactionStatuses = map[string]bool{
	"Created":   true,
	"Pending":   true,
	"Confirmed": true,
	"Cancelled": true,
}

func (h *TransactionHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Transactions.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rows)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves a transaction along Created -> Pending ->
// Confirmed, or to Cancelled.
func (h *TransactionHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.TrimSpace(req.Status)
	if !transactionStatuses[status] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Created, Pending, Confirmed or Cancelled"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Transactions.UpdateStatus(ctx, id, status); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transaction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}
