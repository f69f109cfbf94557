package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-booking-marketplace/internal/booking"
	"github.com/iliyamo/artist-booking-marketplace/internal/model"
	"github.com/iliyamo/artist-booking-marketplace/internal/repository"
	queuepub "github.com/iliyamo/artist-booking-marketplace/internal/service"
)

// PaymentHandler records payments against reservations and serves
// the payment history and receipts.  Recording runs in a single
// transaction with the reservation row locked so concurrent payments
// for the same reservation serialize.
type PaymentHandler struct {
	Payments     *repository.PaymentRepo
	Reservations *repository.ReservationRepo
	Publisher    *queuepub.Publisher
}

func NewPaymentHandler(p *repository.PaymentRepo, r *repository.ReservationRepo, pub *queuepub.Publisher) *PaymentHandler {
	if p == nil || r == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: p, Reservations: r, Publisher: pub}
}

type createPaymentReq struct {
	PaymentType string                `json:"payment_type"` // FULL | ADVANCE
	Method      string                `json:"method"`       // credit_card | mobile_money
	Fields      booking.PaymentFields `json:"fields"`
}

// Create records a payment for a reservation.  The amount is derived
// server-side from the reservation's frozen pricing and the payment
// type; clients never send amounts.
func (h *PaymentHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	paymentType := strings.ToUpper(strings.TrimSpace(req.PaymentType))
	if paymentType != model.PaymentTypeFull && paymentType != model.PaymentTypeAdvance {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_type must be FULL or ADVANCE"})
	}

	// Validate the instrument before touching the database.
	result := booking.ValidatePayment(req.Method, req.Fields)
	if !result.Valid {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": result.Errors})
	}
	details := booking.ToPaymentDetails(req.Method, req.Fields)
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode details failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetForPaymentTx(ctx, tx, reservationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if res.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if res.Status == model.ReservationCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is cancelled"})
	}
	if res.PaymentStatus == model.PaymentStatusPaid {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already paid"})
	}

	total := res.Amount + res.ServiceFee
	already, err := h.Payments.SumCompletedTx(ctx, tx, reservationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sum payments failed"})
	}
	due := int64(booking.AmountDue(float64(total), paymentType))
	if remaining := total - already; due > remaining {
		// A second ADVANCE or a FULL after an ADVANCE settles the balance.
		due = remaining
	}
	if due <= 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "nothing left to pay"})
	}

	pay := &model.Payment{
		ReservationID: reservationID,
		UserID:        uid,
		Amount:        due,
		ServiceFee:    res.ServiceFee,
		PaymentType:   paymentType,
		Method:        details.Method,
		Details:       string(detailsJSON),
		Status:        model.PaymentCompleted,
		Reference:     uuid.NewString(),
	}
	if err := h.Payments.CreateTx(ctx, tx, pay); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record payment failed"})
	}

	nextStatus := booking.NextPaymentStatus(already+due, total)
	if err := h.Reservations.UpdatePaymentStatusTx(ctx, tx, reservationID, nextStatus); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update payment status failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	if h.Publisher != nil {
		h.Publisher.PaymentCompleted(ctx, pay, res.ArtistID, nextStatus)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"payment_id":     pay.ID,
		"reference":      pay.Reference,
		"amount":         pay.Amount,
		"payment_status": nextStatus,
		"remaining":      total - already - due,
	})
}

// List returns the caller's payment history with date, status and
// text filters plus pagination.
func (h *PaymentHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, size := pageParams(c)
	q := repository.PaymentListQuery{
		From:     c.QueryParam("from"),
		To:       c.QueryParam("to"),
		Status:   c.QueryParam("status"),
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Page:     page,
		PageSize: size,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Payments.ListByUser(ctx, uid, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list payments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"payments": items,
		"total":    total,
		"page":     page,
		"pages":    (total + int64(size) - 1) / int64(size),
	})
}

// Receipt returns the receipt of one payment as JSON.
func (h *PaymentHandler) Receipt(c echo.Context) error {
	rec, ec := h.loadReceipt(c)
	if rec == nil {
		return ec
	}
	return c.JSON(http.StatusOK, rec)
}

// DownloadReceipt returns the receipt as a plain-text attachment.
func (h *PaymentHandler) DownloadReceipt(c echo.Context) error {
	rec, ec := h.loadReceipt(c)
	if rec == nil {
		return ec
	}
	var b strings.Builder
	fmt.Fprintf(&b, "RECEIPT %s\n", rec.Reference)
	fmt.Fprintf(&b, "Paid at:      %s\n", rec.PaidAt)
	fmt.Fprintf(&b, "Booker:       %s\n", rec.BookerName)
	fmt.Fprintf(&b, "Artist:       %s\n", rec.ArtistName)
	fmt.Fprintf(&b, "Service:      %s\n", rec.ServiceTitle)
	fmt.Fprintf(&b, "Event date:   %s\n", rec.EventDate)
	fmt.Fprintf(&b, "Amount:       %d\n", rec.Amount)
	fmt.Fprintf(&b, "Service fee:  %d\n", rec.ServiceFee)
	fmt.Fprintf(&b, "Payment type: %s\n", rec.PaymentType)
	fmt.Fprintf(&b, "Method:       %s\n", rec.Method)
	fmt.Fprintf(&b, "Status:       %s\n", rec.Status)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="receipt-%s.txt"`, rec.Reference))
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}

func (h *PaymentHandler) loadReceipt(c echo.Context) (*repository.Receipt, error) {
	uid, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Payments.GetReceiptForUser(ctx, id, uid)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		case repository.ErrForbidden:
			return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load receipt failed"})
	}
	return rec, nil
}
