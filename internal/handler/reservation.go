package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-booking-marketplace/internal/booking"
	"github.com/iliyamo/artist-booking-marketplace/internal/model"
	"github.com/iliyamo/artist-booking-marketplace/internal/repository"
)

// ReservationHandler serves reservation listings, the detail view
// with its contextual actions, and status changes.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Reviews      *repository.ReviewRepo
	Artists      *repository.ArtistRepo
}

func NewReservationHandler(res *repository.ReservationRepo, rev *repository.ReviewRepo, art *repository.ArtistRepo) *ReservationHandler {
	if res == nil || rev == nil || art == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: res, Reviews: rev, Artists: art}
}

// List returns the booker's reservations, newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Reservations.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}

// ListForArtist returns the reservations booking the caller's artist
// profile.  Artist role only.
func (h *ReservationHandler) ListForArtist(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Artists.GetByUserID(ctx, uid)
	if err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	items, err := h.Reservations.ListByArtist(ctx, profile.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}

// Get returns one reservation with the actions the caller may take
// on it.  Visible to the booker who created it and to the booked
// artist; anyone else gets 403.
func (h *ReservationHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Reservations.GetByIDForUser(ctx, id, uid)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	hasReview, err := h.Reviews.ExistsForReservation(ctx, d.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load review failed"})
	}

	actions := booking.ActionsFor(&model.Reservation{
		ID:       d.ID,
		ArtistID: d.ArtistID,
		Status:   d.Status,
	}, hasReview)

	return c.JSON(http.StatusOK, echo.Map{"reservation": d, "actions": actions})
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves a reservation to a new status.  Transition
// legality is checked against the status machine; who may perform a
// move depends on the move itself.  Cancelling is open to both
// parties, confirming and completing to the artist only.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	switch target {
	case model.ReservationConfirmed, model.ReservationCompleted, model.ReservationCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
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

	current, bookerID, artistUserID, err := h.Reservations.GetOwnershipTx(ctx, tx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	switch target {
	case model.ReservationCancelled:
		if uid != bookerID && uid != artistUserID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	default: // CONFIRMED, COMPLETED
		if uid != artistUserID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}

	if !booking.CanTransition(current, target) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "invalid transition", "from": current, "to": target,
		})
	}

	if err := h.Reservations.UpdateStatusTx(ctx, tx, id, target); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": target})
}
