package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
	"github.com/iliyamo/artist-booking-marketplace/internal/repository"
)

// ReviewHandler creates reviews on completed reservations.  Review
// insertion and the artist's rating aggregate update share one
// transaction so the profile never shows a stale average.
type ReviewHandler struct {
	Reviews      *repository.ReviewRepo
	Reservations *repository.ReservationRepo
	Artists      *repository.ArtistRepo
}

func NewReviewHandler(rev *repository.ReviewRepo, res *repository.ReservationRepo, art *repository.ArtistRepo) *ReviewHandler {
	if rev == nil || res == nil || art == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: rev, Reservations: res, Artists: art}
}

type createReviewReq struct {
	Rating  uint8  `json:"rating"`
	Comment string `json:"comment"`
}

// Create leaves a review on a completed reservation.  Only the
// booker who made the reservation may review it, exactly once.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	d, err := h.Reservations.GetByIDForUser(ctx, reservationID, uid)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if d.UserID != uid {
		// The booked artist can see the reservation but not review it.
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the booker can review"})
	}
	if d.Status != model.ReservationCompleted {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not completed"})
	}

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

	rev := &model.Review{
		ReservationID: reservationID,
		UserID:        uid,
		ArtistID:      d.ArtistID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
	}
	if err := h.Reviews.CreateTx(ctx, tx, rev); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already reviewed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	if err := h.Artists.ApplyReviewTx(ctx, tx, d.ArtistID, req.Rating); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update rating failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{"id": rev.ID})
}
