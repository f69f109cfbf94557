package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-booking-marketplace/internal/booking"
	"github.com/iliyamo/artist-booking-marketplace/internal/repository"
)

// DraftHandler drives the reservation wizard.  Draft state lives in
// Redis between requests; every mutation loads the draft, applies one
// wizard operation and saves it back.
type DraftHandler struct {
	Drafts    *repository.DraftStore
	Artists   *repository.ArtistRepo
	Services  *repository.ServiceRepo
	Submitter *booking.Submitter
}

func NewDraftHandler(drafts *repository.DraftStore, artists *repository.ArtistRepo, services *repository.ServiceRepo, submitter *booking.Submitter) *DraftHandler {
	if drafts == nil || artists == nil || services == nil || submitter == nil {
		panic("nil dependency passed to NewDraftHandler")
	}
	return &DraftHandler{Drafts: drafts, Artists: artists, Services: services, Submitter: submitter}
}

type createDraftReq struct {
	ArtistID  uint64 `json:"artist_id"`
	ServiceID uint64 `json:"service_id"` // optional; fixes the service when set
}

type stepReq struct {
	Fields booking.StepFields `json:"fields"`
}

type gotoReq struct {
	Step int `json:"step"`
}

type selectServiceReq struct {
	ServiceID uint64 `json:"service_id"`
}

// draftView is the wire shape of a draft.  Pricing is recomputed on
// every response so clients always see figures derived from the
// currently selected service and payment type.
type draftView struct {
	ID            string                  `json:"id"`
	ArtistID      uint64                  `json:"artist_id"`
	ServiceID     uint64                  `json:"service_id"`
	ServiceLocked bool                    `json:"service_locked"`
	Options       []booking.ServiceOption `json:"options,omitempty"`
	Step          int                     `json:"step"`
	StepName      string                  `json:"step_name"`
	Fields        booking.StepFields      `json:"fields"`
	Pricing       pricingView             `json:"pricing"`
}

type pricingView struct {
	Price     int64 `json:"price"`
	Fee       int64 `json:"fee"`
	Total     int64 `json:"total"`
	AmountDue int64 `json:"amount_due"`
	Remaining int64 `json:"remaining"`
}

func viewOf(d *booking.Draft) draftView {
	price := float64(d.ServicePrice)
	total := booking.TotalToPay(price)
	due := booking.AmountDue(total, d.Fields.PaymentType)
	return draftView{
		ID:            d.ID,
		ArtistID:      d.ArtistID,
		ServiceID:     d.ServiceID,
		ServiceLocked: d.ServiceLocked,
		Options:       d.Options,
		Step:          d.Step,
		StepName:      booking.StepNames[d.Step],
		Fields:        d.Fields,
		Pricing: pricingView{
			Price:     d.ServicePrice,
			Fee:       int64(booking.ReservationFee(price)),
			Total:     int64(total),
			AmountDue: int64(due),
			Remaining: int64(booking.RemainingBalance(total, d.Fields.PaymentType)),
		},
	}
}

// Create opens a new draft.  With a service_id the service is fixed;
// without one the artist's active services become switcher options
// and the cheapest is preselected.
func (h *DraftHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createDraftReq
	if err := c.Bind(&req); err != nil || req.ArtistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Artists.GetByID(ctx, req.ArtistID); err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load artist failed"})
	}

	var d *booking.Draft
	id := uuid.NewString()

	if req.ServiceID != 0 {
		svc, err := h.Services.GetByID(ctx, req.ServiceID)
		if err != nil {
			if err == repository.ErrServiceNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load service failed"})
		}
		if svc.ArtistID != req.ArtistID || !svc.IsActive {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "service not offered by this artist"})
		}
		d = booking.NewDraft(id, uid, req.ArtistID, svc.ID, svc.Price, true, nil)
	} else {
		services, err := h.Services.ListActiveByArtist(ctx, req.ArtistID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load services failed"})
		}
		if len(services) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist has no active services"})
		}
		options := make([]booking.ServiceOption, 0, len(services))
		for _, s := range services {
			options = append(options, booking.ServiceOption{ServiceID: s.ID, Title: s.Title, Price: s.Price})
		}
		d = booking.NewDraft(id, uid, req.ArtistID, options[0].ServiceID, options[0].Price, false, options)
	}

	if err := h.Drafts.Save(ctx, d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save draft failed"})
	}
	return c.JSON(http.StatusCreated, viewOf(d))
}

// Get returns the current draft state.
func (h *DraftHandler) Get(c echo.Context) error {
	d, ec := h.load(c)
	if d == nil {
		return ec
	}
	return c.JSON(http.StatusOK, viewOf(d))
}

// Next validates the current step's fields and advances the draft.
// Validation failures come back as 422 with a per-field error map and
// the draft stays on its step.
func (h *DraftHandler) Next(c echo.Context) error {
	d, ec := h.load(c)
	if d == nil {
		return ec
	}
	var req stepReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := d.Next(req.Fields); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": errs})
	}
	return h.saveAndReply(c, d)
}

// Back moves one step towards the start.  On the first step the
// response tells the client to leave the wizard.
func (h *DraftHandler) Back(c echo.Context) error {
	d, ec := h.load(c)
	if d == nil {
		return ec
	}
	if err := d.Back(); err == booking.ErrExitWizard {
		return c.JSON(http.StatusOK, echo.Map{"exit": true, "artist_id": d.ArtistID})
	}
	return h.saveAndReply(c, d)
}

// GoTo jumps to an already-visited step.
func (h *DraftHandler) GoTo(c echo.Context) error {
	d, ec := h.load(c)
	if d == nil {
		return ec
	}
	var req gotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := d.GoTo(req.Step); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return h.saveAndReply(c, d)
}

// SelectService switches the draft to another of the offered services.
func (h *DraftHandler) SelectService(c echo.Context) error {
	d, ec := h.load(c)
	if d == nil {
		return ec
	}
	var req selectServiceReq
	if err := c.Bind(&req); err != nil || req.ServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service_id required"})
	}
	if err := d.SelectService(req.ServiceID); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return h.saveAndReply(c, d)
}

// Submit turns a completed draft into a reservation and deletes the
// draft.  The created reservation comes back with its ID so the
// client can navigate to the detail page.
func (h *DraftHandler) Submit(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	d, err := h.Drafts.Get(ctx, uid, c.Param("id"))
	if err != nil {
		if err == repository.ErrDraftNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load draft failed"})
	}

	res, err := h.Submitter.Submit(ctx, d, uid)
	if err != nil {
		switch err {
		case booking.ErrAuthRequired:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		case booking.ErrIncompleteDraft:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "draft is not complete"})
		case booking.ErrSubmitInFlight:
			return c.JSON(http.StatusConflict, echo.Map{"error": "submission already in progress"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	_ = h.Drafts.Delete(ctx, uid, d.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id": res.ID,
		"status":         res.Status,
		"payment_status": res.PaymentStatus,
		"amount":         res.Amount,
		"service_fee":    res.ServiceFee,
		"total":          res.Amount + res.ServiceFee,
	})
}

// load fetches the draft named in the path for the current user.  On
// failure it writes the error response and returns nil.
func (h *DraftHandler) load(c echo.Context) (*booking.Draft, error) {
	uid, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Drafts.Get(ctx, uid, c.Param("id"))
	if err != nil {
		if err == repository.ErrDraftNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load draft failed"})
	}
	return d, nil
}

// saveAndReply persists the mutated draft and returns its view.
func (h *DraftHandler) saveAndReply(c echo.Context, d *booking.Draft) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Drafts.Save(ctx, d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save draft failed"})
	}
	return c.JSON(http.StatusOK, viewOf(d))
}
