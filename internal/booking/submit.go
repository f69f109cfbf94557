package booking

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

// ErrAuthRequired is returned when no authenticated booker can be
// resolved.  The check runs before anything touches a store so an
// unauthenticated submit never performs I/O.
var ErrAuthRequired = errors.New("authentication required")

// ErrIncompleteDraft is returned when a draft has not reached the
// confirmation step with all earlier steps valid.
var ErrIncompleteDraft = errors.New("draft is not complete")

// ErrSubmitInFlight is returned when a submit for the same draft is
// already running.  Double clicks are ignored rather than creating
// a second reservation.
var ErrSubmitInFlight = errors.New("submission already in progress")

// ReservationStore persists a new reservation.  The repository layer
// implements it; tests substitute a spy.
type ReservationStore interface {
	CreateReservation(ctx context.Context, res *model.Reservation) error
}

// EventPublisher announces a created reservation to the message
// broker.  Failures are logged and ignored: the reservation is
// already durable, notification delivery is best effort.
type EventPublisher interface {
	ReservationCreated(ctx context.Context, res *model.Reservation)
}

// Submitter turns a completed wizard draft into a persisted
// reservation.  It performs exactly one store call per submission
// and never retries; the caller decides what to do with a failure.
type Submitter struct {
	Store     ReservationStore
	Publisher EventPublisher

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewSubmitter constructs a Submitter.  Publisher may be nil when no
// broker is configured.
func NewSubmitter(store ReservationStore, pub EventPublisher) *Submitter {
	if store == nil {
		panic("nil store passed to NewSubmitter")
	}
	return &Submitter{Store: store, Publisher: pub, inFlight: make(map[string]bool)}
}

// Submit creates the reservation described by a completed draft on
// behalf of the authenticated booker.  It fails fast with
// ErrAuthRequired when userID is zero, with ErrIncompleteDraft when
// the wizard has not been finished, and with ErrSubmitInFlight when
// the same draft is already being submitted.  On success the created
// reservation is returned with its ID populated; the caller owns
// navigation and cleanup of the draft.
func (s *Submitter) Submit(ctx context.Context, d *Draft, userID uint64) (*model.Reservation, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if d == nil || !d.Complete() {
		return nil, ErrIncompleteDraft
	}

	s.mu.Lock()
	if s.inFlight[d.ID] {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.inFlight[d.ID] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, d.ID)
		s.mu.Unlock()
	}()

	price := float64(d.ServicePrice)
	res := &model.Reservation{
		UserID:        userID,
		ArtistID:      d.ArtistID,
		ServiceID:     d.ServiceID,
		EventDate:     d.Fields.EventDate,
		StartTime:     d.Fields.StartTime,
		EndTime:       d.Fields.EndTime,
		EventType:     d.Fields.EventType,
		Address:       d.Fields.Address,
		Notes:         d.Fields.Notes,
		Amount:        d.ServicePrice,
		ServiceFee:    int64(ReservationFee(price)),
		Status:        model.ReservationPending,
		PaymentStatus: model.PaymentStatusUnpaid,
	}
	if err := s.Store.CreateReservation(ctx, res); err != nil {
		return nil, err
	}
	if s.Publisher != nil {
		s.Publisher.ReservationCreated(ctx, res)
	} else {
		log.Printf("submit: no publisher configured, reservation %d created silently", res.ID)
	}
	return res, nil
}
