package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

// spyStore counts CreateReservation calls and can block or fail.
type spyStore struct {
	mu      sync.Mutex
	calls   int
	err     error
	entered chan struct{}
	release chan struct{}
}

func (s *spyStore) CreateReservation(ctx context.Context, res *model.Reservation) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return s.err
	}
	res.ID = 42
	return nil
}

func (s *spyStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func submittableDraft(t *testing.T) *Draft {
	d := newTestDraft()
	completeDraft(t, d)
	return d
}

func TestSubmitAuthGate(t *testing.T) {
	store := &spyStore{}
	sub := NewSubmitter(store, nil)

	res, err := sub.Submit(context.Background(), submittableDraft(t), 0)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Nil(t, res)
	// the gate must short-circuit before any store call
	assert.Equal(t, 0, store.callCount())
}

func TestSubmitIncompleteDraft(t *testing.T) {
	store := &spyStore{}
	sub := NewSubmitter(store, nil)

	res, err := sub.Submit(context.Background(), newTestDraft(), 7)
	assert.ErrorIs(t, err, ErrIncompleteDraft)
	assert.Nil(t, res)
	assert.Equal(t, 0, store.callCount())
}

func TestSubmitCreatesReservation(t *testing.T) {
	store := &spyStore{}
	sub := NewSubmitter(store, nil)

	res, err := sub.Submit(context.Background(), submittableDraft(t), 7)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, uint64(42), res.ID)
	assert.Equal(t, uint64(7), res.UserID)
	assert.Equal(t, uint64(3), res.ArtistID)
	assert.Equal(t, int64(100000), res.Amount)
	assert.Equal(t, int64(5000), res.ServiceFee)
	assert.Equal(t, model.ReservationPending, res.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, res.PaymentStatus)
	assert.Equal(t, 1, store.callCount())
}

func TestSubmitDoesNotRetry(t *testing.T) {
	store := &spyStore{err: errors.New("service unavailable")}
	sub := NewSubmitter(store, nil)

	_, err := sub.Submit(context.Background(), submittableDraft(t), 7)
	assert.EqualError(t, err, "service unavailable")
	assert.Equal(t, 1, store.callCount())
}

func TestSubmitReentrancyGuard(t *testing.T) {
	store := &spyStore{entered: make(chan struct{}), release: make(chan struct{})}
	sub := NewSubmitter(store, nil)
	d := submittableDraft(t)

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), d, 7)
		done <- err
	}()
	// wait until the first submit has entered the store
	<-store.entered

	_, err := sub.Submit(context.Background(), d, 7)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(store.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, store.callCount())
}
