package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(model.ReservationPending, model.ReservationConfirmed))
	assert.True(t, CanTransition(model.ReservationPending, model.ReservationCancelled))
	assert.True(t, CanTransition(model.ReservationConfirmed, model.ReservationCompleted))
	assert.True(t, CanTransition(model.ReservationConfirmed, model.ReservationCancelled))

	assert.False(t, CanTransition(model.ReservationPending, model.ReservationCompleted))
	assert.False(t, CanTransition(model.ReservationCompleted, model.ReservationPending))
	assert.False(t, CanTransition(model.ReservationCancelled, model.ReservationConfirmed))
	assert.False(t, CanTransition("UNKNOWN", model.ReservationPending))
}

func TestNextPaymentStatus(t *testing.T) {
	assert.Equal(t, model.PaymentStatusUnpaid, NextPaymentStatus(0, 105000))
	assert.Equal(t, model.PaymentStatusPartial, NextPaymentStatus(52500, 105000))
	assert.Equal(t, model.PaymentStatusPaid, NextPaymentStatus(105000, 105000))
	assert.Equal(t, model.PaymentStatusPaid, NextPaymentStatus(110000, 105000))
}
