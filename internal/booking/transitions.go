package booking

import "github.com/iliyamo/artist-booking-marketplace/internal/model"

// allowedTransitions defines the valid reservation status moves.
// COMPLETED and CANCELLED are terminal.
var allowedTransitions = map[string][]string{
	model.ReservationPending:   {model.ReservationConfirmed, model.ReservationCancelled},
	model.ReservationConfirmed: {model.ReservationCompleted, model.ReservationCancelled},
	model.ReservationCompleted: {},
	model.ReservationCancelled: {},
}

// CanTransition reports whether a reservation may move from one
// status to another.  Unknown source statuses allow nothing.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextPaymentStatus derives the reservation payment status after a
// payment of the given amount lands.  paid is the sum already
// collected including the new payment, total the full amount to
// cover.  Coverage of the total flips to PAID, anything collected
// below it to PARTIAL.
func NextPaymentStatus(paid, total int64) string {
	switch {
	case total > 0 && paid >= total:
		return model.PaymentStatusPaid
	case paid > 0:
		return model.PaymentStatusPartial
	default:
		return model.PaymentStatusUnpaid
	}
}
