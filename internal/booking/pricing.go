// Package booking implements the reservation and payment workflow:
// pricing derivation, payment-method validation, the reservation
// wizard state machine, the per-reservation action matrix and the
// submission flow.  Everything in this package is plain domain
// logic; HTTP handlers and repositories live elsewhere.
package booking

import "math"

// Commission rate charged on top of every service price.
const feeRate = 0.05

// ReservationFee returns the platform commission for a service
// price: 5% rounded half away from zero to the nearest whole
// currency unit.  Both reservation creation and payment recording
// derive the fee from here so the two flows can never disagree.
// Non-finite or negative prices yield 0, never NaN.
func ReservationFee(price float64) float64 {
	if !isFiniteAmount(price) {
		return 0
	}
	return math.Round(price * feeRate)
}

// TotalToPay returns the amount a booker is asked to cover for a
// service: price plus the reservation fee.
func TotalToPay(price float64) float64 {
	if !isFiniteAmount(price) {
		return 0
	}
	return price + ReservationFee(price)
}

// AmountDue returns the amount owed now for a given total and
// payment type.  FULL owes the whole total; ADVANCE owes half,
// rounded to the nearest whole unit.  Unknown payment types are
// treated as FULL.
func AmountDue(total float64, paymentType string) float64 {
	if !isFiniteAmount(total) {
		return 0
	}
	if paymentType == "ADVANCE" {
		return math.Round(total * 0.5)
	}
	return total
}

// RemainingBalance returns what is still owed after an amount-due
// payment: total - AmountDue(total, paymentType).
func RemainingBalance(total float64, paymentType string) float64 {
	if !isFiniteAmount(total) {
		return 0
	}
	return total - AmountDue(total, paymentType)
}

// isFiniteAmount rejects NaN, infinities and negative values so the
// pricing functions always return usable numbers.
func isFiniteAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
