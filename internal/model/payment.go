package model

import "time"

// Payment status values.  Payments are immutable once written except
// for the status flip performed by the recording transaction itself.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

// Payment type values: FULL covers the whole total, ADVANCE covers
// half of it up front with the balance due later.
const (
	PaymentTypeFull    = "FULL"
	PaymentTypeAdvance = "ADVANCE"
)

// Payment records money collected against a reservation.  Amount is
// what the booker actually paid for this payment (the amount due for
// the chosen payment type), ServiceFee the commission portion baked
// into the reservation total.  Method identifies the instrument
// (card brand or mobile-money operator) and Details holds the
// normalized, method-specific payload produced by the payment method
// adapter.  Reference is a UUID printed on receipts.
type Payment struct {
	ID            uint64    // payments.id
	ReservationID uint64    // payments.reservation_id
	UserID        uint64    // payments.user_id
	Amount        int64     // payments.amount
	ServiceFee    int64     // payments.service_fee
	PaymentType   string    // payments.payment_type
	Method        string    // payments.method (credit_card | mobile_money)
	Details       string    // payments.details (normalized JSON payload)
	Status        string    // payments.status
	Reference     string    // payments.reference (receipt UUID)
	CreatedAt     time.Time // payments.created_at
	UpdatedAt     time.Time // payments.updated_at
}

// Notification is a server-created message shown to a user.  Rows
// are inserted only by the queue consumer reacting to reservation
// and payment events; request handlers never create notifications
// directly.
type Notification struct {
	ID        uint64    // notifications.id
	UserID    uint64    // notifications.user_id
	Kind      string    // notifications.kind (reservation.created, payment.completed, ...)
	Title     string    // notifications.title
	Body      string    // notifications.body
	IsRead    bool      // notifications.is_read
	CreatedAt time.Time // notifications.created_at
}
