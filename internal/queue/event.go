// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into notification rows.
package queue

// Queue names.  Events are published to the queue matching their kind.
const (
	ReservationCreatedQueue = "reservation.created"
	PaymentCompletedQueue   = "payment.completed"
)

// ReservationCreatedEvent is published when a booker submits a reservation.
// It carries enough information for downstream consumers to notify both
// parties without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	BookerID      uint64 `json:"booker_id"`
	ArtistID      uint64 `json:"artist_id"`
	ArtistUserID  uint64 `json:"artist_user_id"`
	ServiceTitle  string `json:"service_title"`
	EventDate     string `json:"event_date"`
	Amount        int64  `json:"amount"`
	ServiceFee    int64  `json:"service_fee"`
	CreatedAt     string `json:"created_at"`
}

// PaymentCompletedEvent is published when a payment is recorded against a
// reservation.  PaymentStatus reflects the reservation's payment standing
// after this payment (PARTIAL or PAID).
type PaymentCompletedEvent struct {
	PaymentID     uint64 `json:"payment_id"`
	ReservationID uint64 `json:"reservation_id"`
	BookerID      uint64 `json:"booker_id"`
	ArtistUserID  uint64 `json:"artist_user_id"`
	Amount        int64  `json:"amount"`
	PaymentType   string `json:"payment_type"`
	PaymentStatus string `json:"payment_status"`
	Reference     string `json:"reference"`
	PaidAt        string `json:"paid_at"`
}
