package model

import "time"

// Reservation status values.  Transitions between them are governed
// by booking.CanTransition; handlers must not mutate status freely.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCompleted = "COMPLETED"
	ReservationCancelled = "CANCELLED"
)

// Payment-status values tracked on a reservation.  UNPAID moves to
// PARTIAL when an advance payment lands and to PAID once the full
// total is covered.
const (
	PaymentStatusUnpaid  = "UNPAID"
	PaymentStatusPartial = "PARTIAL"
	PaymentStatusPaid    = "PAID"
)

// Reservation records a booker's booking of an artist service for a
// specific date and venue.  Amount is the service price at booking
// time and ServiceFee the platform commission derived from it; both
// are frozen on creation so later price edits do not affect past
// bookings.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – booker who made the reservation.
//  ArtistID      – artist profile being booked.
//  ServiceID     – service selected in the wizard.
//  EventDate     – calendar date of the event.
//  StartTime     – event start, "HH:MM".
//  EndTime       – event end, "HH:MM".
//  EventType     – event-type tag (wedding, concert, private...).
//  Address       – venue address collected in the location step.
//  Notes         – free-text notes for the artist.
//  Amount        – service price in whole currency units.
//  ServiceFee    – platform commission in whole currency units.
//  Status        – reservation state (see constants above).
//  PaymentStatus – payment coverage state (see constants above).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Reservation struct {
	ID            uint64    // reservations.id
	UserID        uint64    // reservations.user_id
	ArtistID      uint64    // reservations.artist_id
	ServiceID     uint64    // reservations.service_id
	EventDate     string    // reservations.event_date (YYYY-MM-DD)
	StartTime     string    // reservations.start_time
	EndTime       string    // reservations.end_time
	EventType     string    // reservations.event_type
	Address       string    // reservations.address
	Notes         string    // reservations.notes
	Amount        int64     // reservations.amount
	ServiceFee    int64     // reservations.service_fee
	Status        string    // reservations.status
	PaymentStatus string    // reservations.payment_status
	CreatedAt     time.Time // reservations.created_at
	UpdatedAt     time.Time // reservations.updated_at
}
