package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  A
// reservation links a booker, an artist profile and one of the
// artist's services with a date, a venue and frozen pricing.  All
// timestamp fields are assumed to be stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning reservations and payments.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// CreateReservation inserts a new reservation and populates the
// generated ID and timestamps on the provided record.  It satisfies
// booking.ReservationStore.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (user_id, artist_id, service_id, event_date, start_time, end_time,
	            event_type, address, notes, amount, service_fee, status, payment_status)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`
	result, err := r.db.ExecContext(ctx, q,
		res.UserID, res.ArtistID, res.ServiceID, res.EventDate, res.StartTime, res.EndTime,
		res.EventType, res.Address, res.Notes, res.Amount, res.ServiceFee, res.Status, res.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back timestamps and defaults
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// ReservationDetail encapsulates a reservation along with related
// artist and service information.  It is returned by the listing and
// detail queries for display to bookers and artists.
type ReservationDetail struct {
	ID            uint64 `json:"id"`
	UserID        uint64 `json:"user_id"`
	ArtistID      uint64 `json:"artist_id"`
	ServiceID     uint64 `json:"service_id"`
	EventDate     string `json:"event_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	EventType     string `json:"event_type"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
	Amount        int64  `json:"amount"`
	ServiceFee    int64  `json:"service_fee"`
	Total         int64  `json:"total"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	ServiceTitle  string `json:"service_title"`
	ArtistName    string `json:"artist_name"`
	CreatedAt     string `json:"created_at"`
}

const detailSelect = `SELECT r.id, r.user_id, r.artist_id, r.service_id,
	       DATE_FORMAT(r.event_date, '%Y-%m-%d'), r.start_time, r.end_time,
	       r.event_type, r.address, r.notes, r.amount, r.service_fee,
	       r.status, r.payment_status, s.title, a.stage_name,
	       DATE_FORMAT(r.created_at, '%Y-%m-%dT%TZ')
	FROM reservations r
	JOIN services s ON s.id = r.service_id
	JOIN artist_profiles a ON a.id = r.artist_id`

func scanDetail(row interface{ Scan(...any) error }, d *ReservationDetail) error {
	err := row.Scan(
		&d.ID, &d.UserID, &d.ArtistID, &d.ServiceID,
		&d.EventDate, &d.StartTime, &d.EndTime,
		&d.EventType, &d.Address, &d.Notes, &d.Amount, &d.ServiceFee,
		&d.Status, &d.PaymentStatus, &d.ServiceTitle, &d.ArtistName,
		&d.CreatedAt,
	)
	if err == nil {
		d.Total = d.Amount + d.ServiceFee
	}
	return err
}

// GetByIDForUser returns a single reservation visible to the given
// user: either the booker who created it or the artist it books.
// When no such reservation exists, sql.ErrNoRows is returned; when
// it exists but belongs to neither party, ErrForbidden.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, reservationID, userID uint64) (*ReservationDetail, error) {
	var d ReservationDetail
	var artistUserID uint64
	const q = detailSelect + `, a.user_id WHERE r.id = ?`
	row := r.db.QueryRowContext(ctx, q, reservationID)
	err := row.Scan(
		&d.ID, &d.UserID, &d.ArtistID, &d.ServiceID,
		&d.EventDate, &d.StartTime, &d.EndTime,
		&d.EventType, &d.Address, &d.Notes, &d.Amount, &d.ServiceFee,
		&d.Status, &d.PaymentStatus, &d.ServiceTitle, &d.ArtistName,
		&d.CreatedAt, &artistUserID,
	)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID && artistUserID != userID {
		return nil, ErrForbidden
	}
	d.Total = d.Amount + d.ServiceFee
	return &d, nil
}

// ListByUser returns all reservations created by a booker, newest
// first.  When no reservations exist, an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = detailSelect + ` WHERE r.user_id = ? ORDER BY r.created_at DESC`
	return r.listDetails(ctx, q, userID)
}

// ListByArtist returns all reservations booking the given artist
// profile, newest first.  Used by the artist dashboard.
func (r *ReservationRepo) ListByArtist(ctx context.Context, artistID uint64) ([]ReservationDetail, error) {
	const q = detailSelect + ` WHERE r.artist_id = ? ORDER BY r.created_at DESC`
	return r.listDetails(ctx, q, artistID)
}

func (r *ReservationRepo) listDetails(ctx context.Context, q string, arg any) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := scanDetail(rows, &d); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// GetOwnershipTx loads the fields needed to authorize and validate a
// status change within a transaction: current status, the booker's
// user ID and the artist's user ID.
func (r *ReservationRepo) GetOwnershipTx(ctx context.Context, tx *sql.Tx, reservationID uint64) (status string, bookerID, artistUserID uint64, err error) {
	const q = `SELECT r.status, r.user_id, a.user_id
	           FROM reservations r
	           JOIN artist_profiles a ON a.id = r.artist_id
	           WHERE r.id = ?`
	err = tx.QueryRowContext(ctx, q, reservationID).Scan(&status, &bookerID, &artistUserID)
	return
}

// UpdateStatusTx sets the reservation status within a transaction.
// Transition legality is the caller's responsibility.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, reservationID uint64, status string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", status, reservationID)
	return err
}

// GetForPaymentTx loads the pricing and ownership fields of a
// reservation within a transaction, locking the row so concurrent
// payments serialize.
func (r *ReservationRepo) GetForPaymentTx(ctx context.Context, tx *sql.Tx, reservationID uint64) (*model.Reservation, error) {
	const q = `SELECT id, user_id, artist_id, service_id, amount, service_fee, status, payment_status
	           FROM reservations WHERE id = ? FOR UPDATE`
	var res model.Reservation
	err := tx.QueryRowContext(ctx, q, reservationID).Scan(
		&res.ID, &res.UserID, &res.ArtistID, &res.ServiceID,
		&res.Amount, &res.ServiceFee, &res.Status, &res.PaymentStatus,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdatePaymentStatusTx sets the derived payment status within a
// transaction.
func (r *ReservationRepo) UpdatePaymentStatusTx(ctx context.Context, tx *sql.Tx, reservationID uint64, paymentStatus string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE reservations SET payment_status=? WHERE id=?", paymentStatus, reservationID)
	return err
}
