package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

// ReviewRepo persists reviews left by bookers on completed
// reservations.  At most one review exists per reservation.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// CreateTx inserts a review within an existing transaction.  A
// duplicate review for the same reservation returns ErrConflict.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rev *model.Review) error {
	const q = `INSERT INTO reviews (reservation_id, user_id, artist_id, rating, comment) VALUES (?,?,?,?,?)`
	result, err := tx.ExecContext(ctx, q, rev.ReservationID, rev.UserID, rev.ArtistID, rev.Rating, rev.Comment)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return nil
}

// ExistsForReservation reports whether the reservation already has a
// review.  Feeds the action matrix's "no review yet" condition.
func (r *ReviewRepo) ExistsForReservation(ctx context.Context, reservationID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM reviews WHERE reservation_id = ? LIMIT 1", reservationID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByArtist returns the reviews of an artist, newest first.
func (r *ReviewRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, reservation_id, user_id, artist_id, rating, comment, created_at FROM reviews WHERE artist_id = ? ORDER BY created_at DESC",
		artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.ReservationID, &rev.UserID, &rev.ArtistID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}
