package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

// PaymentRepo persists payments recorded against reservations.
// Payments are written inside the same transaction that updates the
// reservation's payment status so the two can never diverge.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts a new payment within the scope of an existing
// transaction and populates the generated ID on the record.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `INSERT INTO payments
	           (reservation_id, user_id, amount, service_fee, payment_type, method, details, status, reference)
	           VALUES (?,?,?,?,?,?,?,?,?)`
	result, err := tx.ExecContext(ctx, q,
		p.ReservationID, p.UserID, p.Amount, p.ServiceFee, p.PaymentType,
		p.Method, p.Details, p.Status, p.Reference)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// SumCompletedTx returns the amount already collected for a
// reservation within a transaction.
func (r *PaymentRepo) SumCompletedTx(ctx context.Context, tx *sql.Tx, reservationID uint64) (int64, error) {
	var sum sql.NullInt64
	err := tx.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM payments WHERE reservation_id = ? AND status = ?",
		reservationID, model.PaymentCompleted).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum.Int64, nil
}

// PaymentListQuery defines filters & pagination for the payment
// listing.  From/To bound the creation date (inclusive, YYYY-MM-DD),
// Status filters on payment status, Search matches the receipt
// reference and the booked service title.
type PaymentListQuery struct {
	From     string
	To       string
	Status   string
	Search   string
	Page     int
	PageSize int
}

// PaymentRow is one entry of the payment listing.
type PaymentRow struct {
	ID            uint64 `json:"id"`
	ReservationID uint64 `json:"reservation_id"`
	Amount        int64  `json:"amount"`
	ServiceFee    int64  `json:"service_fee"`
	PaymentType   string `json:"payment_type"`
	Method        string `json:"method"`
	Status        string `json:"status"`
	Reference     string `json:"reference"`
	ServiceTitle  string `json:"service_title"`
	CreatedAt     string `json:"created_at"`
}

// ListByUser returns the payments made by a booker matching the
// query plus the total count for pagination, newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID uint64, q PaymentListQuery) ([]PaymentRow, int64, error) {
	where := []string{"p.user_id = ?"}
	args := []any{userID}

	if q.From != "" {
		where = append(where, "DATE(p.created_at) >= ?")
		args = append(args, q.From)
	}
	if q.To != "" {
		where = append(where, "DATE(p.created_at) <= ?")
		args = append(args, q.To)
	}
	if q.Status != "" {
		where = append(where, "p.status = ?")
		args = append(args, strings.ToUpper(q.Status))
	}
	if q.Search != "" {
		where = append(where, "(p.reference LIKE ? OR LOWER(s.title) LIKE ?)")
		args = append(args, "%"+q.Search+"%", "%"+strings.ToLower(q.Search)+"%")
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM payments p
		JOIN reservations r ON r.id = p.reservation_id
		JOIN services s ON s.id = r.service_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			p.id,
			p.reservation_id,
			p.amount,
			p.service_fee,
			p.payment_type,
			p.method,
			p.status,
			p.reference,
			s.title,
			DATE_FORMAT(p.created_at, '%Y-%m-%dT%TZ')
		FROM payments p
		JOIN reservations r ON r.id = p.reservation_id
		JOIN services s ON s.id = r.service_id
		WHERE ` + cond + `
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PaymentRow, 0, limit)
	for rows.Next() {
		var d PaymentRow
		if err := rows.Scan(
			&d.ID,
			&d.ReservationID,
			&d.Amount,
			&d.ServiceFee,
			&d.PaymentType,
			&d.Method,
			&d.Status,
			&d.Reference,
			&d.ServiceTitle,
			&d.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Receipt aggregates everything printed on a payment receipt.
type Receipt struct {
	PaymentID     uint64 `json:"payment_id"`
	Reference     string `json:"reference"`
	ReservationID uint64 `json:"reservation_id"`
	BookerName    string `json:"booker_name"`
	ArtistName    string `json:"artist_name"`
	ServiceTitle  string `json:"service_title"`
	EventDate     string `json:"event_date"`
	Amount        int64  `json:"amount"`
	ServiceFee    int64  `json:"service_fee"`
	PaymentType   string `json:"payment_type"`
	Method        string `json:"method"`
	Status        string `json:"status"`
	PaidAt        string `json:"paid_at"`
}

// GetReceiptForUser loads the receipt data of a payment belonging to
// the given booker.  Returns sql.ErrNoRows when the payment does not
// exist and ErrForbidden when it belongs to another user.
func (r *PaymentRepo) GetReceiptForUser(ctx context.Context, paymentID, userID uint64) (*Receipt, error) {
	const q = `SELECT p.id, p.reference, p.reservation_id, p.user_id,
	                  u.full_name, a.stage_name, s.title,
	                  DATE_FORMAT(r.event_date, '%Y-%m-%d'),
	                  p.amount, p.service_fee, p.payment_type, p.method, p.status,
	                  DATE_FORMAT(p.created_at, '%Y-%m-%dT%TZ')
	           FROM payments p
	           JOIN reservations r ON r.id = p.reservation_id
	           JOIN services s ON s.id = r.service_id
	           JOIN artist_profiles a ON a.id = r.artist_id
	           JOIN users u ON u.id = p.user_id
	           WHERE p.id = ?`
	var rec Receipt
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, q, paymentID).Scan(
		&rec.PaymentID, &rec.Reference, &rec.ReservationID, &ownerID,
		&rec.BookerName, &rec.ArtistName, &rec.ServiceTitle,
		&rec.EventDate,
		&rec.Amount, &rec.ServiceFee, &rec.PaymentType, &rec.Method, &rec.Status,
		&rec.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}
	return &rec, nil
}
