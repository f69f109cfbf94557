package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

// NotificationRepo persists user notifications.  Rows are created
// only by the queue consumer; handlers read and mark them.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo returns a new NotificationRepo bound to the given database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Create inserts a notification for a user.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO notifications (user_id, kind, title, body) VALUES (?,?,?,?)",
		n.UserID, n.Kind, n.Title, n.Body)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// ListByUser returns the user's notifications, newest first, along
// with the unread count.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, int64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, kind, title, body, is_read, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC LIMIT 100",
		userID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	var unread int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0", userID).Scan(&unread); err != nil {
		return nil, 0, err
	}
	return out, unread, nil
}

// MarkRead flags one notification as read.  Returns sql.ErrNoRows
// when the notification does not belong to the user.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkAllRead flags every unread notification of the user as read.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0", userID)
	return err
}
