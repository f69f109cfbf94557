package repository

import (
	"context"
	"database/sql"
	"strings"
)

// FavoriteRepo persists artist bookmarks for bookers.  The pair
// (user_id, artist_id) is unique in the table.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo returns a new FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add bookmarks an artist for a user.  Adding an existing favorite
// is a no-op rather than an error.
func (r *FavoriteRepo) Add(ctx context.Context, userID, artistID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, artist_id) VALUES (?,?)",
		userID, artistID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil
	}
	return err
}

// Remove deletes a bookmark.  Removing a non-existent favorite is a
// no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, artistID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND artist_id = ?",
		userID, artistID)
	return err
}

// Exists reports whether the user bookmarked the artist.
func (r *FavoriteRepo) Exists(ctx context.Context, userID, artistID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM favorites WHERE user_id = ? AND artist_id = ? LIMIT 1",
		userID, artistID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's bookmarked artists, newest first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]ArtistRow, error) {
	const q = `SELECT a.id, a.stage_name, a.category, a.city, a.rating_avg, a.rating_count,
	                  COALESCE((SELECT MIN(s.price) FROM services s WHERE s.artist_id = a.id AND s.is_active = 1), 0)
	           FROM favorites f
	           JOIN artist_profiles a ON a.id = f.artist_id
	           WHERE f.user_id = ?
	           ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ArtistRow, 0)
	for rows.Next() {
		var d ArtistRow
		if err := rows.Scan(&d.ID, &d.StageName, &d.Category, &d.City, &d.RatingAvg, &d.RatingCount, &d.MinPrice); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
