package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

// ArtistRepo provides access to artist profiles and the public
// artist search.  Rating aggregates on the profile row are updated
// through ApplyReviewTx whenever a review lands.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo returns a new ArtistRepo bound to the given database.
func NewArtistRepo(db *sql.DB) *ArtistRepo { return &ArtistRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *ArtistRepo) DB() *sql.DB { return r.db }

// CreateProfile inserts the profile row for a newly registered
// artist and returns its ID.
func (r *ArtistRepo) CreateProfile(ctx context.Context, p *model.ArtistProfile) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO artist_profiles (user_id, stage_name, category, city, bio) VALUES (?,?,?,?,?)",
		p.UserID, p.StageName, p.Category, p.City, p.Bio)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID loads an artist profile together with the owning user's
// contact fields.  Returns ErrArtistNotFound when no row exists.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*ArtistDetail, error) {
	const q = `SELECT a.id, a.user_id, a.stage_name, a.category, a.city, a.bio,
	                  a.rating_avg, a.rating_count, u.full_name, u.email, u.phone
	           FROM artist_profiles a
	           JOIN users u ON u.id = a.user_id
	           WHERE a.id = ?`
	var d ArtistDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.UserID, &d.StageName, &d.Category, &d.City, &d.Bio,
		&d.RatingAvg, &d.RatingCount, &d.FullName, &d.Email, &d.Phone,
	)
	if err == sql.ErrNoRows {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByUserID resolves the profile owned by a user.  Used by
// artist-role handlers to scope writes to the caller's own profile.
func (r *ArtistRepo) GetByUserID(ctx context.Context, userID uint64) (*model.ArtistProfile, error) {
	const q = `SELECT id, user_id, stage_name, category, city, bio, rating_avg, rating_count, created_at, updated_at
	           FROM artist_profiles WHERE user_id = ?`
	var p model.ArtistProfile
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&p.ID, &p.UserID, &p.StageName, &p.Category, &p.City, &p.Bio,
		&p.RatingAvg, &p.RatingCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ApplyReviewTx folds a new review rating into the profile's
// denormalized aggregates within an existing transaction.
func (r *ArtistRepo) ApplyReviewTx(ctx context.Context, tx *sql.Tx, artistID uint64, rating uint8) error {
	const q = `UPDATE artist_profiles
	           SET rating_avg = (rating_avg * rating_count + ?) / (rating_count + 1),
	               rating_count = rating_count + 1
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, rating, artistID)
	return err
}

// ArtistDetail is the public shape of an artist page: the profile
// plus the owning user's contact fields.
type ArtistDetail struct {
	ID          uint64  `json:"id"`
	UserID      uint64  `json:"user_id"`
	StageName   string  `json:"stage_name"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	Bio         string  `json:"bio"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount uint32  `json:"rating_count"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
}

// ArtistSearchQuery defines filters & pagination for the public
// artist search.  PriceBucket selects artists having at least one
// active service inside the bucket: "low" (< 50 000), "mid"
// (50 000 – 200 000), "high" (> 200 000).  Sort accepts "rating",
// "price_asc", "price_desc"; anything else sorts by newest profile.
type ArtistSearchQuery struct {
	Text        string
	Category    string
	City        string
	PriceBucket string
	MinRating   float64
	Sort        string
	Page        int
	PageSize    int
}

// ArtistRow is one public search result.  MinPrice is the cheapest
// active service of the artist, used for "from X" display.
type ArtistRow struct {
	ID          uint64  `json:"id"`
	StageName   string  `json:"stage_name"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount uint32  `json:"rating_count"`
	MinPrice    int64   `json:"min_price"`
}

// Search returns artists matching the query plus the total count for
// pagination.  Only artists with at least one active service appear.
func (r *ArtistRepo) Search(ctx context.Context, q ArtistSearchQuery) ([]ArtistRow, int64, error) {
	where := []string{"s.is_active = 1"}
	args := []any{}

	if q.Text != "" {
		where = append(where, "(LOWER(a.stage_name) LIKE ? OR LOWER(a.bio) LIKE ?)")
		pat := "%" + strings.ToLower(q.Text) + "%"
		args = append(args, pat, pat)
	}
	if q.Category != "" {
		where = append(where, "LOWER(a.category) = ?")
		args = append(args, strings.ToLower(q.Category))
	}
	if q.City != "" {
		where = append(where, "LOWER(a.city) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	switch strings.ToLower(q.PriceBucket) {
	case "low":
		where = append(where, "s.price < 50000")
	case "mid":
		where = append(where, "s.price BETWEEN 50000 AND 200000")
	case "high":
		where = append(where, "s.price > 200000")
	}
	if q.MinRating > 0 {
		where = append(where, "a.rating_avg >= ?")
		args = append(args, q.MinRating)
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(DISTINCT a.id)
		FROM artist_profiles a
		JOIN services s ON s.artist_id = a.id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "a.created_at DESC"
	switch strings.ToLower(q.Sort) {
	case "rating":
		order = "a.rating_avg DESC, a.rating_count DESC"
	case "price_asc":
		order = "min_price ASC"
	case "price_desc":
		order = "min_price DESC"
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			a.id,
			a.stage_name,
			a.category,
			a.city,
			a.rating_avg,
			a.rating_count,
			MIN(s.price) AS min_price
		FROM artist_profiles a
		JOIN services s ON s.artist_id = a.id
		WHERE ` + cond + `
		GROUP BY a.id
		ORDER BY ` + order + `
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ArtistRow, 0, limit)
	for rows.Next() {
		var d ArtistRow
		if err := rows.Scan(
			&d.ID,
			&d.StageName,
			&d.Category,
			&d.City,
			&d.RatingAvg,
			&d.RatingCount,
			&d.MinPrice,
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
