package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

// ServiceRepo provides CRUD operations on the services offered by
// artists.  Services are never deleted once a reservation references
// them; deactivation hides them from search and new drafts instead.
type ServiceRepo struct {
	db *sql.DB
}

// NewServiceRepo returns a new ServiceRepo bound to the given database.
func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func scanService(row interface{ Scan(...any) error }, s *model.Service) error {
	return row.Scan(&s.ID, &s.ArtistID, &s.Title, &s.Price, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

const serviceCols = "id, artist_id, title, price, is_active, created_at, updated_at"

// GetByID fetches a single service.  Returns ErrServiceNotFound when
// no row exists.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (*model.Service, error) {
	var s model.Service
	err := scanService(r.db.QueryRowContext(ctx,
		"SELECT "+serviceCols+" FROM services WHERE id = ?", id), &s)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActiveByArtist returns the active services of an artist,
// cheapest first.  Used to populate the wizard's service switcher.
func (r *ServiceRepo) ListActiveByArtist(ctx context.Context, artistID uint64) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+serviceCols+" FROM services WHERE artist_id = ? AND is_active = 1 ORDER BY price ASC",
		artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := scanService(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByArtist returns all services of an artist including inactive
// ones.  Used by the artist's own dashboard.
func (r *ServiceRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+serviceCols+" FROM services WHERE artist_id = ? ORDER BY created_at DESC",
		artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := scanService(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a service for an artist and returns its ID.
func (r *ServiceRepo) Create(ctx context.Context, artistID uint64, title string, price int64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO services (artist_id, title, price, is_active) VALUES (?,?,?,1)",
		artistID, title, price)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update modifies title, price and active flag of a service owned by
// the given artist.  Returns ErrForbidden when the service belongs
// to another artist and ErrServiceNotFound when it does not exist.
func (r *ServiceRepo) Update(ctx context.Context, id, artistID uint64, title string, price int64, isActive bool) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx, "SELECT artist_id FROM services WHERE id = ?", id).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrServiceNotFound
	}
	if err != nil {
		return err
	}
	if owner != artistID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE services SET title=?, price=?, is_active=? WHERE id=?",
		title, price, isActive, id)
	return err
}
