package model

import "time"

// ArtistProfile extends a user account with the public information
// shown on an artist page.  Every ARTIST user owns exactly one
// profile row.  Rating aggregates are denormalized here and updated
// whenever a review is created.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning user (role ARTIST).
//  StageName   – public display name.
//  Category    – artistic category (e.g. "dj", "band", "singer").
//  City        – home city used in search results.
//  Bio         – free-text presentation.
//  RatingAvg   – average review rating, 0 when unreviewed.
//  RatingCount – number of reviews behind RatingAvg.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type ArtistProfile struct {
	ID          uint64    // artist_profiles.id
	UserID      uint64    // artist_profiles.user_id
	StageName   string    // artist_profiles.stage_name
	Category    string    // artist_profiles.category
	City        string    // artist_profiles.city
	Bio         string    // artist_profiles.bio
	RatingAvg   float64   // artist_profiles.rating_avg
	RatingCount uint32    // artist_profiles.rating_count
	CreatedAt   time.Time // artist_profiles.created_at
	UpdatedAt   time.Time // artist_profiles.updated_at
}

// Service is a bookable offering published by an artist.  Prices are
// stored in whole currency units (no decimals).  Inactive services
// remain attached to historical reservations but are hidden from
// search and cannot be selected in a new reservation draft.
type Service struct {
	ID        uint64    // services.id
	ArtistID  uint64    // services.artist_id (artist_profiles.id)
	Title     string    // services.title
	Price     int64     // services.price
	IsActive  bool      // services.is_active
	CreatedAt time.Time // services.created_at
	UpdatedAt time.Time // services.updated_at
}

// Favorite links a booker to an artist they bookmarked.  The pair
// (UserID, ArtistID) is unique.
type Favorite struct {
	ID        uint64    // favorites.id
	UserID    uint64    // favorites.user_id
	ArtistID  uint64    // favorites.artist_id
	CreatedAt time.Time // favorites.created_at
}

// Review records a booker's feedback on a completed reservation.
// At most one review exists per reservation.
type Review struct {
	ID            uint64    // reviews.id
	ReservationID uint64    // reviews.reservation_id
	UserID        uint64    // reviews.user_id
	ArtistID      uint64    // reviews.artist_id
	Rating        uint8     // reviews.rating (1..5)
	Comment       string    // reviews.comment
	CreatedAt     time.Time // reviews.created_at
}
