package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/artist-booking-marketplace/internal/booking"
)

// DraftStore keeps in-progress reservation wizard drafts in Redis.
// Drafts are transient by nature: they expire after TTL and are
// deleted on successful submission.  Keys are namespaced per user so
// a booker can only ever load their own drafts.
type DraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDraftStore returns a DraftStore with the given TTL.  A zero TTL
// defaults to 30 minutes.
func NewDraftStore(rdb *redis.Client, ttl time.Duration) *DraftStore {
	if rdb == nil {
		panic("nil redis client passed to NewDraftStore")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &DraftStore{rdb: rdb, ttl: ttl}
}

func draftKey(userID uint64, draftID string) string {
	return "draft:" + strconv.FormatUint(userID, 10) + ":" + draftID
}

// Save writes a draft, resetting its TTL.  Every wizard mutation
// goes through here so an active draft never expires mid-session.
func (s *DraftStore) Save(ctx context.Context, d *booking.Draft) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, draftKey(d.UserID, d.ID), body, s.ttl).Err()
}

// Get loads a draft for a user.  Returns ErrDraftNotFound when the
// draft expired or never existed.
func (s *DraftStore) Get(ctx context.Context, userID uint64, draftID string) (*booking.Draft, error) {
	body, err := s.rdb.Get(ctx, draftKey(userID, draftID)).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	var d booking.Draft
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a draft after submission or abandonment.
func (s *DraftStore) Delete(ctx context.Context, userID uint64, draftID string) error {
	return s.rdb.Del(ctx, draftKey(userID, draftID)).Err()
}
