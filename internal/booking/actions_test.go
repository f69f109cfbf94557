package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
)

func keysOf(actions []Action) []string {
	keys := make([]string, 0, len(actions))
	for _, a := range actions {
		keys = append(keys, a.Key)
	}
	return keys
}

func TestActionsForPending(t *testing.T) {
	res := &model.Reservation{Status: model.ReservationPending, ArtistID: 3}
	assert.Equal(t, []string{"pay", "cancel", "contact"}, keysOf(ActionsFor(res, false)))
}

func TestActionsForConfirmed(t *testing.T) {
	res := &model.Reservation{Status: model.ReservationConfirmed, ArtistID: 3}
	assert.Equal(t, []string{"cancel", "contact"}, keysOf(ActionsFor(res, false)))
}

func TestActionsForCompleted(t *testing.T) {
	res := &model.Reservation{Status: model.ReservationCompleted, ArtistID: 3}
	assert.Equal(t, []string{"review", "contact"}, keysOf(ActionsFor(res, false)))
	// once reviewed, only contact remains
	assert.Equal(t, []string{"contact"}, keysOf(ActionsFor(res, true)))
}

func TestActionsForCancelled(t *testing.T) {
	res := &model.Reservation{Status: model.ReservationCancelled, ArtistID: 3}
	assert.Equal(t, []string{"contact"}, keysOf(ActionsFor(res, false)))
}

func TestActionsForEmpty(t *testing.T) {
	// cancelled with no artist reference yields no actions at all
	res := &model.Reservation{Status: model.ReservationCancelled}
	actions := ActionsFor(res, false)
	assert.NotNil(t, actions)
	assert.Len(t, actions, 0)
}
