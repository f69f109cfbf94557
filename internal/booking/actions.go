package booking

import "github.com/iliyamo/artist-booking-marketplace/internal/model"

// Action is one contextual button a client should render for a
// reservation.  Variant distinguishes primary from destructive
// styling; Key is the stable machine identifier clients dispatch on.
type Action struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

// ActionsFor computes the ordered list of actions available on a
// reservation.  Ordering is part of the contract: status-dependent
// actions come first, the contact action is always appended last
// when an artist is attached.  An empty slice means the client
// renders no action area.
//
//  PENDING              -> pay (primary), cancel (destructive)
//  CONFIRMED            -> cancel (destructive)
//  COMPLETED, no review -> review (primary)
//  CANCELLED            -> nothing status-specific
func ActionsFor(res *model.Reservation, hasReview bool) []Action {
	actions := []Action{}
	switch res.Status {
	case model.ReservationPending:
		actions = append(actions,
			Action{Key: "pay", Label: "Finalize payment", Variant: "primary"},
			Action{Key: "cancel", Label: "Cancel", Variant: "destructive"},
		)
	case model.ReservationConfirmed:
		actions = append(actions,
			Action{Key: "cancel", Label: "Cancel", Variant: "destructive"},
		)
	case model.ReservationCompleted:
		if !hasReview {
			actions = append(actions,
				Action{Key: "review", Label: "Leave a review", Variant: "primary"},
			)
		}
	}
	if res.ArtistID != 0 {
		actions = append(actions,
			Action{Key: "contact", Label: "Contact artist", Variant: "secondary"},
		)
	}
	return actions
}
