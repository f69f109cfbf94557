package booking

import (
	"errors"
	"strings"
	"time"
)

// Wizard steps, in order.  The sequence is strictly linear: a draft
// advances one step at a time and can only revisit earlier steps.
const (
	StepEventDetails = iota
	StepLocation
	StepPayment
	StepConfirmation
)

// stepCount is the number of wizard steps.
const stepCount = 4

// StepNames maps step indexes to the labels surfaced to clients.
var StepNames = [stepCount]string{"event_details", "location", "payment", "confirmation"}

// ErrExitWizard is returned by Back when the draft is on the first
// step: there is nothing to go back to, the caller should leave the
// wizard (navigate to the artist profile).
var ErrExitWizard = errors.New("exit wizard")

// ErrForwardJump is returned by GoTo when the requested step is
// ahead of the current one.  Revisiting earlier steps is allowed,
// skipping ahead is not.
var ErrForwardJump = errors.New("cannot jump forward")

// ServiceOption is one entry of the service switcher shown when a
// draft was entered from an artist page without a fixed service.
type ServiceOption struct {
	ServiceID uint64 `json:"service_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
}

// StepFields carries the raw input for one wizard step.  Only the
// fields belonging to the draft's current step are read when
// advancing.
type StepFields struct {
	EventDate   string        `json:"event_date"`
	EventType   string        `json:"event_type"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Notes       string        `json:"notes"`
	Address     string        `json:"address"`
	PaymentType string        `json:"payment_type"`
	Method      string        `json:"method"`
	Payment     PaymentFields `json:"payment"`
}

// Draft is the serializable state of one reservation wizard.  It is
// persisted in Redis between requests and discarded on submit or
// expiry.  ServiceLocked records whether the draft was entered from
// a fixed service (no switcher) or from an artist page (switcher
// among ServiceOptions, first active service preselected).
type Draft struct {
	ID            string          `json:"id"`
	UserID        uint64          `json:"user_id"`
	ArtistID      uint64          `json:"artist_id"`
	ServiceID     uint64          `json:"service_id"`
	ServicePrice  int64           `json:"service_price"`
	ServiceLocked bool            `json:"service_locked"`
	Options       []ServiceOption `json:"options,omitempty"`
	Step          int             `json:"step"`
	Fields        StepFields      `json:"fields"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewDraft builds a fresh draft positioned on the first step.  When
// locked is false, options must contain the artist's active services
// and serviceID/price should already point at the first of them.
func NewDraft(id string, userID, artistID, serviceID uint64, price int64, locked bool, options []ServiceOption) *Draft {
	return &Draft{
		ID:            id,
		UserID:        userID,
		ArtistID:      artistID,
		ServiceID:     serviceID,
		ServicePrice:  price,
		ServiceLocked: locked,
		Options:       options,
		Step:          StepEventDetails,
		CreatedAt:     time.Now().UTC(),
	}
}

// Next validates the supplied fields against the current step and,
// when they pass, stores them and advances the draft by exactly one
// step.  On validation failure the draft does not move and the
// returned map carries per-field messages.  Calling Next on the
// confirmation step is a no-op with an error entry; submission is a
// separate operation.
func (d *Draft) Next(in StepFields) map[string]string {
	errs := d.validateStep(d.Step, in)
	if len(errs) > 0 {
		return errs
	}
	d.applyStep(d.Step, in)
	if d.Step < StepConfirmation {
		d.Step++
	}
	return nil
}

// Back moves one step towards the start.  On the first step it
// returns ErrExitWizard instead of moving.
func (d *Draft) Back() error {
	if d.Step == StepEventDetails {
		return ErrExitWizard
	}
	d.Step--
	return nil
}

// GoTo jumps to an already-visited step.  Forward jumps are refused
// with ErrForwardJump and leave the draft where it is.
func (d *Draft) GoTo(step int) error {
	if step < 0 || step >= stepCount {
		return ErrForwardJump
	}
	if step > d.Step {
		return ErrForwardJump
	}
	d.Step = step
	return nil
}

// SelectService switches the draft to another of the artist's active
// services.  It fails when the draft was entered with a fixed
// service or when the service is not among the offered options.
func (d *Draft) SelectService(serviceID uint64) error {
	if d.ServiceLocked {
		return errors.New("service is fixed for this draft")
	}
	for _, opt := range d.Options {
		if opt.ServiceID == serviceID {
			d.ServiceID = opt.ServiceID
			d.ServicePrice = opt.Price
			return nil
		}
	}
	return errors.New("service not offered by this artist")
}

// Complete reports whether the draft has reached the confirmation
// step with all earlier steps filled, i.e. it is ready to submit.
func (d *Draft) Complete() bool {
	if d.Step != StepConfirmation {
		return false
	}
	for s := StepEventDetails; s < StepConfirmation; s++ {
		if len(d.validateStep(s, d.Fields)) > 0 {
			return false
		}
	}
	return true
}

// validateStep returns per-field errors for one step's required
// fields.  Step 3 (confirmation) has no fields of its own.
func (d *Draft) validateStep(step int, in StepFields) map[string]string {
	errs := map[string]string{}
	switch step {
	case StepEventDetails:
		if strings.TrimSpace(in.EventDate) == "" {
			errs["event_date"] = "event date is required"
		}
		if strings.TrimSpace(in.EventType) == "" {
			errs["event_type"] = "event type is required"
		}
		if strings.TrimSpace(in.StartTime) == "" {
			errs["start_time"] = "start time is required"
		}
		if strings.TrimSpace(in.EndTime) == "" {
			errs["end_time"] = "end time is required"
		}
	case StepLocation:
		if strings.TrimSpace(in.Address) == "" {
			errs["address"] = "address is required"
		}
	case StepPayment:
		pt := strings.ToUpper(strings.TrimSpace(in.PaymentType))
		if pt != "FULL" && pt != "ADVANCE" {
			errs["payment_type"] = "payment type must be FULL or ADVANCE"
		}
		res := ValidatePayment(in.Method, in.Payment)
		for k, v := range res.Errors {
			errs[k] = v
		}
	case StepConfirmation:
		errs["step"] = "already on confirmation; submit instead"
	}
	return errs
}

// applyStep copies the fields belonging to one step into the draft.
func (d *Draft) applyStep(step int, in StepFields) {
	switch step {
	case StepEventDetails:
		d.Fields.EventDate = strings.TrimSpace(in.EventDate)
		d.Fields.EventType = strings.TrimSpace(in.EventType)
		d.Fields.StartTime = strings.TrimSpace(in.StartTime)
		d.Fields.EndTime = strings.TrimSpace(in.EndTime)
		d.Fields.Notes = strings.TrimSpace(in.Notes) // optional
	case StepLocation:
		d.Fields.Address = strings.TrimSpace(in.Address)
	case StepPayment:
		d.Fields.PaymentType = strings.ToUpper(strings.TrimSpace(in.PaymentType))
		d.Fields.Method = in.Method
		d.Fields.Payment = in.Payment
	}
}
