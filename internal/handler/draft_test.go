package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/artist-booking-marketplace/internal/booking"
)

func TestDraftViewPricingFull(t *testing.T) {
	d := booking.NewDraft("d-1", 7, 3, 11, 100000, true, nil)
	d.Fields.PaymentType = "FULL"

	v := viewOf(d)
	assert.Equal(t, int64(100000), v.Pricing.Price)
	assert.Equal(t, int64(5000), v.Pricing.Fee)
	assert.Equal(t, int64(105000), v.Pricing.Total)
	assert.Equal(t, int64(105000), v.Pricing.AmountDue)
	assert.Equal(t, int64(0), v.Pricing.Remaining)
}

func TestDraftViewPricingAdvance(t *testing.T) {
	d := booking.NewDraft("d-1", 7, 3, 11, 100000, true, nil)
	d.Fields.PaymentType = "ADVANCE"

	v := viewOf(d)
	assert.Equal(t, int64(52500), v.Pricing.AmountDue)
	assert.Equal(t, int64(52500), v.Pricing.Remaining)
}

func TestDraftViewStepName(t *testing.T) {
	d := booking.NewDraft("d-1", 7, 3, 11, 100000, true, nil)
	assert.Equal(t, "event_details", viewOf(d).StepName)

	errs := d.Next(booking.StepFields{
		EventDate: "2026-09-12", EventType: "wedding",
		StartTime: "18:00", EndTime: "23:00",
	})
	assert.Nil(t, errs)
	assert.Equal(t, "location", viewOf(d).StepName)
}
