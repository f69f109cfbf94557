package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDraft() *Draft {
	return NewDraft("d-1", 7, 3, 11, 100000, true, nil)
}

func eventFields() StepFields {
	return StepFields{
		EventDate: "2026-10-10",
		EventType: "wedding",
		StartTime: "18:00",
		EndTime:   "23:00",
	}
}

func paymentStep() StepFields {
	return StepFields{
		PaymentType: "ADVANCE",
		Method:      MethodMobileMoney,
		Payment:     PaymentFields{Phone: "+2250700954748", Operator: "orange"},
	}
}

// completeDraft walks a draft through all three input steps.
func completeDraft(t *testing.T, d *Draft) {
	require.Nil(t, d.Next(eventFields()))
	require.Nil(t, d.Next(StepFields{Address: "Rue des Jardins, Abidjan"}))
	require.Nil(t, d.Next(paymentStep()))
	require.Equal(t, StepConfirmation, d.Step)
}

func TestNextRefusesEmptyDate(t *testing.T) {
	d := newTestDraft()
	in := eventFields()
	in.EventDate = ""
	errs := d.Next(in)
	assert.Contains(t, errs, "event_date")
	assert.Equal(t, StepEventDetails, d.Step)
}

func TestNextAdvancesExactlyOneStep(t *testing.T) {
	d := newTestDraft()
	assert.Nil(t, d.Next(eventFields()))
	assert.Equal(t, StepLocation, d.Step)
}

func TestLocationStepRequiresAddress(t *testing.T) {
	d := newTestDraft()
	require.Nil(t, d.Next(eventFields()))
	errs := d.Next(StepFields{})
	assert.Contains(t, errs, "address")
	assert.Equal(t, StepLocation, d.Step)
}

func TestPaymentStepValidatesMethodFields(t *testing.T) {
	d := newTestDraft()
	require.Nil(t, d.Next(eventFields()))
	require.Nil(t, d.Next(StepFields{Address: "Cocody"}))

	errs := d.Next(StepFields{PaymentType: "ADVANCE", Method: MethodMobileMoney, Payment: PaymentFields{Phone: "123", Operator: "mtn"}})
	assert.Contains(t, errs, "phone")
	assert.Equal(t, StepPayment, d.Step)

	assert.Nil(t, d.Next(paymentStep()))
	assert.Equal(t, StepConfirmation, d.Step)
}

func TestGoToAsymmetry(t *testing.T) {
	d := newTestDraft()
	// forward jump from the first step is refused
	assert.ErrorIs(t, d.GoTo(2), ErrForwardJump)
	assert.Equal(t, StepEventDetails, d.Step)

	completeDraft(t, d)
	require.Nil(t, d.GoTo(2))
	assert.Equal(t, StepPayment, d.Step)
	// revisiting the first step from step 2 is allowed
	require.Nil(t, d.GoTo(0))
	assert.Equal(t, StepEventDetails, d.Step)
}

func TestBackExitsOnFirstStep(t *testing.T) {
	d := newTestDraft()
	assert.ErrorIs(t, d.Back(), ErrExitWizard)

	require.Nil(t, d.Next(eventFields()))
	assert.NoError(t, d.Back())
	assert.Equal(t, StepEventDetails, d.Step)
}

func TestComplete(t *testing.T) {
	d := newTestDraft()
	assert.False(t, d.Complete())
	completeDraft(t, d)
	assert.True(t, d.Complete())
}

func TestSelectService(t *testing.T) {
	opts := []ServiceOption{
		{ServiceID: 11, Title: "DJ set", Price: 100000},
		{ServiceID: 12, Title: "Live band", Price: 250000},
	}
	d := NewDraft("d-2", 7, 3, 11, 100000, false, opts)
	require.NoError(t, d.SelectService(12))
	assert.Equal(t, uint64(12), d.ServiceID)
	assert.Equal(t, int64(250000), d.ServicePrice)

	assert.Error(t, d.SelectService(99))

	locked := newTestDraft()
	assert.Error(t, locked.SelectService(11))
}
