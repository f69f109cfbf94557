package booking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationFee(t *testing.T) {
	assert.Equal(t, 5000.0, ReservationFee(100000))
	assert.Equal(t, 500.0, ReservationFee(10000))
	// rounding: 5% of 1010 is 50.5, rounds half away from zero
	assert.Equal(t, 51.0, ReservationFee(1010))
	assert.Equal(t, 0.0, ReservationFee(0))
}

func TestTotalToPay(t *testing.T) {
	assert.Equal(t, 105000.0, TotalToPay(100000))
	for _, price := range []float64{0, 1, 999, 50000, 123456} {
		assert.Equal(t, price+ReservationFee(price), TotalToPay(price))
	}
}

func TestAmountDue(t *testing.T) {
	assert.Equal(t, 105000.0, AmountDue(105000, "FULL"))
	assert.Equal(t, 52500.0, AmountDue(105000, "ADVANCE"))
	// odd totals round to the nearest whole unit
	assert.Equal(t, 51.0, AmountDue(101, "ADVANCE"))
	// unknown types behave like FULL
	assert.Equal(t, 105000.0, AmountDue(105000, "whatever"))
}

func TestRemainingBalance(t *testing.T) {
	assert.Equal(t, 52500.0, RemainingBalance(105000, "ADVANCE"))
	assert.Equal(t, 0.0, RemainingBalance(105000, "FULL"))
	assert.Equal(t, 105000.0, AmountDue(105000, "ADVANCE")+RemainingBalance(105000, "ADVANCE"))
}

func TestPricingRejectsNonFiniteInput(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1} {
		assert.Equal(t, 0.0, ReservationFee(v))
		assert.Equal(t, 0.0, TotalToPay(v))
		assert.Equal(t, 0.0, AmountDue(v, "FULL"))
		assert.Equal(t, 0.0, RemainingBalance(v, "ADVANCE"))
	}
}
