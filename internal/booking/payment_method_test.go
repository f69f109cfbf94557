package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCardFields() PaymentFields {
	return PaymentFields{
		CardNumber: "4242 4242 4242 4242",
		CardHolder: "Awa Kone",
		Expiry:     "09/27",
		CVC:        "123",
	}
}

func TestValidateCreditCard(t *testing.T) {
	res := ValidatePayment(MethodCreditCard, validCardFields())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)

	short := validCardFields()
	short.CardNumber = "4242"
	res = ValidatePayment(MethodCreditCard, short)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "card_number")

	noName := validCardFields()
	noName.CardHolder = "   "
	res = ValidatePayment(MethodCreditCard, noName)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "card_holder")

	badExpiry := validCardFields()
	badExpiry.Expiry = "13/27"
	res = ValidatePayment(MethodCreditCard, badExpiry)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "expiry")

	badCVC := validCardFields()
	badCVC.CVC = "12"
	res = ValidatePayment(MethodCreditCard, badCVC)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "cvc")
}

func TestValidateMobileMoney(t *testing.T) {
	res := ValidatePayment(MethodMobileMoney, PaymentFields{
		Phone:    "+225 07 00 95 47 48",
		Operator: "orange",
	})
	assert.True(t, res.Valid)

	res = ValidatePayment(MethodMobileMoney, PaymentFields{Phone: "123", Operator: "mtn"})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "phone")

	res = ValidatePayment(MethodMobileMoney, PaymentFields{Phone: "0700954748", Operator: "vodafone"})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "operator")
}

func TestValidateUnknownMethod(t *testing.T) {
	res := ValidatePayment("paypal", PaymentFields{})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "method")
	assert.NotNil(t, res.Errors)
}

func TestToPaymentDetailsCard(t *testing.T) {
	det := ToPaymentDetails(MethodCreditCard, validCardFields())
	assert.Equal(t, MethodCreditCard, det.Method)
	assert.Equal(t, "4242", det.CardLastFour)
	assert.Equal(t, "Awa Kone", det.CardHolder)
	assert.Equal(t, "09/27", det.Expiry)
	assert.Empty(t, det.Phone)
}

func TestToPaymentDetailsMobileMoney(t *testing.T) {
	det := ToPaymentDetails(MethodMobileMoney, PaymentFields{
		Phone:    "+225 07 00 95 47 48",
		Operator: " Wave ",
	})
	assert.Equal(t, MethodMobileMoney, det.Method)
	assert.Equal(t, "+2250700954748", det.Phone)
	assert.Equal(t, "wave", det.Operator)
	assert.Empty(t, det.CardLastFour)
}
