package booking

import (
	"regexp"
	"strings"
)

// Payment methods supported by the marketplace.  Every method has
// its own required fields, validation rules and normalized payload
// shape; all three live here so no handler carries its own switch
// over method strings.
const (
	MethodCreditCard  = "credit_card"
	MethodMobileMoney = "mobile_money"
)

// MobileOperators is the fixed set of mobile-money operators a
// payment may be routed through.
var MobileOperators = map[string]bool{
	"orange": true,
	"mtn":    true,
	"moov":   true,
	"wave":   true,
}

// PaymentFields carries the raw, user-entered fields of a payment
// form.  Only the fields relevant to the selected method are read.
type PaymentFields struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
	Phone      string `json:"phone"`
	Operator   string `json:"operator"`
}

// PaymentDetails is the normalized payload persisted with a payment.
// Exactly one of the two field groups is populated depending on the
// method.  Card numbers are stored masked; only the last four digits
// survive normalization.
type PaymentDetails struct {
	Method       string `json:"method"`
	CardLastFour string `json:"card_last_four,omitempty"`
	CardHolder   string `json:"card_holder,omitempty"`
	Expiry       string `json:"expiry,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Operator     string `json:"operator,omitempty"`
}

// ValidationResult reports the outcome of validating payment fields.
// Errors maps field names to human-readable messages and is empty
// when Valid is true.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

var (
	cardNumberRe = regexp.MustCompile(`^[0-9]{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvcRe        = regexp.MustCompile(`^[0-9]{3,4}$`)
	phoneRe      = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
)

// ValidatePayment checks the fields required by the given method and
// returns a structured result.  It never panics and never returns a
// nil Errors map.  Unknown methods fail with a "method" error.
func ValidatePayment(method string, f PaymentFields) ValidationResult {
	errs := map[string]string{}
	switch method {
	case MethodCreditCard:
		if !cardNumberRe.MatchString(stripSpaces(f.CardNumber)) {
			errs["card_number"] = "card number must be 16 digits"
		}
		if strings.TrimSpace(f.CardHolder) == "" {
			errs["card_holder"] = "cardholder name is required"
		}
		if !expiryRe.MatchString(strings.TrimSpace(f.Expiry)) {
			errs["expiry"] = "expiry must be MM/YY"
		}
		if !cvcRe.MatchString(strings.TrimSpace(f.CVC)) {
			errs["cvc"] = "cvc must be 3 or 4 digits"
		}
	case MethodMobileMoney:
		if !phoneRe.MatchString(normalizePhone(f.Phone)) {
			errs["phone"] = "phone must be 9 to 15 digits"
		}
		if !MobileOperators[strings.ToLower(strings.TrimSpace(f.Operator))] {
			errs["operator"] = "operator must be one of orange, mtn, moov, wave"
		}
	default:
		errs["method"] = "unsupported payment method"
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ToPaymentDetails normalizes validated fields into the persisted
// payload shape.  Formatting characters are stripped: spaces inside
// card numbers, everything but digits and a leading plus in phone
// numbers.  Callers must validate first; ToPaymentDetails does not
// re-check formats.
func ToPaymentDetails(method string, f PaymentFields) PaymentDetails {
	switch method {
	case MethodCreditCard:
		num := stripSpaces(f.CardNumber)
		last4 := num
		if len(num) > 4 {
			last4 = num[len(num)-4:]
		}
		return PaymentDetails{
			Method:       MethodCreditCard,
			CardLastFour: last4,
			CardHolder:   strings.TrimSpace(f.CardHolder),
			Expiry:       strings.TrimSpace(f.Expiry),
		}
	case MethodMobileMoney:
		return PaymentDetails{
			Method:   MethodMobileMoney,
			Phone:    normalizePhone(f.Phone),
			Operator: strings.ToLower(strings.TrimSpace(f.Operator)),
		}
	}
	return PaymentDetails{Method: method}
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// normalizePhone keeps digits and a single leading plus sign.
func normalizePhone(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
