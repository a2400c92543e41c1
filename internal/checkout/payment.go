package checkout

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Details are the payment-form fields collected before an order is placed.
// They are validated, never stored.
type Details struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

var (
	nonDigits = regexp.MustCompile(`[^0-9]`)
	cardRe    = regexp.MustCompile(`^[0-9]{13,19}$`)
	expiryRe  = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvvRe     = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// ValidateAt checks every field against now and returns a message per invalid
// field. An empty map means the details are acceptable.
func (d Details) ValidateAt(now time.Time) map[string]string {
	errs := map[string]string{}

	if !cardRe.MatchString(nonDigits.ReplaceAllString(d.CardNumber, "")) {
		errs["cardNumber"] = "Invalid card number"
	}

	if m := expiryRe.FindStringSubmatch(strings.TrimSpace(d.Expiry)); m == nil {
		errs["expiry"] = "Invalid expiry date"
	} else {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		// The card is good through the last day of the expiry month.
		expiresAfter := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
		if !now.Before(expiresAfter) {
			errs["expiry"] = "Card has expired"
		}
	}

	if !cvvRe.MatchString(d.CVV) {
		errs["cvv"] = "Invalid CVV"
	}

	return errs
}

// Valid reports whether every field validates at now.
func (d Details) Valid(now time.Time) bool {
	return len(d.ValidateAt(now)) == 0
}

// PaymentResult is what a collector resolves to: confirmed details, or a
// cancellation with Confirmed false.
type PaymentResult struct {
	Confirmed bool
	Details   Details
}

// PaymentCollector is the boundary to whatever surface gathers payment
// details. Implementations block until the shopper confirms or cancels.
type PaymentCollector interface {
	Collect(ctx context.Context) (PaymentResult, error)
}

type confirmedCollector struct {
	details Details
}

// ConfirmedPayment returns a collector that resolves immediately with the
// given, already validated details. The HTTP surface uses it after gating
// the request body itself.
func ConfirmedPayment(d Details) PaymentCollector {
	return confirmedCollector{details: d}
}

func (c confirmedCollector) Collect(ctx context.Context) (PaymentResult, error) {
	return PaymentResult{Confirmed: true, Details: c.details}, nil
}
