package utils

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

var legacyOrderIDPattern = regexp.MustCompile(`^\d{2}-\d{5}-\d{5}$`)

// ValidOrderID accepts both the legacy marketplace order id format
// (12-12345-12345) and the REST API one (v1|...|0).
func ValidOrderID(orderID string) bool {
	if strings.Contains(orderID, "|") {
		return true
	}
	return legacyOrderIDPattern.MatchString(orderID)
}

// NormalizePhone strips non-digits and the Italian international prefix,
// the format the label provider expects.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "0039"):
		return digits[4:]
	case strings.HasPrefix(digits, "39") && len(digits) > 10:
		return digits[2:]
	}
	return digits
}

var ErrNonPositiveWeight = errors.New("weight must be positive")

// RoundWeightUp rounds a parcel weight up to the next half kilogram, the
// billing granularity of the label provider.
func RoundWeightUp(weight float64) (float64, error) {
	if weight <= 0 {
		return 0, ErrNonPositiveWeight
	}
	return math.Ceil(weight*2) / 2, nil
}

// TrackingLink returns the public carrier page for a tracking code.
func TrackingLink(trackingCode string) string {
	return "https://www.poste.it/cerca/#/risultati-spedizioni/" + trackingCode
}
