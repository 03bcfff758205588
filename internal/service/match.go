package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/volt-ev/fleet-console/internal/models"
)

// Fleet records come in with inconsistent casing and accents (operators type
// "klara s" / "do" for "Klara S" / "Đỏ"), so every model/color comparison
// goes through Fold. The backend's own filter is not trusted for the same
// reason.

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes a model/color/plate string for comparison: NFD accent
// stripping, đ/Đ to d/D (not a combining mark, so NFD leaves it alone),
// lowercase, trimmed.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	folded = strings.Map(func(r rune) rune {
		switch r {
		case 'đ':
			return 'd'
		case 'Đ':
			return 'D'
		}
		return r
	}, folded)
	return strings.ToLower(strings.TrimSpace(folded))
}

// SameAttribute reports accent-insensitive, case-insensitive exact equality.
func SameAttribute(a, b string) bool {
	return Fold(a) == Fold(b)
}

// HasRealPlate reports whether a license plate is a genuine registration
// rather than empty or a placeholder ("N/A", "Chưa gán biển", or anything
// containing "chưa").
func HasRealPlate(plate string) bool {
	p := Fold(plate)
	if p == "" || p == "n/a" {
		return false
	}
	return !strings.Contains(p, "chua")
}

// EligibleForAssignment: draft status, a real plate, and exact (folded)
// model/color match.
func EligibleForAssignment(v models.Vehicle, model, color string) bool {
	return v.Status == models.VehicleStatusDraft &&
		HasRealPlate(v.LicensePlate) &&
		SameAttribute(v.Model, model) &&
		SameAttribute(v.Color, color)
}

// EligibleForWithdrawal: available status at the target station with exact
// (folded) model/color match. Plates are irrelevant here; an available
// vehicle already has one.
func EligibleForWithdrawal(v models.Vehicle, stationID, model, color string) bool {
	return v.Status == models.VehicleStatusAvailable &&
		v.Station() == stationID &&
		SameAttribute(v.Model, model) &&
		SameAttribute(v.Color, color)
}
