package service

import (
	"testing"

	"github.com/volt-ev/fleet-console/internal/models"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Klara S", "klara s"},
		{"  KLARA S ", "klara s"},
		{"Đỏ", "do"},
		{"đen", "den"},
		{"Xanh Dương", "xanh duong"},
		{"Chưa gán biển", "chua gan bien"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Fold(c.in); got != c.want {
			t.Fatalf("Fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSameAttribute(t *testing.T) {
	if !SameAttribute("Klara S", "klara s") {
		t.Fatalf("expected case-insensitive match")
	}
	if !SameAttribute("Đỏ", "do") {
		t.Fatalf("expected accent-insensitive match")
	}
	if SameAttribute("Klara S", "Klara") {
		t.Fatalf("expected exact match, not prefix match")
	}
}

func TestHasRealPlate(t *testing.T) {
	cases := []struct {
		plate string
		want  bool
	}{
		{"51A-123.45", true},
		{"", false},
		{"N/A", false},
		{"n/a", false},
		{"Chưa gán biển", false},
		{"chưa có biển số", false},
	}
	for _, c := range cases {
		if got := HasRealPlate(c.plate); got != c.want {
			t.Fatalf("HasRealPlate(%q) = %v, want %v", c.plate, got, c.want)
		}
	}
}

func TestEligibleForAssignment(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: "v-1", Model: "Klara S", Color: "Đỏ", LicensePlate: "51A-123.45", Status: models.VehicleStatusDraft},
		{ID: "v-2", Model: "klara s", Color: "do", LicensePlate: "N/A", Status: models.VehicleStatusDraft},
		{ID: "v-3", Model: "Klara S", Color: "Đỏ", LicensePlate: "51A-678.90", Status: models.VehicleStatusAvailable},
	}

	count := 0
	for _, v := range vehicles {
		if EligibleForAssignment(v, "Klara S", "Đỏ") {
			count++
		}
	}
	// v-2 carries a placeholder plate, v-3 is not draft.
	if count != 1 {
		t.Fatalf("expected 1 eligible vehicle, got %d", count)
	}
}

func TestEligibleForWithdrawal(t *testing.T) {
	atStation := models.Vehicle{ID: "v-1", Model: "Feliz", Color: "Đen", Status: models.VehicleStatusAvailable, StationID: "st-1"}
	altSpelling := models.Vehicle{ID: "v-2", Model: "Feliz", Color: "Đen", Status: models.VehicleStatusAvailable, StationIDAlt: "st-1"}
	elsewhere := models.Vehicle{ID: "v-3", Model: "Feliz", Color: "Đen", Status: models.VehicleStatusAvailable, StationID: "st-2"}
	wrongStatus := models.Vehicle{ID: "v-4", Model: "Feliz", Color: "Đen", Status: models.VehicleStatusRented, StationID: "st-1"}

	if !EligibleForWithdrawal(atStation, "st-1", "feliz", "den") {
		t.Fatalf("expected vehicle at station to be withdrawable")
	}
	if !EligibleForWithdrawal(altSpelling, "st-1", "Feliz", "Đen") {
		t.Fatalf("expected alternate station field spelling to match")
	}
	if EligibleForWithdrawal(elsewhere, "st-1", "Feliz", "Đen") {
		t.Fatalf("expected vehicle at another station to be excluded")
	}
	if EligibleForWithdrawal(wrongStatus, "st-1", "Feliz", "Đen") {
		t.Fatalf("expected rented vehicle to be excluded")
	}
}
