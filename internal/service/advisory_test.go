package service

import (
	"testing"
	"time"

	"github.com/volt-ev/fleet-console/internal/models"
)

func TestCheckCapacity(t *testing.T) {
	station := &models.Station{ID: "st-1", CurrentVehicles: 48, MaxCapacity: 50}

	warning := CheckCapacity(station, 5)
	if warning == nil {
		t.Fatalf("expected capacity warning at 48+5 > 50")
	}
	if warning.Projected != 53 {
		t.Fatalf("expected projected 53, got %d", warning.Projected)
	}

	if CheckCapacity(station, 2) != nil {
		t.Fatalf("expected no warning at exactly full capacity")
	}
	if CheckCapacity(nil, 100) != nil {
		t.Fatalf("expected no warning without station data")
	}
}

func TestBadge(t *testing.T) {
	unknown := Badge(models.UnknownEstimate())
	if unknown.Tone != models.BadgeToneUnknown {
		t.Fatalf("expected unknown tone, got %s", unknown.Tone)
	}

	zero := Badge(models.KnownEstimate(0, time.Now()))
	if zero.Tone != models.BadgeToneError {
		t.Fatalf("expected error tone at zero, got %s", zero.Tone)
	}
	if len(zero.Hints) == 0 {
		t.Fatalf("expected troubleshooting hints at known zero")
	}

	ok := Badge(models.KnownEstimate(4, time.Now()))
	if ok.Tone != models.BadgeToneOK {
		t.Fatalf("expected ok tone, got %s", ok.Tone)
	}
	if len(ok.Hints) != 0 {
		t.Fatalf("expected no hints on positive count")
	}
}
