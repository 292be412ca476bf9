package geo

import (
	"math"
	"testing"
)

func TestFromDegrees(t *testing.T) {
	d := FromDegrees(34.717778)
	if d.Degrees != 34 || d.Minutes != 43 {
		t.Fatalf("FromDegrees(34.717778) = %d°%d', want 34°43'", d.Degrees, d.Minutes)
	}
	if math.Abs(d.Seconds-4.0008) > 0.001 {
		t.Errorf("seconds = %v, want ~4.0008", d.Seconds)
	}
	if d.Cardinal != CardinalNone {
		t.Errorf("cardinal = %v, want none", d.Cardinal)
	}
}

func TestLatitudeLongitudeCardinals(t *testing.T) {
	tests := []struct {
		name string
		dms  DMS
		want Cardinal
	}{
		{"NorthernLat", FromLatitude(34.7), North},
		{"SouthernLat", FromLatitude(-12.5), South},
		{"EasternLon", FromLongitude(33.6), East},
		{"WesternLon", FromLongitude(-0.13), West},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.dms.Cardinal != tt.want {
				t.Errorf("cardinal = %v, want %v", tt.dms.Cardinal, tt.want)
			}
		})
	}
}

func TestToDegrees(t *testing.T) {
	d := DMS{Degrees: 34, Minutes: 43, Seconds: 4.0008, Cardinal: South}
	if got := d.ToDegrees(); math.Abs(got-(-34.717778)) > 1.0/3600 {
		t.Errorf("ToDegrees() = %v, want ~-34.717778", got)
	}
	if d.Degrees != 34 {
		t.Errorf("Degrees field = %d, want 34", d.Degrees)
	}
}

func TestDegreesRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 34.717778, -12.345678, 89.999, -179.999} {
		var d DMS
		if deg >= -90 && deg <= 90 {
			d = FromLatitude(deg)
		} else {
			d = FromLongitude(deg)
		}
		// sub-second tolerance in degrees
		if got := d.ToDegrees(); math.Abs(got-deg) > 1.0/3600 {
			t.Errorf("round-trip(%v) = %v", deg, got)
		}
	}
}

func TestDMSString(t *testing.T) {
	d := FromLatitude(34.717778)
	if got := d.String(); got != "34°43'4.00\"N" {
		t.Errorf("String() = %q, want %q", got, "34°43'4.00\"N")
	}

	plain := FromDegrees(1.5)
	if got := plain.String(); got != "1°30'0.00\"" {
		t.Errorf("String() = %q, want %q", got, "1°30'0.00\"")
	}
}

func TestFromDMS(t *testing.T) {
	p := FromDMS(FromLatitude(34.717778), FromLongitude(32.485556))
	if math.Abs(p.Lat-34.717778) > 1.0/3600 || math.Abs(p.Lon-32.485556) > 1.0/3600 {
		t.Errorf("FromDMS = %v, want ~(34.717778, 32.485556)", p)
	}
}
