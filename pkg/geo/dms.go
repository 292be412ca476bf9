package geo

import (
	"fmt"
	"math"
)

// Cardinal is a compass direction attached to a DMS coordinate.
type Cardinal int

const (
	CardinalNone Cardinal = iota
	North
	South
	East
	West
)

func (c Cardinal) String() string {
	switch c {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	default:
		return ""
	}
}

// DMS represents a coordinate component in degrees, minutes and seconds.
// Degrees and minutes hold the whole part, seconds the fractional remainder.
type DMS struct {
	Degrees  int
	Minutes  int
	Seconds  float64
	Cardinal Cardinal
}

// FromDegrees splits decimal degrees into DMS components. Whole degrees and
// minutes are truncated with floor, the remainder carries into seconds. No
// cardinal is attached; the sign of deg is discarded.
func FromDegrees(deg float64) DMS {
	abs := math.Abs(deg)
	d := math.Floor(abs)
	m := math.Floor((abs - d) * 60)
	s := (abs - d - m/60) * 3600

	return DMS{
		Degrees: int(d),
		Minutes: int(m),
		Seconds: s,
	}
}

// FromLatitude converts decimal latitude degrees to DMS with an N/S cardinal.
func FromLatitude(lat float64) DMS {
	d := FromDegrees(lat)
	if lat < 0 {
		d.Cardinal = South
	} else {
		d.Cardinal = North
	}
	return d
}

// FromLongitude converts decimal longitude degrees to DMS with an E/W cardinal.
func FromLongitude(lon float64) DMS {
	d := FromDegrees(lon)
	if lon < 0 {
		d.Cardinal = West
	} else {
		d.Cardinal = East
	}
	return d
}

// ToDegrees converts back to decimal degrees, negative for S/W cardinals.
func (d DMS) ToDegrees() float64 {
	deg := float64(d.Degrees) + float64(d.Minutes)/60 + d.Seconds/3600
	if d.Cardinal == South || d.Cardinal == West {
		return -deg
	}
	return deg
}

func (d DMS) String() string {
	if d.Cardinal == CardinalNone {
		return fmt.Sprintf("%d°%d'%.2f\"", d.Degrees, d.Minutes, d.Seconds)
	}
	return fmt.Sprintf("%d°%d'%.2f\"%s", d.Degrees, d.Minutes, d.Seconds, d.Cardinal)
}
