// Package simdata implements the textual telemetry record format shared with
// the simulator-side producers, and its length-prefixed wire framing.
package simdata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned when a record cannot be decoded.
var ErrMalformedRecord = errors.New("malformed telemetry record")

const recordFields = 7

// Record is one telemetry sample as produced by a simulator plugin.
type Record struct {
	ICAO         string
	Name         string
	Registration string
	Latitude     float64
	Longitude    float64
	EngineOn     bool
	OnGround     bool
}

// Decode parses a record from its canonical comma-separated form:
// icao,name,registration,latitude,longitude,engine_on,on_ground.
func Decode(s string) (Record, error) {
	fields := strings.Split(s, ",")
	if len(fields) < recordFields {
		return Record{}, fmt.Errorf("%w: %d fields, want %d", ErrMalformedRecord, len(fields), recordFields)
	}

	lat, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: latitude: %v", ErrMalformedRecord, err)
	}
	lon, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: longitude: %v", ErrMalformedRecord, err)
	}
	engineOn, err := parseBool(fields[5])
	if err != nil {
		return Record{}, fmt.Errorf("%w: engine_on: %v", ErrMalformedRecord, err)
	}
	onGround, err := parseBool(fields[6])
	if err != nil {
		return Record{}, fmt.Errorf("%w: on_ground: %v", ErrMalformedRecord, err)
	}

	return Record{
		ICAO:         fields[0],
		Name:         fields[1],
		Registration: fields[2],
		Latitude:     lat,
		Longitude:    lon,
		EngineOn:     engineOn,
		OnGround:     onGround,
	}, nil
}

// parseBool accepts only the wire tokens "true" and "false".
func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool token %q", s)
	}
}

// Encode returns the canonical comma-separated form of the record.
// Decode(Encode(r)) == r for any valid record.
func (r Record) Encode() string {
	fields := []string{
		r.ICAO,
		r.Name,
		r.Registration,
		strconv.FormatFloat(r.Latitude, 'g', -1, 64),
		strconv.FormatFloat(r.Longitude, 'g', -1, 64),
		strconv.FormatBool(r.EngineOn),
		strconv.FormatBool(r.OnGround),
	}
	return strings.Join(fields, ",")
}
