// Package tracking derives flight lifecycle records from a stream of
// telemetry samples: engine start, takeoff, landing and shutdown, with the
// airports they happened at.
package tracking

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flightlog/pkg/navdata"
	"flightlog/pkg/sim"
)

// State is the lifecycle phase of a flight.
type State int

const (
	StatePreflight State = iota
	StateTaxi
	StateEnRoute
	StateLanded
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePreflight:
		return "preflight"
	case StateTaxi:
		return "taxi"
	case StateEnRoute:
		return "enroute"
	case StateLanded:
		return "landed"
	case StateComplete:
		return "complete"
	}
	return "invalid"
}

// timeFormat matches SQLite's CURRENT_TIMESTAMP (YYYY-MM-DD HH:MM:SS).
const timeFormat = "2006-01-02 15:04:05"

// Visit is an airport at a point in time. Airport is nil when the event
// happened outside any known airport boundary.
type Visit struct {
	Airport *navdata.Airport
	Time    time.Time
}

// Flight accumulates the milestones of one flight. The aircraft identity is
// snapshotted at creation and never updated, so a livery or aircraft swap
// mid-flight does not rewrite history.
type Flight struct {
	ID       uuid.UUID
	Aircraft sim.Aircraft
	State    State

	TaxiOut   time.Time
	Departure *Visit
	Arrival   *Visit
	Shutdown  time.Time
}

// NewFlight starts a fresh flight in preflight, snapshotting the aircraft.
func NewFlight(aircraft sim.Aircraft) *Flight {
	return &Flight{
		ID:       uuid.New(),
		Aircraft: aircraft,
		State:    StatePreflight,
	}
}

// Advance applies one telemetry sample, moving the flight through at most
// one state transition. airport is the airport containing the aircraft
// position, nil when there is none; a takeoff or landing outside any airport
// boundary still transitions, with the airport left unset.
func (f *Flight) Advance(aircraft sim.Aircraft, airport *navdata.Airport, now time.Time) {
	switch f.State {
	case StatePreflight:
		if aircraft.EngineOn() {
			f.TaxiOut = now
			f.State = StateTaxi
		}
	case StateTaxi:
		if !aircraft.OnGround {
			if airport == nil {
				slog.Warn("takeoff outside any airport boundary", "flight", f.ID, "position", aircraft.Position)
			}
			f.Departure = &Visit{Airport: airport, Time: now}
			f.State = StateEnRoute
		}
	case StateEnRoute:
		if aircraft.OnGround {
			if airport == nil {
				slog.Warn("landing outside any airport boundary", "flight", f.ID, "position", aircraft.Position)
			}
			f.Arrival = &Visit{Airport: airport, Time: now}
			f.State = StateLanded
		}
	case StateLanded:
		if !aircraft.OnGround {
			// touch and go or go around; the recorded arrival stands until
			// the next landing overwrites it
			f.State = StateEnRoute
		} else if !aircraft.EngineOn() {
			f.Shutdown = now
			f.State = StateComplete
		}
	case StateComplete:
	}
}

// Record renders the flight as one logbook row. Milestones that never
// happened render as empty fields.
func (f *Flight) Record() []string {
	return []string{
		f.Aircraft.Title,
		f.Aircraft.ICAO,
		f.Aircraft.Registration,
		formatTime(f.TaxiOut),
		visitIdent(f.Departure),
		visitTime(f.Departure),
		visitIdent(f.Arrival),
		visitTime(f.Arrival),
		formatTime(f.Shutdown),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeFormat)
}

func visitIdent(v *Visit) string {
	if v == nil || v.Airport == nil {
		return ""
	}
	return v.Airport.Ident
}

func visitTime(v *Visit) string {
	if v == nil {
		return ""
	}
	return formatTime(v.Time)
}
