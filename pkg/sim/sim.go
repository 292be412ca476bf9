// Package sim defines the simulator connection capability consumed by the
// flight tracking engine, independent of the simulator backing it.
package sim

import (
	"flightlog/pkg/geo"
)

// Kind discriminates connection messages.
type Kind int

const (
	// KindUnknown is a message the connection does not understand. The
	// engine logs and ignores it.
	KindUnknown Kind = iota
	// KindOpen signals the connection is established.
	KindOpen
	// KindQuit signals the simulator closed the connection.
	KindQuit
	// KindTelemetry carries one aircraft telemetry sample.
	KindTelemetry
	// KindWaiting signals no sample arrived within the read-timeout window;
	// the caller should poll again.
	KindWaiting
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindQuit:
		return "quit"
	case KindTelemetry:
		return "telemetry"
	case KindWaiting:
		return "waiting"
	default:
		return "unknown"
	}
}

// Message is one event produced by a Connection. Aircraft is set only for
// KindTelemetry.
type Message struct {
	Kind     Kind
	Aircraft *Aircraft
}

// Connection produces a sequence of lifecycle and telemetry messages from a
// simulator. Implementations must return at most one aircraft sample per
// NextMessage call and must not block indefinitely: when no data arrives
// within the connection's read timeout they return a KindWaiting message.
type Connection interface {
	NextMessage() (Message, error)
	Close() error
}

// Aircraft is one telemetry snapshot of the user aircraft.
type Aircraft struct {
	Title        string
	ICAO         string
	Registration string
	Position     geo.LatLon
	EnginesOn    []bool
	OnGround     bool
}

// EngineOn reports whether any engine is running.
func (a *Aircraft) EngineOn() bool {
	for _, on := range a.EnginesOn {
		if on {
			return true
		}
	}
	return false
}
