package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"flightlog/pkg/logging"
	"flightlog/pkg/navdata"
	"flightlog/pkg/sim"
)

// Sink receives completed flights.
type Sink interface {
	Log(f *Flight) error
}

// Engine drives the flight state machine from a simulator connection,
// handing completed flights to the sink.
type Engine struct {
	conn   sim.Connection
	lookup navdata.Lookup
	sink   Sink
	logger *slog.Logger
	now    func() time.Time

	flight *Flight
}

// NewEngine wires a simulator connection, an airport lookup and a sink.
func NewEngine(conn sim.Connection, lookup navdata.Lookup, sink Sink) *Engine {
	return &Engine{
		conn:   conn,
		lookup: lookup,
		sink:   sink,
		logger: slog.Default().With("component", "tracking"),
		now:    time.Now,
	}
}

// Run consumes simulator messages until the context is cancelled, the
// simulator quits, or the message stream ends. A simulator quit drops any
// in-progress flight and ends the run; partial flights are never written to
// the logbook.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := e.conn.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("simulator: %w", err)
		}

		switch msg.Kind {
		case sim.KindOpen:
			e.logger.Info("simulator connection established")
		case sim.KindQuit:
			if e.flight != nil {
				e.logger.Warn("simulator quit mid-flight, dropping flight", "flight", e.flight.ID, "state", e.flight.State)
				e.flight = nil
			} else {
				e.logger.Info("simulator connection closed")
			}
			return nil
		case sim.KindWaiting:
		case sim.KindTelemetry:
			if err := e.handleTelemetry(*msg.Aircraft); err != nil {
				return err
			}
		default:
			e.logger.Debug("unhandled simulator message", "kind", msg.Kind)
		}
	}
}

func (e *Engine) handleTelemetry(aircraft sim.Aircraft) error {
	if e.flight == nil {
		e.flight = NewFlight(aircraft)
		e.logger.Info("flight started",
			"flight", e.flight.ID,
			"aircraft", aircraft.Title,
			"registration", aircraft.Registration)
	} else if changed := e.flight.Aircraft; changed.Title != aircraft.Title ||
		changed.ICAO != aircraft.ICAO || changed.Registration != aircraft.Registration {
		e.logger.Warn("aircraft identity changed mid-flight, keeping original",
			"flight", e.flight.ID,
			"was", changed.Title,
			"now", aircraft.Title)
	}

	airport, err := e.lookup.FindContaining(aircraft.Position)
	if err != nil {
		return fmt.Errorf("airport lookup: %w", err)
	}

	before := e.flight.State
	e.flight.Advance(aircraft, airport, e.now())
	if e.flight.State != before {
		e.logger.Info("flight state changed",
			"flight", e.flight.ID,
			"from", before,
			"to", e.flight.State)

		summary := e.flight.Aircraft.Title
		if airport != nil {
			summary += " at " + airport.Ident
		}
		logging.LogEvent(e.flight.State.String(), summary)
	}

	if e.flight.State == StateComplete {
		if err := e.sink.Log(e.flight); err != nil {
			return fmt.Errorf("log flight: %w", err)
		}
		e.logger.Info("flight completed", "flight", e.flight.ID)
		e.flight = nil
	}
	return nil
}
