package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog/pkg/geo"
	"flightlog/pkg/navdata"
	"flightlog/pkg/sim"
	"flightlog/pkg/sim/mocksim"
)

type lookupFunc func(pos geo.LatLon) (*navdata.Airport, error)

func (f lookupFunc) FindContaining(pos geo.LatLon) (*navdata.Airport, error) { return f(pos) }

// nearestLookup resolves positions within 5km of a known airport.
func nearestLookup(airports ...*navdata.Airport) lookupFunc {
	return func(pos geo.LatLon) (*navdata.Airport, error) {
		for _, a := range airports {
			if geo.Distance(pos, a.Position) < 5000 {
				return a, nil
			}
		}
		return nil, nil
	}
}

type memSink struct {
	flights []*Flight
	err     error
}

func (s *memSink) Log(f *Flight) error {
	if s.err != nil {
		return s.err
	}
	s.flights = append(s.flights, f)
	return nil
}

func telemetry(a sim.Aircraft) sim.Message {
	c := a
	return sim.Message{Kind: sim.KindTelemetry, Aircraft: &c}
}

func TestRunFullFlight(t *testing.T) {
	conn := mocksim.NewFlight(paphos.Position, larnaca.Position)
	sink := &memSink{}
	engine := NewEngine(conn, nearestLookup(paphos, larnaca), sink)
	engine.now = func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }

	require.NoError(t, engine.Run(context.Background()))

	require.Len(t, sink.flights, 1)
	record := sink.flights[0].Record()
	assert.Equal(t, "Cessna Skyhawk", record[0])
	assert.Equal(t, "LCPH", record[4])
	assert.Equal(t, "LCLK", record[6])
	assert.Equal(t, "2026-08-28 10:00:00", record[8])
}

// quitConn reports KindQuit on every call, the way a real connection keeps
// reporting closure after the simulator is gone.
type quitConn struct {
	calls int
}

func (c *quitConn) NextMessage() (sim.Message, error) {
	c.calls++
	return sim.Message{Kind: sim.KindQuit}, nil
}

func (c *quitConn) Close() error { return nil }

func TestRunTerminatesOnQuit(t *testing.T) {
	conn := &quitConn{}
	engine := NewEngine(conn, nearestLookup(), &memSink{})

	require.NoError(t, engine.Run(context.Background()))
	assert.Equal(t, 1, conn.calls)
}

func TestRunQuitDropsFlight(t *testing.T) {
	conn := mocksim.New(
		sim.Message{Kind: sim.KindOpen},
		telemetry(sample(true, true)),
		sim.Message{Kind: sim.KindQuit},
	)
	sink := &memSink{}
	engine := NewEngine(conn, nearestLookup(paphos), sink)

	require.NoError(t, engine.Run(context.Background()))
	assert.Empty(t, sink.flights)
	assert.Nil(t, engine.flight)
}

func TestRunIdentitySnapshot(t *testing.T) {
	swapped := sample(true, false)
	swapped.Title = "Piper Arrow"
	swapped.Registration = "N999ZZ"

	conn := mocksim.New(
		telemetry(sample(true, true)),
		telemetry(swapped),
		telemetry(sample(true, true)),
		telemetry(sample(false, true)),
	)
	sink := &memSink{}
	engine := NewEngine(conn, nearestLookup(paphos), sink)

	require.NoError(t, engine.Run(context.Background()))
	require.Len(t, sink.flights, 1)
	assert.Equal(t, "Cessna Skyhawk", sink.flights[0].Aircraft.Title)
	assert.Equal(t, "N123AB", sink.flights[0].Aircraft.Registration)
}

func TestRunBackToBackFlights(t *testing.T) {
	leg := []sim.Message{
		telemetry(sample(true, true)),
		telemetry(sample(true, false)),
		telemetry(sample(true, true)),
		telemetry(sample(false, true)),
	}
	conn := mocksim.New(append(append([]sim.Message{}, leg...), leg...)...)
	sink := &memSink{}
	engine := NewEngine(conn, nearestLookup(paphos), sink)

	require.NoError(t, engine.Run(context.Background()))
	assert.Len(t, sink.flights, 2)
	assert.NotEqual(t, sink.flights[0].ID, sink.flights[1].ID)
}

func TestRunWaitingIsIgnored(t *testing.T) {
	conn := mocksim.New(
		telemetry(sample(true, true)),
		sim.Message{Kind: sim.KindWaiting},
		telemetry(sample(true, false)),
	)
	sink := &memSink{}
	engine := NewEngine(conn, nearestLookup(paphos), sink)

	require.NoError(t, engine.Run(context.Background()))
	require.NotNil(t, engine.flight)
	assert.Equal(t, StateEnRoute, engine.flight.State)
}

func TestRunLookupError(t *testing.T) {
	failing := lookupFunc(func(pos geo.LatLon) (*navdata.Airport, error) {
		return nil, errors.New("database is locked")
	})
	conn := mocksim.New(telemetry(sample(true, true)))
	engine := NewEngine(conn, failing, &memSink{})

	assert.Error(t, engine.Run(context.Background()))
}

func TestRunSinkError(t *testing.T) {
	conn := mocksim.New(
		telemetry(sample(true, true)),
		telemetry(sample(true, false)),
		telemetry(sample(true, true)),
		telemetry(sample(false, true)),
	)
	engine := NewEngine(conn, nearestLookup(paphos), &memSink{err: errors.New("disk full")})

	assert.Error(t, engine.Run(context.Background()))
}

func TestRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(mocksim.New(), nearestLookup(), &memSink{})
	assert.ErrorIs(t, engine.Run(ctx), context.Canceled)
}
