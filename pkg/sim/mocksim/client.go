// Package mocksim implements a simulator connection that replays a scripted
// message sequence, for development and tests without a running simulator.
package mocksim

import (
	"io"

	"flightlog/pkg/geo"
	"flightlog/pkg/sim"
)

// Client replays a fixed message sequence. After the last message every
// NextMessage call returns io.EOF.
type Client struct {
	messages []sim.Message
	pos      int
}

// New returns a connection replaying the given messages in order.
func New(messages ...sim.Message) *Client {
	return &Client{messages: messages}
}

// NewFlight returns a connection replaying one complete flight from one
// position to another: parked, engine start, takeoff, cruise, landing,
// shutdown, then simulator quit.
func NewFlight(from, to geo.LatLon) *Client {
	base := sim.Aircraft{
		Title:        "Cessna Skyhawk",
		ICAO:         "C172",
		Registration: "N123AB",
		Position:     from,
		EnginesOn:    []bool{false},
		OnGround:     true,
	}

	sample := func(pos geo.LatLon, engineOn, onGround bool) sim.Message {
		a := base
		a.Position = pos
		a.EnginesOn = []bool{engineOn}
		a.OnGround = onGround
		return sim.Message{Kind: sim.KindTelemetry, Aircraft: &a}
	}

	distance := geo.Distance(from, to)
	bearing := geo.Bearing(from, to)
	midpoint := geo.Destination(from, bearing, distance/2)

	return New(
		sim.Message{Kind: sim.KindOpen},
		sample(from, false, true),
		sample(from, true, true),
		sample(from, true, false),
		sample(midpoint, true, false),
		sample(to, true, true),
		sample(to, false, true),
		sim.Message{Kind: sim.KindQuit},
	)
}

func (c *Client) NextMessage() (sim.Message, error) {
	if c.pos >= len(c.messages) {
		return sim.Message{}, io.EOF
	}
	msg := c.messages[c.pos]
	c.pos++
	return msg, nil
}

func (c *Client) Close() error { return nil }
