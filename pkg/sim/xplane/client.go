// Package xplane implements the streaming simulator connection: telemetry
// records framed over TCP by the X-Plane logbook plugin.
package xplane

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"syscall"
	"time"

	"flightlog/pkg/geo"
	"flightlog/pkg/sim"
	"flightlog/pkg/simdata"
)

// DefaultAddr is the address the X-Plane plugin listens on.
const DefaultAddr = "127.0.0.1:52000"

// DefaultReadTimeout bounds a single NextMessage call.
const DefaultReadTimeout = time.Second

// Client is a sim.Connection over the plugin's TCP stream.
type Client struct {
	conn        net.Conn
	frames      *simdata.FrameReader
	readTimeout time.Duration
	opened      bool
	logger      *slog.Logger
}

// Dial connects to the X-Plane plugin at addr. An empty addr uses
// DefaultAddr; a zero timeout uses DefaultReadTimeout.
func Dial(addr string, readTimeout time.Duration) (*Client, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("xplane: dial %s: %w", addr, err)
	}

	return &Client{
		conn:        conn,
		frames:      simdata.NewFrameReader(conn),
		readTimeout: readTimeout,
		logger:      slog.Default().With("component", "xplane"),
	}, nil
}

// NextMessage returns the next telemetry sample from the stream, at most one
// per call; frames already buffered are drained before the socket is read
// again. A read deadline bounds the call; its expiry maps to KindWaiting, a
// closed connection to KindQuit. Malformed records are logged and skipped.
func (c *Client) NextMessage() (sim.Message, error) {
	if !c.opened {
		c.opened = true
		return sim.Message{Kind: sim.KindOpen}, nil
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return sim.Message{}, fmt.Errorf("xplane: set deadline: %w", err)
	}

	for {
		payload, err := c.frames.Next()
		switch {
		case err == nil:
		case isTimeout(err):
			return sim.Message{Kind: sim.KindWaiting}, nil
		case isClosed(err):
			return sim.Message{Kind: sim.KindQuit}, nil
		default:
			return sim.Message{}, fmt.Errorf("xplane: read: %w", err)
		}

		record, err := simdata.Decode(string(payload))
		if err != nil {
			c.logger.Debug("dropping malformed record", "error", err)
			continue
		}
		aircraft := toAircraft(record)
		return sim.Message{Kind: sim.KindTelemetry, Aircraft: &aircraft}, nil
	}
}

// Close tears down the TCP connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func toAircraft(r simdata.Record) sim.Aircraft {
	return sim.Aircraft{
		Title:        r.Name,
		ICAO:         r.ICAO,
		Registration: r.Registration,
		Position:     geo.New(r.Latitude, r.Longitude),
		EnginesOn:    []bool{r.EngineOn},
		OnGround:     r.OnGround,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.ECONNRESET)
}
