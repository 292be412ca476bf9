//go:build !windows

package msfs

import (
	"errors"
	"time"

	"flightlog/pkg/sim"
)

// DefaultPollInterval is how often a fresh telemetry block is requested.
const DefaultPollInterval = time.Second

// Client is a sim.Connection over the SimConnect SDK; it is only available
// on Windows.
type Client struct{}

// Dial always fails: SimConnect requires the native Windows SDK.
func Dial(pollInterval time.Duration) (*Client, error) {
	return nil, errors.New("msfs: simconnect is only available on windows")
}

func (c *Client) NextMessage() (sim.Message, error) {
	return sim.Message{}, errors.New("msfs: not supported on this platform")
}

func (c *Client) Close() error { return nil }
