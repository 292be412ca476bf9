//go:build windows

package msfs

import (
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	simconnect "github.com/lian/msfs2020-go/simconnect"
	"golang.org/x/time/rate"

	"flightlog/pkg/sim"
)

// DefaultPollInterval is how often a fresh telemetry block is requested.
const DefaultPollInterval = time.Second

const appName = "Flightlog"

// report mirrors the fixed layout decoded by decodeRaw; the tags register
// the matching simulation variables with SimConnect.
type report struct {
	simconnect.RecvSimobjectDataByType

	Title     [titleSize]byte `name:"TITLE"`
	Eng1      float64         `name:"GENERAL ENG COMBUSTION:1" unit:"Bool"`
	Eng2      float64         `name:"GENERAL ENG COMBUSTION:2" unit:"Bool"`
	Eng3      float64         `name:"GENERAL ENG COMBUSTION:3" unit:"Bool"`
	Eng4      float64         `name:"GENERAL ENG COMBUSTION:4" unit:"Bool"`
	Latitude  float64         `name:"PLANE LATITUDE" unit:"Radians"`
	Longitude float64         `name:"PLANE LONGITUDE" unit:"Radians"`
	OnGround  float64         `name:"SIM ON GROUND" unit:"Bool"`
	ATCID     [atcIDSize]byte `name:"ATC ID"`
}

// Client is a sim.Connection over the SimConnect SDK.
type Client struct {
	sc           *simconnect.SimConnect
	defineID     simconnect.DWORD
	pollInterval time.Duration
	limiter      *rate.Limiter
	logger       *slog.Logger
}

// Dial opens a SimConnect session and registers the telemetry definition.
// A zero pollInterval uses DefaultPollInterval.
func Dial(pollInterval time.Duration) (*Client, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	sc, err := simconnect.New(appName)
	if err != nil {
		return nil, fmt.Errorf("msfs: open simconnect: %w", err)
	}

	rep := &report{}
	if err := sc.RegisterDataDefinition(rep); err != nil {
		sc.Close()
		return nil, fmt.Errorf("msfs: register data definition: %w", err)
	}

	return &Client{
		sc:           sc,
		defineID:     sc.GetDefineID(rep),
		pollInterval: pollInterval,
		limiter:      rate.NewLimiter(rate.Every(pollInterval), 1),
		logger:       slog.Default().With("component", "msfs"),
	}, nil
}

// NextMessage polls the SDK dispatch queue, requesting a fresh telemetry
// block at most once per poll interval. When nothing arrives within one
// interval the call returns KindWaiting so the engine loop stays responsive.
func (c *Client) NextMessage() (sim.Message, error) {
	if c.limiter.Allow() {
		c.sc.RequestDataOnSimObjectType(0, c.defineID, 0, simconnect.SIMOBJECT_TYPE_USER)
	}

	deadline := time.Now().Add(c.pollInterval)
	for {
		ppData, r1, err := c.sc.GetNextDispatch()
		if r1 < 0 || err != nil {
			if time.Now().After(deadline) {
				return sim.Message{Kind: sim.KindWaiting}, nil
			}
			time.Sleep(5 * time.Millisecond)
			continue
		}

		recv := *(*simconnect.Recv)(ppData)
		switch recv.ID {
		case simconnect.RECV_ID_OPEN:
			return sim.Message{Kind: sim.KindOpen}, nil
		case simconnect.RECV_ID_QUIT:
			return sim.Message{Kind: sim.KindQuit}, nil
		case simconnect.RECV_ID_SIMOBJECT_DATA_BYTYPE:
			aircraft, err := decodeRaw(rawBytes(ppData, recv.Size))
			if err != nil {
				c.logger.Warn("dropping undecodable telemetry block", "error", err)
				return sim.Message{Kind: sim.KindUnknown}, nil
			}
			return sim.Message{Kind: sim.KindTelemetry, Aircraft: &aircraft}, nil
		case simconnect.RECV_ID_EXCEPTION:
			c.logger.Warn("simconnect exception received")
			return sim.Message{Kind: sim.KindUnknown}, nil
		default:
			return sim.Message{Kind: sim.KindUnknown}, nil
		}
	}
}

// Close tears down the SimConnect session.
func (c *Client) Close() error {
	return c.sc.Close()
}

// rawBytes exposes the telemetry block inside a dispatched message, bounded
// by the size SimConnect reported.
func rawBytes(ppData unsafe.Pointer, recvSize simconnect.DWORD) []byte {
	offset := unsafe.Offsetof(report{}.Title)
	if uintptr(recvSize) < offset {
		return nil
	}
	n := uintptr(recvSize) - offset
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ppData)+offset)), n)
}
