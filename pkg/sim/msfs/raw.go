// Package msfs implements the native-SDK simulator connection, polling
// telemetry from Microsoft Flight Simulator over SimConnect.
package msfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"flightlog/pkg/geo"
	"flightlog/pkg/sim"
)

// Fixed layout of one telemetry block as registered with SimConnect:
// title, four engine-combustion flags, position in radians, on-ground flag,
// ATC id. SimConnect reports numeric values as float64 regardless of the
// simulation variable's own type.
const (
	titleSize = 128
	atcIDSize = 32

	offEngines   = titleSize
	offLatitude  = offEngines + 4*8
	offLongitude = offLatitude + 8
	offOnGround  = offLongitude + 8
	offATCID     = offOnGround + 8

	rawSize = offATCID + atcIDSize
)

// decodeRaw interprets one fixed-layout telemetry block. The block must be
// at least rawSize bytes; shorter input is rejected before any field is read.
func decodeRaw(data []byte) (sim.Aircraft, error) {
	if len(data) < rawSize {
		return sim.Aircraft{}, fmt.Errorf("msfs: telemetry block too short: %d bytes, want %d", len(data), rawSize)
	}

	engines := make([]bool, 4)
	for i := range engines {
		engines[i] = readFloat(data, offEngines+i*8) != 0
	}

	lat := readFloat(data, offLatitude)
	lon := readFloat(data, offLongitude)

	return sim.Aircraft{
		Title: cString(data[:titleSize]),
		// the sim does not expose the ICAO type designator
		ICAO:         "N/A",
		Registration: cString(data[offATCID : offATCID+atcIDSize]),
		Position:     geo.FromRadians(lat, lon),
		EnginesOn:    engines,
		OnGround:     readFloat(data, offOnGround) != 0,
	}, nil
}

func readFloat(data []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(data[off : off+8]))
}

// cString converts a null-padded byte field to a Go string.
func cString(b []byte) string {
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		return string(b[:idx])
	}
	return string(b)
}
