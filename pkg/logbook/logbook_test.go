package logbook

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog/pkg/geo"
	"flightlog/pkg/navdata"
	"flightlog/pkg/sim"
	"flightlog/pkg/tracking"
)

func testFlight(t *testing.T) *tracking.Flight {
	t.Helper()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	paphos := &navdata.Airport{Ident: "LCPH", Position: geo.New(34.717778, 32.485556)}
	larnaca := &navdata.Airport{Ident: "LCLK", Position: geo.New(34.875, 33.624722)}

	f := tracking.NewFlight(sim.Aircraft{
		Title:        "Cessna Skyhawk",
		ICAO:         "C172",
		Registration: "N123AB",
	})
	f.TaxiOut = base
	f.Departure = &tracking.Visit{Airport: paphos, Time: base.Add(5 * time.Minute)}
	f.Arrival = &tracking.Visit{Airport: larnaca, Time: base.Add(45 * time.Minute)}
	f.Shutdown = base.Add(50 * time.Minute)
	return f
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestLogWritesHeaderAndRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logbook.csv")

	w, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Log(testFlight(t)))
	require.NoError(t, w.Close())

	rows := readAll(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"Cessna Skyhawk", "C172", "N123AB",
		"2026-08-28 10:00:00",
		"LCPH", "2026-08-28 10:05:00",
		"LCLK", "2026-08-28 10:45:00",
		"2026-08-28 10:50:00",
	}, rows[1])
}

func TestHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logbook.csv")

	w, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Log(testFlight(t)))
	require.NoError(t, w.Close())

	// reopening an existing logbook appends without a second header
	w, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Log(testFlight(t)))
	require.NoError(t, w.Close())

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.NotEqual(t, Header, rows[1])
}

func TestLogUnfinishedMilestonesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logbook.csv")

	f := tracking.NewFlight(sim.Aircraft{Title: "Glider", ICAO: "DISC", Registration: "D-1234"})
	f.TaxiOut = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	w, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Log(f))
	require.NoError(t, w.Close())

	rows := readAll(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Glider", "DISC", "D-1234",
		"2026-08-28 10:00:00",
		"", "", "", "", "",
	}, rows[1])
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "logbook.csv")

	w, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
