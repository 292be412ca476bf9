// Package logbook persists completed flights as rows of a CSV file.
package logbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"flightlog/pkg/tracking"
)

// Header is the column layout of the logbook file.
var Header = []string{
	"Aircraft Name",
	"Aircraft ICAO",
	"Registration",
	"Taxi Time",
	"Departure ICAO",
	"Departure Time",
	"Arrival ICAO",
	"Arrival Time",
	"Shutdown Time",
}

// Writer appends flight records to a CSV logbook. The header row is written
// only when the file does not exist yet, so an existing logbook keeps
// accumulating across runs.
type Writer struct {
	f   *os.File
	csv *csv.Writer
}

// Open opens or creates the logbook at path.
func Open(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logbook dir: %w", err)
	}

	_, statErr := os.Stat(path)
	needHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open logbook: %w", err)
	}

	w := &Writer{f: f, csv: csv.NewWriter(f)}
	if needHeader {
		if err := w.write(Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write logbook header: %w", err)
		}
	}
	return w, nil
}

// Log appends one completed flight, flushed to disk before returning.
func (w *Writer) Log(flight *tracking.Flight) error {
	if err := w.write(flight.Record()); err != nil {
		return fmt.Errorf("failed to write logbook record: %w", err)
	}
	return nil
}

func (w *Writer) write(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}
