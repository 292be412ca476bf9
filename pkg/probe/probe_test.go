package probe

import (
	"context"
	"errors"
	"testing"
)

func TestRun(t *testing.T) {
	probes := []Probe{
		{
			Name: "Navdata",
			Check: func(ctx context.Context) error {
				return nil
			},
			Critical: true,
		},
		{
			Name: "Simulator",
			Check: func(ctx context.Context) error {
				return errors.New("not running")
			},
			Critical: false,
		},
	}

	results := Run(context.Background(), probes)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Error != nil {
		t.Errorf("Expected navdata probe to pass, got error: %v", results[0].Error)
	}
	if results[1].Error == nil {
		t.Error("Expected simulator probe to fail, got nil")
	}
}

func TestRunHonorsCheckContext(t *testing.T) {
	probes := []Probe{
		{
			Name: "Blocking",
			Check: func(ctx context.Context) error {
				if ctx.Done() == nil {
					return errors.New("check context has no deadline")
				}
				return nil
			},
		},
	}

	results := Run(context.Background(), probes)
	if results[0].Error != nil {
		t.Errorf("expected deadline-carrying context, got: %v", results[0].Error)
	}
}

func TestAnalyzeResults(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		wantErr bool
	}{
		{
			name: "All Pass",
			results: []Result{
				{Probe: Probe{Name: "Navdata", Critical: true}, Error: nil},
			},
			wantErr: false,
		},
		{
			name: "Critical Failure",
			results: []Result{
				{Probe: Probe{Name: "Navdata", Critical: true}, Error: errors.New("no airport table")},
			},
			wantErr: true,
		},
		{
			name: "Non-Critical Failure",
			results: []Result{
				{Probe: Probe{Name: "Simulator", Critical: false}, Error: errors.New("not running")},
			},
			wantErr: false,
		},
		{
			name: "Mixed Failure",
			results: []Result{
				{Probe: Probe{Name: "Simulator", Critical: false}, Error: errors.New("not running")},
				{Probe: Probe{Name: "Logbook", Critical: true}, Error: errors.New("read-only")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AnalyzeResults(tt.results)
			if (err != nil) != tt.wantErr {
				t.Errorf("AnalyzeResults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
