package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/stock"
)

type fakeReporting struct{}

func (fakeReporting) LowStockSummary(ctx context.Context) (string, error) { return "low summary", nil }

func (fakeReporting) ItemSummary(ctx context.Context, id string) (string, error) {
	if id != "P-001" {
		return "", stock.ErrNotFound
	}
	return "item summary", nil
}

func (fakeReporting) VehicleSummary(ctx context.Context, id string) (string, error) {
	if id != "V-01" {
		return "", stock.ErrNotFound
	}
	return "vehicle summary", nil
}

func TestHandleCommand(t *testing.T) {
	svc := NewService(fakeReporting{}, nil)

	tests := []struct {
		text    string
		want    string
		wantErr error
	}{
		{text: "low", want: "low summary"},
		{text: "item p-001", want: "item summary"},
		{text: "item P-404", want: "Unknown item P-404."},
		{text: "vehicle v-01", want: "vehicle summary"},
		{text: "vehicle", wantErr: ErrInvalidArguments},
		{text: "item a b", wantErr: ErrInvalidArguments},
		{text: "help", want: HelpText},
		{text: "dance", wantErr: ErrUnsupportedCommand},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := svc.HandleCommand(context.Background(), models.ParseCommand(tt.text), "66800000000")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("HandleCommand: %v", err)
			}
			if got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}
