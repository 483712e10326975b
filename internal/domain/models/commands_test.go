package models

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in       string
		wantType CommandType
		wantArgs []string
	}{
		{in: "low", wantType: CommandLowStock},
		{in: "/LOW", wantType: CommandLowStock},
		{in: "item P-001", wantType: CommandItem, wantArgs: []string{"P-001"}},
		{in: "  Vehicle   V-01 ", wantType: CommandVehicle, wantArgs: []string{"V-01"}},
		{in: "help", wantType: CommandHelp},
		{in: "", wantType: CommandUnknown},
		{in: "eggs 12", wantType: CommandUnknown, wantArgs: []string{"12"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseCommand(tt.in)
			if got.Type != tt.wantType {
				t.Errorf("type = %s, want %s", got.Type, tt.wantType)
			}
			if !reflect.DeepEqual(got.Args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", got.Args, tt.wantArgs)
			}
		})
	}
}
