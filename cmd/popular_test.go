package cmd

import (
	"reflect"
	"testing"

	"repack-catalog/crawler"
)

func TestExpandPeriods(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
	}{
		{"both", "both", []string{"month", "year"}, false},
		{"all", "all", crawler.AllPeriods, false},
		{"single period", "week", []string{"week"}, false},
		{"award", "award", []string{"award"}, false},
		{"unknown", "fortnight", nil, true},
		{"empty", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPeriods(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandPeriods(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expandPeriods(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
