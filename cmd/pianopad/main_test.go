package main

import "testing"

func TestParseNote(t *testing.T) {
	tests := []struct {
		arg      string
		expected int
		wantErr  bool
	}{
		{"Do", 0, false},
		{"sol", 4, false},
		{"6", 6, false},
		{"0", 0, false},
		{"7", 0, true},
		{"-1", 0, true},
		{"Ut", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseNote(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseNote(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("parseNote(%q) = %d, want %d", tt.arg, got, tt.expected)
			}
		})
	}
}
