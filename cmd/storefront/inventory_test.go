package main

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1250", want: 1250},
		{in: "12.99", want: 12.99},
		{in: " 500.5 ", want: 500.5},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "1.999", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePrice(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePrice(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePrice(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parsePrice(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStockLabel(t *testing.T) {
	for level, want := range map[int]string{1: "Low", 2: "Medium", 3: "High"} {
		if got := stockLabel(level); got != want {
			t.Errorf("stockLabel(%d) = %q, want %q", level, got, want)
		}
	}
}
