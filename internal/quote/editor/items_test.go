package editor

import (
	"encoding/json"
	"testing"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"nil", nil, 0},
		{"float", float64(42), 42},
		{"float truncates", float64(9.9), 9},
		{"int", 7, 7},
		{"int64", int64(11), 11},
		{"numeric string", "1500", 1500},
		{"decimal string", "12.5", 12},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"negative clamps", -5, 0},
		{"negative string clamps", "-300", 0},
		{"json number", json.Number("250"), 250},
		{"bad json number", json.Number("x"), 0},
		{"unsupported type", []string{"1"}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Coerce(tc.in); got != tc.want {
				t.Errorf("Coerce(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
