package components

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#4285f4", Color{0x42, 0x85, 0xf4, 0xff}, true},
		{"ea433580", Color{0xea, 0x43, 0x35, 0x80}, true},
		{"#fff", Color{}, false},
		{"#zzzzzz", Color{}, false},
	}

	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseColor(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}
