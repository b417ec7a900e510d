package dialcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		country string
		code    string
		ok      bool
	}{
		{"united kingdom", "44", true},
		{"United Kingdom", "44", true},
		{"  GERMANY  ", "49", true},
		{"usa", "1", true},
		{"united states", "1", true},
		{"india", "91", true},
		{"atlantis", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		code, ok := Lookup(tc.country)
		assert.Equal(t, tc.ok, ok, "country %q", tc.country)
		assert.Equal(t, tc.code, code, "country %q", tc.country)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		dialCode string
		want     string
	}{
		{"strips formatting", "(020) 7946-0958", "", "02079460958"},
		{"strips plus prefix with enough digits", "+44 20 7946 0958", "44", "2079460958"},
		{"strips bare prefix with enough digits", "442079460958", "44", "2079460958"},
		{"exactly six remaining digits still strips", "+44123456", "44", "123456"},
		{"five remaining digits keeps prefix", "+4412345", "44", "4412345"},
		{"no dial code leaves number intact", "+44 20 7946 0958", "", "442079460958"},
		{"different prefix untouched", "+49 30 901820", "44", "4930901820"},
		{"empty input", "", "44", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.raw, tc.dialCode))
		})
	}
}

func TestTableIsResolved(t *testing.T) {
	// Every configured country must have resolved to a non-empty code.
	for name := range regionByCountry {
		code, ok := Lookup(name)
		assert.True(t, ok, "country %q missing from resolved table", name)
		assert.NotEmpty(t, code, "country %q resolved to empty code", name)
	}
}
