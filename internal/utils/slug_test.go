package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Filament", "filament"},
		{"Printer Parts", "printer-parts"},
		{"  Resin & Accessories  ", "resin-accessories"},
		{"PLA / PETG / ABS", "pla-petg-abs"},
		{"3D Printers", "3d-printers"},
		{"--weird--", "weird"},
		{"", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), "slugify %q", tc.in)
	}
}
