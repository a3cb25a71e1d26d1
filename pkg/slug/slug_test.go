package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/storefront/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct{ in, want string }{
		{in: "Cámaras & Lentes", want: "camaras-lentes"},
		{in: "  Electrónica  ", want: "electronica"},
		{in: "Book", want: "book"},
		{in: "Niño--Juguetes 2024", want: "nino-juguetes-2024"},
		{in: "", want: ""},
		{in: "!!!", want: ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Make(tc.in), "entrada %q", tc.in)
	}
}
