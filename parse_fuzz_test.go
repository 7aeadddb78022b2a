package dice_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/dice"
)

func FuzzParse(f *testing.F) {
	f.Add("4d6h3")
	f.Add("(2d6 + 4)d6 + 5")
	f.Add("2d(1d6 + 2) / 2")
	f.Add("dhgdshd")
	f.Add("3d-1")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := dice.Parse(strings.NewReader(s))
		if err != nil {
			if _, ok := err.(dice.InputError); !ok {
				t.Fatalf("%q: error %#v is not an InputError", s, err)
			}
			return
		}
		r := e.String()
		g, err := dice.ParseString(r)
		if err != nil {
			t.Fatalf("%q rendered as %q, which failed to parse: %v", s, r, err)
		}
		if q := g.String(); q != r {
			t.Errorf("%q rendered as %q, which rendered as %q", s, r, q)
		}
	})
}
