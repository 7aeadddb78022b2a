package dice

import (
	"slices"
	"testing"
)

func TestKeep(t *testing.T) {
	results := []int{3, 1, 4, 1, 5}
	cases := []struct {
		name string
		k    Keep
		want []int
	}{
		{"none", Keep{}, []int{3, 1, 4, 1, 5}},
		{"highest", Keep{KeepHighest, 3}, []int{5, 4, 3}},
		{"lowest", Keep{KeepLowest, 2}, []int{1, 1}},
		{"excess", Keep{KeepHighest, 9}, []int{5, 4, 3, 1, 1}},
		{"zero", Keep{KeepLowest, 0}, []int{}},
		{"negative", Keep{KeepHighest, -1}, []int{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := keep(results, c.k)
			if !slices.Equal(got, c.want) {
				t.Errorf("want %v, got %v", c.want, got)
			}
			if !slices.Equal(results, []int{3, 1, 4, 1, 5}) {
				t.Fatalf("keep modified its input: %v", results)
			}
		})
	}
}

func TestKeepString(t *testing.T) {
	cases := []struct {
		k    Keep
		want string
	}{
		{Keep{}, ""},
		{Keep{KeepHighest, 3}, "h3"},
		{Keep{KeepLowest, 1}, "l1"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("%#v: want %q, got %q", c.k, c.want, got)
		}
	}
}
