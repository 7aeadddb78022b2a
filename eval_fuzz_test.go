package dice_test

import (
	"math/rand"
	"testing"

	"github.com/zephyrtronium/dice"
)

func FuzzTree(f *testing.F) {
	f.Add("4d6h3", int64(1))
	f.Add("(2d6 + 4)d6 + 5", int64(2))
	f.Add("1/(d2-1)", int64(3))
	f.Add("dhgdshd", int64(4))
	f.Add("", int64(5))
	f.Fuzz(func(t *testing.T, s string, seed int64) {
		tree := dice.NewTree(dice.WithRand(rand.New(rand.NewSource(seed))), dice.MaxDice(100))
		tree.SetExpression(s)
		r, err := tree.Eval()
		_ = tree.String()
		switch tree.State() {
		case dice.StateUnset:
			if err != dice.ErrNotSet {
				t.Errorf("%q: unset tree gave %v", s, err)
			}
		case dice.StateInvalid:
			if err == nil || err != tree.Err() {
				t.Errorf("%q: invalid tree gave %v, want %v", s, err, tree.Err())
			}
		case dice.StateValid:
			if err == nil && len(tree.Rolls()) == 0 && tree.ParseExpression() != r {
				t.Errorf("%q: diceless expression gave different results", s)
			}
			return
		}
		if r != 0 || tree.ParseExpression() != 0 {
			t.Errorf("%q: %v tree did not give 0", s, tree.State())
		}
	})
}
