package dice_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/dice"
)

func newTree(seed int64, opts ...dice.Option) *dice.Tree {
	opts = append([]dice.Option{dice.WithRand(rand.New(rand.NewSource(seed)))}, opts...)
	return dice.NewTree(opts...)
}

func TestTreeUnset(t *testing.T) {
	tree := newTree(1)
	assert.Equal(t, dice.StateUnset, tree.State())
	assert.Equal(t, "expression not yet set", tree.String())
	assert.Equal(t, 0, tree.ParseExpression())
	_, err := tree.Eval()
	assert.ErrorIs(t, err, dice.ErrNotSet)

	tree.SetExpression("1")
	tree.SetExpression("")
	assert.Equal(t, dice.StateUnset, tree.State())
	assert.Equal(t, "expression not yet set", tree.String())
	assert.Nil(t, tree.Expr())
	assert.NoError(t, tree.Err())
}

func TestTreeInvalid(t *testing.T) {
	cases := []string{"dhgdshd", "   ", "1 +", "(2d6", "2 3", "4d6h", "1.5"}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			tree := newTree(1)
			tree.SetExpression(src)
			assert.Equal(t, dice.StateInvalid, tree.State())
			assert.Equal(t, "invalid expression", tree.String())
			assert.Equal(t, 0, tree.ParseExpression())
			assert.Equal(t, src, tree.Expression())
			assert.Nil(t, tree.Expr())
			var ierr dice.InputError
			require.ErrorAs(t, tree.Err(), &ierr)
			_, err := tree.Eval()
			assert.Equal(t, tree.Err(), err)
		})
	}
}

func TestTreeLiteral(t *testing.T) {
	cases := []struct {
		src  string
		dump string
		r    int
	}{
		{"0", "head->(0)\n", 0},
		{"42", "head->(42)\n", 42},
		{"-5", "head->(-5)\n", -5},
		{" ( 7 ) ", "head->(7)\n", 7},
	}
	for _, c := range cases {
		tree := newTree(1)
		tree.SetExpression(c.src)
		assert.Equal(t, dice.StateValid, tree.State())
		assert.Equal(t, c.dump, tree.String())
		assert.Equal(t, c.r, tree.ParseExpression())
	}
}

func TestTreeDegenerateCounts(t *testing.T) {
	tree := newTree(1)
	tree.SetExpression("-1d0")
	assert.Equal(t, 0, tree.ParseExpression())
	tree.SetExpression("0d-1")
	assert.Equal(t, -1, tree.ParseExpression())
	assert.Empty(t, tree.Rolls())
}

func TestTreeDump(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{
			"2d6+4",
			[]string{
				"head->(+)",
				"    |->(d)",
				"    |   |->(2)",
				"    |   |->(6)",
				"    |->(4)",
			},
		},
		{
			"(2d6 + 4)d6 + 5",
			[]string{
				"head->(+)",
				"    |->(d)",
				"    |   |->(+)",
				"    |   |   |->(d)",
				"    |   |   |   |->(2)",
				"    |   |   |   |->(6)",
				"    |   |   |->(4)",
				"    |   |->(6)",
				"    |->(5)",
			},
		},
		{
			"4d6h3 + 1*2",
			[]string{
				"head->(+)",
				"    |->(dh3)",
				"    |   |->(4)",
				"    |   |->(6)",
				"    |->(*)",
				"        |->(1)",
				"        |->(2)",
			},
		},
		{
			"d",
			[]string{
				"head->(d)",
				"    |->(1)",
				"    |->(20)",
			},
		},
		{
			"1 - 2d(3dl1)",
			[]string{
				"head->(-)",
				"    |->(1)",
				"    |->(d)",
				"        |->(2)",
				"        |->(dl1)",
				"            |->(3)",
				"            |->(20)",
			},
		},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			tree := newTree(1)
			tree.SetExpression(c.src)
			require.Equal(t, dice.StateValid, tree.State(), "%v", tree.Err())
			assert.Equal(t, strings.Join(c.want, "\n")+"\n", tree.String())
		})
	}
}

func TestTreeRange(t *testing.T) {
	cases := []struct {
		src    string
		lo, hi int
	}{
		{"1d1", 1, 1},
		{"3d6", 3, 18},
		{"2d20", 2, 40},
		{"10d4", 10, 40},
		{"4d6h3", 3, 18},
		{"4d6l3 + 6", 9, 24},
		{"(2d6 + 4)d6 + 5", 11, 101},
		{"2d(1d6 + 2) / 2", 1, 8},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			tree := newTree(7)
			tree.SetExpression(c.src)
			require.Equal(t, dice.StateValid, tree.State(), "%v", tree.Err())
			for i := 0; i < 2000; i++ {
				r := tree.ParseExpression()
				require.GreaterOrEqual(t, r, c.lo)
				require.LessOrEqual(t, r, c.hi)
			}
		})
	}
}

func TestTreeIdempotentString(t *testing.T) {
	tree := newTree(1)
	tree.SetExpression("(2d6 + 4)d6 + 5")
	want := tree.String()
	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		seen[tree.ParseExpression()] = true
		assert.Equal(t, want, tree.String())
	}
	assert.Greater(t, len(seen), 1, "results never varied")
}

func TestTreeReassign(t *testing.T) {
	tree := newTree(1)
	tree.SetExpression("100d6")
	require.Equal(t, dice.StateValid, tree.State())
	tree.ParseExpression()
	require.Len(t, tree.Rolls(), 1)

	tree.SetExpression("7")
	assert.Equal(t, "head->(7)\n", tree.String())
	assert.Empty(t, tree.Rolls())
	for i := 0; i < 10; i++ {
		assert.Equal(t, 7, tree.ParseExpression())
	}

	tree.SetExpression("dhgdshd")
	assert.Equal(t, "invalid expression", tree.String())
	assert.Equal(t, 0, tree.ParseExpression())

	tree.SetExpression("1d1 + 1")
	assert.Equal(t, dice.StateValid, tree.State())
	assert.NoError(t, tree.Err())
	assert.Equal(t, 2, tree.ParseExpression())
}

func TestTreeEvalErrors(t *testing.T) {
	tree := newTree(1, dice.MaxDice(10))
	tree.SetExpression("11d6")
	assert.Equal(t, dice.StateValid, tree.State())
	_, err := tree.Eval()
	assert.ErrorIs(t, err, dice.ErrTooManyDice)
	assert.Equal(t, 0, tree.ParseExpression())

	tree.SetExpression("3 / (1d1 - 1)")
	_, err = tree.Eval()
	var derr *dice.DivisionError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, 0, tree.ParseExpression())
}

func TestTreeSeeded(t *testing.T) {
	a, b := newTree(99), newTree(99)
	a.SetExpression("8d12h4 + d")
	b.SetExpression("8d12h4 + d")
	for i := 0; i < 50; i++ {
		require.Equal(t, a.ParseExpression(), b.ParseExpression())
	}
	require.Equal(t, a.Rolls(), b.Rolls())
}

func TestTreeLogging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tree := newTree(1, dice.WithLogger(log))

	tree.SetExpression("4d6h")
	out := buf.String()
	assert.Contains(t, out, "invalid expression")
	assert.Contains(t, out, "col=4")

	buf.Reset()
	tree.SetExpression("1 % 0")
	assert.Empty(t, buf.String())
	assert.Equal(t, 0, tree.ParseExpression())
	assert.Contains(t, buf.String(), "evaluation failed")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Unset", dice.StateUnset.String())
	assert.Equal(t, "Invalid", dice.StateInvalid.String())
	assert.Equal(t, "Valid", dice.StateValid.String())
	assert.Equal(t, "State(7)", dice.State(7).String())
}

func TestTreeErrNotSetIsSentinel(t *testing.T) {
	_, err := dice.NewTree().Eval()
	assert.True(t, errors.Is(err, dice.ErrNotSet))
}
