package dice

import (
	"errors"
	"log/slog"
)

// State is the validity of a Tree's expression.
type State int

const (
	// StateUnset means no expression, or an empty one, has been set.
	StateUnset State = iota
	// StateInvalid means the last expression set failed to parse.
	StateInvalid
	// StateValid means the last expression set parsed successfully.
	StateValid
)

//go:generate go tool stringer -type=State -trimprefix=State

// ErrNotSet is returned when evaluating a Tree with no expression.
var ErrNotSet = errors.New("expression not yet set")

// Tree holds a dice expression and evaluates it on demand. The zero value is
// not usable; create a Tree with NewTree. A Tree is not safe for concurrent
// use.
type Tree struct {
	src   string
	state State
	// expr is non-nil exactly when state is StateValid.
	expr *Expr
	// err is non-nil exactly when state is StateInvalid.
	err  error
	roll *Roller
	log  *slog.Logger
}

// NewTree creates a tree with no expression set.
func NewTree(opts ...Option) *Tree {
	c := newConfig(opts)
	return &Tree{
		state: StateUnset,
		roll:  &Roller{rng: c.rng, max: c.max, log: c.log},
		log:   c.log,
	}
}

// SetExpression replaces the tree's expression and parses it. Whatever the
// tree held before is discarded, even if text fails to parse. Check State or
// Err to learn the outcome.
func (t *Tree) SetExpression(text string) {
	t.src = text
	t.expr = nil
	t.err = nil
	t.roll.reset()
	if text == "" {
		t.state = StateUnset
		return
	}
	e, err := ParseString(text)
	if err != nil {
		t.state = StateInvalid
		t.err = err
		attrs := []any{slog.String("expr", text), slog.Any("err", err)}
		var ierr InputError
		if errors.As(err, &ierr) {
			attrs = append(attrs, slog.Int("col", ierr.Pos()))
		}
		t.log.Debug("invalid expression", attrs...)
		return
	}
	t.state = StateValid
	t.expr = e
}

// Eval evaluates the expression, rolling every dice term afresh. The error is
// ErrNotSet if there is no expression, the parse error if the expression is
// invalid, or a *DiceError or *DivisionError if evaluation fails.
func (t *Tree) Eval() (int, error) {
	switch t.state {
	case StateUnset:
		return 0, ErrNotSet
	case StateInvalid:
		return 0, t.err
	case StateValid:
		return t.roll.Eval(t.expr)
	default:
		panic("dice: invalid tree state " + t.state.String())
	}
}

// ParseExpression evaluates the expression and returns its result, or 0 if
// the expression is unset, invalid, or fails to evaluate.
func (t *Tree) ParseExpression() int {
	r, err := t.Eval()
	if err != nil {
		return 0
	}
	return r
}

// String returns "expression not yet set" or "invalid expression" according
// to the tree's state, or else the debug rendering of the parsed tree.
func (t *Tree) String() string {
	switch t.state {
	case StateUnset:
		return "expression not yet set"
	case StateInvalid:
		return "invalid expression"
	case StateValid:
		return t.expr.Dump()
	default:
		panic("dice: invalid tree state " + t.state.String())
	}
}

// State returns the validity of the last expression set.
func (t *Tree) State() State {
	return t.state
}

// Err returns the parse error of the last expression set, if it was invalid.
func (t *Tree) Err() error {
	return t.err
}

// Expression returns the last expression set.
func (t *Tree) Expression() string {
	return t.src
}

// Expr returns the parsed expression, or nil if the tree is not valid.
func (t *Tree) Expr() *Expr {
	return t.expr
}

// Rolls returns the dice rolled by the last evaluation.
func (t *Tree) Rolls() []Roll {
	return t.roll.Rolls()
}
