package dice

import (
	"errors"
	"log/slog"
	"math/rand"
	"slices"
	"strconv"

	"github.com/zephyrtronium/dice/internal/random"
)

// DefaultMaxDice is the default limit on the number of dice a single dice term
// may roll.
const DefaultMaxDice = 10000

// ErrTooManyDice indicates a dice term whose count exceeds the roller's limit.
var ErrTooManyDice = errors.New("too many dice")

// Roller evaluates expressions, rolling dice from its random source. It is not
// safe to use a Roller concurrently.
type Roller struct {
	rng   *rand.Rand
	stack []int
	rolls []Roll
	max   int
	log   *slog.Logger
}

// Roll records one evaluated dice term.
type Roll struct {
	// Sides is the number of sides on each die.
	Sides int `yaml:"sides"`
	// Results is every die rolled, in the order rolled.
	Results []int `yaml:"results"`
	// Kept is the dice that contributed to Total, in keep order. Without a
	// keep modifier it is the same as Results.
	Kept []int `yaml:"kept,omitempty"`
	// Keep is the term's keep modifier.
	Keep Keep `yaml:"-"`
	// Total is the sum of Kept.
	Total int `yaml:"total"`
}

// Option configures a Roller or Tree.
type Option interface {
	option(config) config
}

type config struct {
	rng *rand.Rand
	log *slog.Logger
	max int
}

type (
	randopt struct{ rng *rand.Rand }
	logopt  struct{ log *slog.Logger }
	maxopt  int
)

func (o randopt) option(c config) config {
	c.rng = o.rng
	return c
}

func (o logopt) option(c config) config {
	c.log = o.log
	return c
}

func (o maxopt) option(c config) config {
	c.max = int(o)
	return c
}

// WithRand sets the random source for dice rolls.
func WithRand(rng *rand.Rand) Option {
	return randopt{rng}
}

// WithLogger sets the logger for debug output. By default nothing is logged.
func WithLogger(log *slog.Logger) Option {
	return logopt{log}
}

// MaxDice sets the largest count a single dice term may roll. Counts of zero
// or less use DefaultMaxDice.
func MaxDice(n int) Option {
	return maxopt(n)
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	if c.rng == nil {
		c.rng = random.New()
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	if c.max <= 0 {
		c.max = DefaultMaxDice
	}
	return c
}

// NewRoller creates a roller drawing from rng. If rng is nil, the roller uses
// its own source seeded from crypto/rand. Options may override rng.
func NewRoller(rng *rand.Rand, opts ...Option) *Roller {
	if rng != nil {
		opts = append([]Option{WithRand(rng)}, opts...)
	}
	c := newConfig(opts)
	return &Roller{rng: c.rng, max: c.max, log: c.log}
}

// Eval evaluates an expression, rolling every dice term afresh.
func (r *Roller) Eval(e *Expr) (int, error) {
	r.stack = r.stack[:0]
	r.rolls = r.rolls[:0]
	if err := e.n.accept(r); err != nil {
		r.log.Debug("evaluation failed", slog.String("expr", e.String()), slog.Any("err", err))
		return 0, err
	}
	if len(r.stack) != 1 {
		panic("dice: inconsistent stack: " + strconv.Itoa(len(r.stack)) + " items (bad AST?)")
	}
	return r.stack[0], nil
}

// Rolls returns the dice terms rolled by the last call to Eval, in evaluation
// order. Terms with a count of zero or less roll nothing and are omitted.
func (r *Roller) Rolls() []Roll {
	return slices.Clone(r.rolls)
}

// reset forgets the last evaluation.
func (r *Roller) reset() {
	r.stack = r.stack[:0]
	r.rolls = r.rolls[:0]
}

func (r *Roller) push(v int) {
	r.stack = append(r.stack, v)
}

func (r *Roller) pop() int {
	v := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return v
}

func (r *Roller) literal(n *literalNode) error {
	r.push(n.value)
	return nil
}

func (r *Roller) binary(n *binaryNode) error {
	if err := n.left.accept(r); err != nil {
		return err
	}
	if err := n.right.accept(r); err != nil {
		return err
	}
	y := r.pop()
	x := r.pop()
	switch n.op {
	case opAdd:
		r.push(x + y)
	case opSub:
		r.push(x - y)
	case opMul:
		r.push(x * y)
	case opDiv:
		if y == 0 {
			return &DivisionError{Op: n.op.String(), Dividend: x}
		}
		r.push(x / y)
	case opMod:
		if y == 0 {
			return &DivisionError{Op: n.op.String(), Dividend: x}
		}
		r.push(x % y)
	default:
		panic("dice: invalid operator " + n.op.String())
	}
	return nil
}

func (r *Roller) dice(n *diceNode) error {
	if err := n.count.accept(r); err != nil {
		return err
	}
	if err := n.sides.accept(r); err != nil {
		return err
	}
	sides := r.pop()
	count := r.pop()
	if count <= 0 {
		// Nothing to roll. The term takes the value of its sides.
		r.push(sides)
		return nil
	}
	if count > r.max {
		return &DiceError{Count: count, Sides: sides, Err: ErrTooManyDice}
	}
	d, err := NewDie(r.rng, sides)
	if err != nil {
		return &DiceError{Count: count, Sides: sides, Err: ErrInvalidSides}
	}
	roll := Roll{Sides: sides, Results: make([]int, count), Keep: n.keep}
	for i := range roll.Results {
		roll.Results[i] = d.Roll()
	}
	roll.Kept = keep(roll.Results, n.keep)
	for _, v := range roll.Kept {
		roll.Total += v
	}
	r.rolls = append(r.rolls, roll)
	r.push(roll.Total)
	return nil
}

// keep selects the dice that count toward a term's total. The result does not
// alias results.
func keep(results []int, k Keep) []int {
	kept := slices.Clone(results)
	switch k.Kind {
	case KeepNone:
		return kept
	case KeepHighest:
		slices.SortFunc(kept, func(a, b int) int { return b - a })
	case KeepLowest:
		slices.Sort(kept)
	default:
		panic("dice: invalid keep kind " + k.Kind.String())
	}
	return kept[:min(max(k.N, 0), len(kept))]
}

// EvalString is a shortcut to parse and evaluate a string expression once.
// If rng is nil, a crypto-seeded source is used.
func EvalString(src string, rng *rand.Rand) (int, error) {
	e, err := ParseString(src)
	if err != nil {
		return 0, err
	}
	return NewRoller(rng).Eval(e)
}

// DiceError is an error from a dice term that cannot be rolled.
type DiceError struct {
	// Count is the number of dice the term tried to roll.
	Count int
	// Sides is the number of sides the term's dice would have had.
	Sides int
	// Err is ErrInvalidSides or ErrTooManyDice.
	Err error
}

func (err *DiceError) Error() string {
	return "cannot roll " + strconv.Itoa(err.Count) + "d" + strconv.Itoa(err.Sides) + ": " + err.Err.Error()
}

func (err *DiceError) Unwrap() error {
	return err.Err
}

// DivisionError is an error from a division or remainder by zero.
type DivisionError struct {
	// Op is "/" or "%".
	Op string
	// Dividend is the left operand.
	Dividend int
}

func (err *DivisionError) Error() string {
	return "division by zero: " + strconv.Itoa(err.Dividend) + " " + err.Op + " 0"
}
