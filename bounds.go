package dice

import "errors"

// errUnbounded stops a bounds walk for subexpressions that may fail to
// evaluate.
var errUnbounded = errors.New("unbounded")

// interval is a closed range of integers.
type interval struct {
	lo, hi int
}

func (a interval) union(b interval) interval {
	return interval{min(a.lo, b.lo), max(a.hi, b.hi)}
}

// span returns the smallest interval containing all of vs.
func span(vs ...int) interval {
	r := interval{vs[0], vs[0]}
	for _, v := range vs[1:] {
		r.lo = min(r.lo, v)
		r.hi = max(r.hi, v)
	}
	return r
}

// bounder computes the range of values an expression can produce. Bounds are
// exact for sums and products and may be loose for remainders. Overflow is
// not considered.
type bounder struct {
	stack []interval
}

func (b *bounder) push(v interval) {
	b.stack = append(b.stack, v)
}

func (b *bounder) pop() interval {
	v := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return v
}

func (b *bounder) literal(n *literalNode) error {
	b.push(interval{n.value, n.value})
	return nil
}

func (b *bounder) binary(n *binaryNode) error {
	if err := n.left.accept(b); err != nil {
		return err
	}
	if err := n.right.accept(b); err != nil {
		return err
	}
	y := b.pop()
	x := b.pop()
	switch n.op {
	case opAdd:
		b.push(interval{x.lo + y.lo, x.hi + y.hi})
	case opSub:
		b.push(interval{x.lo - y.hi, x.hi - y.lo})
	case opMul:
		b.push(span(x.lo*y.lo, x.lo*y.hi, x.hi*y.lo, x.hi*y.hi))
	case opDiv:
		if y.lo <= 0 && 0 <= y.hi {
			return errUnbounded
		}
		// Truncating division is monotone in each argument on either side
		// of zero, so the extremes are at the corners.
		b.push(span(x.lo/y.lo, x.lo/y.hi, x.hi/y.lo, x.hi/y.hi))
	case opMod:
		if y.lo <= 0 && 0 <= y.hi {
			return errUnbounded
		}
		// |x % y| < |y| and the result has the sign of x.
		m := max(abs(y.lo), abs(y.hi)) - 1
		r := interval{max(x.lo, -m), min(x.hi, m)}
		if x.lo >= 0 {
			r.lo = 0
		}
		if x.hi <= 0 {
			r.hi = 0
		}
		b.push(r)
	default:
		panic("dice: invalid operator " + n.op.String())
	}
	return nil
}

func (b *bounder) dice(n *diceNode) error {
	if err := n.count.accept(b); err != nil {
		return err
	}
	if err := n.sides.accept(b); err != nil {
		return err
	}
	sides := b.pop()
	count := b.pop()
	if count.hi <= 0 {
		b.push(sides)
		return nil
	}
	if sides.lo < 1 {
		// Some positive count meets a dieless side count.
		return errUnbounded
	}
	// kept is the number of dice summed for a given count.
	kept := func(c int) int {
		if n.keep.Kind == KeepNone {
			return c
		}
		return min(max(n.keep.N, 0), c)
	}
	r := interval{kept(max(count.lo, 1)), kept(count.hi) * sides.hi}
	if count.lo <= 0 {
		r = r.union(sides)
	}
	b.push(r)
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Bounds returns the least and greatest values the expression can evaluate
// to. ok is false if some evaluation may fail, e.g. by dividing by a range
// that includes zero or rolling dice with no sides.
func (e *Expr) Bounds() (lo, hi int, ok bool) {
	var b bounder
	if err := e.n.accept(&b); err != nil {
		return 0, 0, false
	}
	r := b.stack[0]
	return r.lo, r.hi, true
}
