package dice

import (
	"strconv"
	"strings"
)

// node is a node in the syntax tree of a dice expression. The set of node
// types is closed: each implements accept by calling the matching visitor
// method, so a new node type cannot be added without every visitor handling
// it.
type node interface {
	accept(v visitor) error
}

// visitor walks nodes. Implementations recurse into children themselves.
type visitor interface {
	literal(n *literalNode) error
	dice(n *diceNode) error
	binary(n *binaryNode) error
}

// literalNode is an integer constant.
type literalNode struct {
	value int
	// implicit marks a count or sides filled in by default rather than
	// written in the source.
	implicit bool
}

// diceNode rolls count dice of sides sides and sums those that keep selects.
type diceNode struct {
	count node
	sides node
	keep  Keep
}

// binaryNode applies an arithmetic operator to two operands.
type binaryNode struct {
	op    opKind
	left  node
	right node
}

func (n *literalNode) accept(v visitor) error { return v.literal(n) }
func (n *diceNode) accept(v visitor) error    { return v.dice(n) }
func (n *binaryNode) accept(v visitor) error  { return v.binary(n) }

type opKind int8

const (
	opNone opKind = iota
	opAdd
	opSub
	opMul
	opDiv
	opMod
)

func (op opKind) String() string {
	switch op {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	case opMod:
		return "%"
	default:
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
}

// KeepKind selects which dice of a roll contribute to its total.
type KeepKind int8

const (
	// KeepNone sums every die.
	KeepNone KeepKind = iota
	// KeepHighest sums the N highest dice.
	KeepHighest
	// KeepLowest sums the N lowest dice.
	KeepLowest
)

func (k KeepKind) String() string {
	switch k {
	case KeepNone:
		return "none"
	case KeepHighest:
		return "highest"
	case KeepLowest:
		return "lowest"
	default:
		return "KeepKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Keep is a keep modifier on a dice term, written h<N> or l<N>.
type Keep struct {
	Kind KeepKind
	N    int
}

// String returns the modifier as written in an expression, or the empty
// string for KeepNone.
func (k Keep) String() string {
	switch k.Kind {
	case KeepHighest:
		return "h" + strconv.Itoa(k.N)
	case KeepLowest:
		return "l" + strconv.Itoa(k.N)
	default:
		return ""
	}
}

// formatter writes a compact fully parenthesized rendering that parses back
// to the same tree.
type formatter struct {
	b *strings.Builder
}

func (f formatter) literal(n *literalNode) error {
	f.b.WriteString(strconv.Itoa(n.value))
	return nil
}

func (f formatter) dice(n *diceNode) error {
	f.b.WriteByte('(')
	if c, ok := n.count.(*literalNode); !ok || !c.implicit {
		n.count.accept(f)
	}
	f.b.WriteByte('d')
	if s, ok := n.sides.(*literalNode); !ok || !s.implicit {
		n.sides.accept(f)
	}
	f.b.WriteString(n.keep.String())
	f.b.WriteByte(')')
	return nil
}

func (f formatter) binary(n *binaryNode) error {
	f.b.WriteByte('(')
	n.left.accept(f)
	f.b.WriteByte(' ')
	f.b.WriteString(n.op.String())
	f.b.WriteByte(' ')
	n.right.accept(f)
	f.b.WriteByte(')')
	return nil
}
