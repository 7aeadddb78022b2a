package dice

import (
	"strconv"
	"strings"
)

// dumper writes the multi-line debug rendering of a tree. The root line is
// "head->(label)". Every other node gets its own line, four columns deeper
// than its parent, starting with "|->". An ancestor's bar continues down the
// page while that ancestor still has siblings below it.
type dumper struct {
	b *strings.Builder
	// prefix is the bar column state for the children of the node being
	// visited.
	prefix string
}

func (d *dumper) line(label string) {
	d.b.WriteByte('(')
	d.b.WriteString(label)
	d.b.WriteString(")\n")
}

// children writes each child on its own line below the current node.
func (d *dumper) children(kids ...node) error {
	saved := d.prefix
	defer func() { d.prefix = saved }()
	for i, c := range kids {
		d.b.WriteString("    ")
		d.b.WriteString(saved)
		d.b.WriteString("|->")
		if i == len(kids)-1 {
			d.prefix = saved + "    "
		} else {
			d.prefix = saved + "|   "
		}
		if err := c.accept(d); err != nil {
			return err
		}
	}
	return nil
}

func (d *dumper) literal(n *literalNode) error {
	d.line(strconv.Itoa(n.value))
	return nil
}

func (d *dumper) dice(n *diceNode) error {
	d.line("d" + n.keep.String())
	return d.children(n.count, n.sides)
}

func (d *dumper) binary(n *binaryNode) error {
	d.line(n.op.String())
	return d.children(n.left, n.right)
}

// dump renders the tree rooted at n.
func dump(n node) string {
	var b strings.Builder
	b.WriteString("head->")
	n.accept(&dumper{b: &b})
	return b.String()
}
