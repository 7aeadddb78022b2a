package dice

import (
	"io"
	"strconv"
	"strings"
)

// Expr    = Term { ('+' | '-') Term }
// Term    = Dice { ('*' | '/' | '%') Dice }
// Dice    = Primary { Roll } | Roll { Roll }
// Roll    = 'd' [ Operand ] [ Keep ]
// Primary = Operand
// Operand = num | '-' num | '(' Expr ')'
// Keep    = ('h' | 'l') num
//
// A '-' is a literal sign only when a digit follows it immediately. Digits
// after h or l must likewise follow immediately. An omitted dice count is 1
// and omitted sides are DefaultSides.

// Expr is a parsed dice expression. Evaluate it with a Roller or a Tree.
type Expr struct {
	// n is the root node of the expression.
	n node
}

// parsectx holds general data for parsing.
type parsectx struct {
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
}

// Parse parses a dice expression. The given options are applied in order.
// Every error resulting from invalid input implements InputError.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseterm parses a term whose operators all bind more tightly than until.
// If there is no error, then parseterm pushes the last token it scans,
// including EOF. If the input is an empty parenthesized subexpression, the
// result is nil with no error.
func parseterm(scan *lexer, p *parsectx, until operator) (node, error) {
	n, err := parselhs(scan, p)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &binaryNode{op: prec.op, left: n, right: rhs}
		case tokenDice:
			if !diceprec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			n, err = parsedice(scan, p, n)
			if err != nil {
				return nil, err
			}
		case tokenKeep:
			// Keep modifiers are consumed by parsedice, so this one does not
			// follow a dice term.
			return nil, &KeepError{Col: tok.pos, Keep: tok.text}
		case tokenNum, tokenOpen:
			return nil, &TermError{Col: tok.pos, Text: tok.text}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("dice: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. Whitespace normally lexed as
// EOF is ignored.
func parselhs(scan *lexer, p *parsectx) (node, error) {
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum, tokenOp, tokenOpen:
		n, err := parseoperand(scan, p, tok)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
		}
		return n, nil
	case tokenDice:
		// d6 -> 1d6
		return parsedice(scan, p, &literalNode{value: 1, implicit: true})
	case tokenKeep:
		return nil, &KeepError{Col: tok.pos, Keep: tok.text}
	case tokenClose:
		// Let the caller decide whether an empty group is an error.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("dice: unknown token: " + tok.String())
	}
}

// parseoperand parses a number, signed number, or parenthesized group
// starting at tok. If tok cannot start an operand, the result is nil with no
// error and nothing is consumed beyond tok.
func parseoperand(scan *lexer, p *parsectx, tok lexToken) (node, error) {
	switch tok.kind {
	case tokenNum:
		return literal(tok, false)
	case tokenOp:
		if tok.text != "-" || !scan.digitNext() {
			return nil, nil
		}
		num, err := scan.next("")
		if err != nil {
			return nil, err
		}
		num.pos = tok.pos
		return literal(num, true)
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return rhs, nil
	default:
		return nil, nil
	}
}

// parsedice parses the sides and keep modifier of a dice term following the
// d token.
func parsedice(scan *lexer, p *parsectx, count node) (node, error) {
	tok, err := scan.next(p.wseof)
	if err != nil {
		return nil, err
	}
	sides, err := parseoperand(scan, p, tok)
	if err != nil {
		return nil, err
	}
	if sides == nil {
		// 3d -> 3d20
		scan.push(tok)
		sides = &literalNode{value: DefaultSides, implicit: true}
	}
	keep, err := parsekeep(scan, p)
	if err != nil {
		return nil, err
	}
	return &diceNode{count: count, sides: sides, keep: keep}, nil
}

// parsekeep parses an optional h<N> or l<N> modifier.
func parsekeep(scan *lexer, p *parsectx) (Keep, error) {
	tok, err := scan.next(p.wseof)
	if err != nil {
		return Keep{}, err
	}
	if tok.kind != tokenKeep {
		scan.push(tok)
		return Keep{}, nil
	}
	if !scan.digitNext() {
		return Keep{}, &KeepError{Col: tok.pos, Keep: tok.text}
	}
	num, err := scan.next("")
	if err != nil {
		return Keep{}, err
	}
	n, err := strconv.Atoi(num.text)
	if err != nil {
		return Keep{}, &LexError{Text: num.text, Kind: "number", Col: num.pos}
	}
	k := Keep{Kind: KeepHighest, N: n}
	if tok.text == "l" {
		k.Kind = KeepLowest
	}
	return k, nil
}

// literal converts a number token to a node.
func literal(tok lexToken, neg bool) (node, error) {
	text := tok.text
	if neg {
		text = "-" + text
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, &LexError{Text: text, Kind: "number", Col: tok.pos}
	}
	return &literalNode{value: v}, nil
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression is
// inside a group.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	left := ""
	if open {
		left = "("
	}
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left, Right: ""}
	case tokenClose:
		return &BracketError{Col: tok.pos, Left: left, Right: tok.text}
	default:
		panic("dice: it really should not have ended this way: " + tok.String())
	}
}

// String creates a compact, fully parenthesized rendering of the expression.
// Parsing the result yields an equivalent expression.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.accept(formatter{b: &b})
	return b.String()
}

// Dump creates the multi-line debug rendering of the parsed tree. A lone
// literal renders as "head->(42)\n".
func (e *Expr) Dump() string {
	return dump(e.n)
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// op is the node kind to use when this operator is selected.
	op opKind
}

// moreBinding reports whether p binds more tightly than than. All operators
// are left-associative, so equal precedence does not bind more tightly.
func (p operator) moreBinding(than operator) bool {
	return p.prec > than.prec
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of opNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, opAdd}
	case "-":
		return operator{1, opSub}
	case "*":
		return operator{5, opMul}
	case "/":
		return operator{5, opDiv}
	case "%":
		return operator{5, opMod}
	default:
		return operator{}
	}
}

var (
	// diceprec is the precedence of d, above every arithmetic operator.
	diceprec = operator{10, opNone}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, opNone}
)
