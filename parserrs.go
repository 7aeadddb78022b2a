package dice

import "strconv"

// OperatorError is an error indicating an operator where an operand was
// expected. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was found. A - here is not a literal sign
	// because no digit immediately follows it.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "expected operand, found operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// TermError is an error indicating a term where an operator was expected,
// as in "2 3" or "2(3)". Multiplication is never implicit. It implements
// InputError.
type TermError struct {
	// Col is the position of the unexpected term.
	Col int
	// Text is the token that began the term.
	Text string
}

func (err *TermError) Error() string {
	return errpos(err.Col, "expected operator before "+strconv.Quote(err.Text))
}

func (err *TermError) Pos() int {
	return err.Col
}

// KeepError is an error indicating a keep modifier that does not follow a
// dice term or has no count. It implements InputError.
type KeepError struct {
	// Col is the position of the h or l.
	Col int
	// Keep is "h" or "l".
	Keep string
}

func (err *KeepError) Error() string {
	return errpos(err.Col, "keep modifier "+strconv.Quote(err.Keep)+" must directly follow a dice term and precede a count")
}

func (err *KeepError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TermError)(nil)
	_ InputError = (*KeepError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
