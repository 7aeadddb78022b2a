// Package dice evaluates tabletop dice notation.
//
// Expressions mix integer arithmetic with dice terms. "4d6h3" rolls four
// six-sided dice and keeps the highest three; "(2d6+4)d6+5" rolls 2d6+4 to
// decide how many d6 to roll. Dice bind more tightly than *, / and %, which
// bind more tightly than + and -. Division truncates. A dice count may be
// omitted (d6 is 1d6), and so may the sides (3d is 3d20).
//
// A Tree holds one expression and re-rolls it on every evaluation. Invalid
// input never panics; it leaves the Tree invalid, and evaluating an invalid or
// unset Tree with ParseExpression yields 0. Parse and Roller give direct
// access to parse errors and individual rolls.
//
// Randomness always comes from an explicit *rand.Rand, so seeded sources give
// reproducible rolls.
package dice
