// Package abilities rolls and tracks the six standard ability scores.
package abilities

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/zephyrtronium/dice"
)

// Ability is one of the six standard abilities.
type Ability uint8

const (
	STR Ability = iota
	DEX
	CON
	INT
	WIS
	CHA

	// NumAbilities is the number of abilities.
	NumAbilities = int(CHA) + 1
)

//go:generate go tool stringer -type=Ability

// All lists every ability in order.
func All() []Ability {
	return []Ability{STR, DEX, CON, INT, WIS, CHA}
}

var longNames = [NumAbilities]string{"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma"}

// Parse finds an ability by its three-letter abbreviation or full name,
// ignoring case.
func Parse(s string) (Ability, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range All() {
		if s == strings.ToLower(a.String()) || s == longNames[a] {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown ability %q", s)
}

// Standard is the usual expression for rolling one ability score.
const Standard = "4d6h3"

// ErrScoreRange indicates a rolled score that does not fit in a Score.
var ErrScoreRange = errors.New("ability score out of range")

// Score is the value of one ability.
type Score struct {
	Value uint8 `yaml:"value"`
	// Proficient is whether the proficiency bonus applies to saves.
	Proficient bool `yaml:"proficient,omitempty"`
}

// Mod returns the ability modifier, floor((Value-10)/2).
func (s Score) Mod() int {
	d := int(s.Value) - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// Random returns a score uniformly distributed in [8, 18]. If rng is nil, a
// crypto-seeded source is used.
func Random(rng *rand.Rand) Score {
	d, err := dice.NewDie(rng, 11)
	if err != nil {
		panic(err)
	}
	return Score{Value: uint8(d.Roll() + 7)}
}

// Scores holds all six ability scores and the current proficiency bonus.
// The zero value has every score at zero.
type Scores struct {
	scores [NumAbilities]Score
	prof   uint8
}

// New creates scores with every ability set to def.
func New(def uint8) *Scores {
	var s Scores
	for i := range s.scores {
		s.scores[i].Value = def
	}
	return &s
}

// Roll creates scores by evaluating expr once per ability, in order. An empty
// expr means Standard.
func Roll(expr string, opts ...dice.Option) (*Scores, error) {
	if expr == "" {
		expr = Standard
	}
	tree := dice.NewTree(opts...)
	tree.SetExpression(expr)
	var s Scores
	for _, a := range All() {
		v, err := tree.Eval()
		if err != nil {
			return nil, fmt.Errorf("roll %v: %w", a, err)
		}
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("roll %v: %d: %w", a, v, ErrScoreRange)
		}
		s.scores[a].Value = uint8(v)
	}
	return &s, nil
}

// Get returns the score for an ability.
func (s *Scores) Get(a Ability) Score {
	return s.scores[a]
}

// Set replaces the score for an ability.
func (s *Scores) Set(a Ability, value uint8, proficient bool) {
	s.scores[a] = Score{Value: value, Proficient: proficient}
}

// SetValue changes an ability's value and keeps its proficiency.
func (s *Scores) SetValue(a Ability, value uint8) {
	s.scores[a].Value = value
}

// SetProficient changes whether an ability's saves get the proficiency bonus.
func (s *Scores) SetProficient(a Ability, proficient bool) {
	s.scores[a].Proficient = proficient
}

// Proficiency returns the current proficiency bonus.
func (s *Scores) Proficiency() uint8 {
	return s.prof
}

// SetProficiency sets the current proficiency bonus.
func (s *Scores) SetProficiency(p uint8) {
	s.prof = p
}

// Mod returns an ability's modifier.
func (s *Scores) Mod(a Ability) int {
	return s.scores[a].Mod()
}

// Save returns an ability's saving throw modifier, which includes the
// proficiency bonus if the ability is proficient.
func (s *Scores) Save(a Ability) int {
	m := s.scores[a].Mod()
	if s.scores[a].Proficient {
		m += int(s.prof)
	}
	return m
}

// Add returns the sum of two sets of scores, as when applying racial
// bonuses. Values saturate at 255. An ability is proficient if it is in
// either operand, and the proficiency bonus is the larger of the two.
func (s *Scores) Add(o *Scores) *Scores {
	var r Scores
	for i := range r.scores {
		r.scores[i] = Score{
			Value:      uint8(min(int(s.scores[i].Value)+int(o.scores[i].Value), 255)),
			Proficient: s.scores[i].Proficient || o.scores[i].Proficient,
		}
	}
	r.prof = max(s.prof, o.prof)
	return &r
}

// Map returns the scores keyed by ability abbreviation.
func (s *Scores) Map() map[string]Score {
	m := make(map[string]Score, NumAbilities)
	for _, a := range All() {
		m[a.String()] = s.scores[a]
	}
	return m
}
