// Package names generates fantasy character names by joining randomly chosen
// fragments.
package names

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/dice/internal/random"
)

// DefaultRace is the race used when none is given.
const DefaultRace = "dwarf"

// ErrEmptyTable indicates a fragment table with nothing to choose from.
var ErrEmptyTable = errors.New("empty fragment table")

//go:embed names.yaml
var builtin []byte

// Fragments are the pieces joined to form one name.
type Fragments struct {
	Prefix []string `yaml:"prefix"`
	Suffix []string `yaml:"suffix"`
}

// Race holds the fragment tables for one race. First is keyed by gender.
type Race struct {
	First map[string]Fragments `yaml:"first"`
	Last  Fragments            `yaml:"last"`
}

// Tables maps race names to their fragment tables.
type Tables map[string]Race

// ParseTables reads fragment tables from YAML and checks that every table can
// produce a non-empty name.
func ParseTables(r io.Reader) (Tables, error) {
	var t Tables
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode name tables: %w", err)
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("no races: %w", ErrEmptyTable)
	}
	for name, race := range t {
		if len(race.First) == 0 {
			return nil, fmt.Errorf("race %s has no first names: %w", name, ErrEmptyTable)
		}
		for gender, f := range race.First {
			if err := f.check(); err != nil {
				return nil, fmt.Errorf("race %s first %s: %w", name, gender, err)
			}
		}
		if err := race.Last.check(); err != nil {
			return nil, fmt.Errorf("race %s last: %w", name, err)
		}
	}
	return t, nil
}

func (f Fragments) check() error {
	if len(f.Prefix) == 0 || len(f.Suffix) == 0 {
		return ErrEmptyTable
	}
	if slices.Contains(f.Prefix, "") || slices.Contains(f.Suffix, "") {
		return fmt.Errorf("empty fragment: %w", ErrEmptyTable)
	}
	return nil
}

var defaultTables = sync.OnceValue(func() Tables {
	t, err := ParseTables(bytes.NewReader(builtin))
	if err != nil {
		panic(fmt.Errorf("names: builtin tables: %w", err))
	}
	return t
})

// DefaultTables returns the built-in fragment tables. The result is shared
// and must not be modified.
func DefaultTables() Tables {
	return defaultTables()
}

// Races lists the races in t in sorted order.
func (t Tables) Races() []string {
	return slices.Sorted(maps.Keys(t))
}

// Genders lists the genders with first name tables for race in sorted order.
func (t Tables) Genders(race string) []string {
	return slices.Sorted(maps.Keys(t[race].First))
}

// UnknownError is an error for a race or gender that has no tables.
type UnknownError struct {
	// Kind is "race" or "gender".
	Kind string
	// Name is the requested race or gender.
	Name string
	// Known lists the available choices.
	Known []string
}

func (err *UnknownError) Error() string {
	return "unknown " + err.Kind + " " + strconv.Quote(err.Name) + " (have " + strings.Join(err.Known, ", ") + ")"
}

// Generator creates names for one race and gender. A Generator is not safe
// for concurrent use.
type Generator struct {
	race    string
	gender  string
	genders []string
	tables  Race
	rng     *rand.Rand
	title   cases.Caser
}

// New creates a generator from the built-in tables. An empty race means
// DefaultRace. An empty gender chooses one at random for each first name.
func New(rng *rand.Rand, race, gender string) (*Generator, error) {
	return DefaultTables().New(rng, race, gender)
}

// New creates a generator from t. An empty race means DefaultRace. An empty
// gender chooses one at random for each first name. If rng is nil, the
// generator uses its own source seeded from crypto/rand.
func (t Tables) New(rng *rand.Rand, race, gender string) (*Generator, error) {
	race = strings.ToLower(strings.TrimSpace(race))
	gender = strings.ToLower(strings.TrimSpace(gender))
	if race == "" {
		race = DefaultRace
	}
	r, ok := t[race]
	if !ok {
		return nil, &UnknownError{Kind: "race", Name: race, Known: t.Races()}
	}
	if gender != "" {
		if _, ok := r.First[gender]; !ok {
			return nil, &UnknownError{Kind: "gender", Name: gender, Known: t.Genders(race)}
		}
	}
	if rng == nil {
		rng = random.New()
	}
	g := Generator{
		race:    race,
		gender:  gender,
		genders: t.Genders(race),
		tables:  r,
		rng:     rng,
		title:   cases.Title(language.Und),
	}
	return &g, nil
}

// Race returns the generator's race.
func (g *Generator) Race() string {
	return g.race
}

// Gender returns the generator's gender, or the empty string if it chooses
// one per name.
func (g *Generator) Gender() string {
	return g.gender
}

// First generates a first name.
func (g *Generator) First() string {
	gender := g.gender
	if gender == "" {
		gender = g.genders[g.rng.Intn(len(g.genders))]
	}
	return g.join(g.tables.First[gender])
}

// Last generates a family name.
func (g *Generator) Last() string {
	return g.join(g.tables.Last)
}

// Name generates a full name, a first name and a family name separated by a
// space.
func (g *Generator) Name() string {
	return g.First() + " " + g.Last()
}

func (g *Generator) join(f Fragments) string {
	p := f.Prefix[g.rng.Intn(len(f.Prefix))]
	s := f.Suffix[g.rng.Intn(len(f.Suffix))]
	return g.title.String(p + s)
}
