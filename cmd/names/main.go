package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/abilities"
	"github.com/zephyrtronium/dice/internal/config"
	"github.com/zephyrtronium/dice/internal/random"
	"github.com/zephyrtronium/dice/names"
)

type envConfig struct {
	Race   string `env:"NAMES_RACE" envDefault:"dwarf"`
	Gender string `env:"NAMES_GENDER"`
	Seed   int64  `env:"NAMES_SEED"`
}

type options struct {
	race, gender string
	seed         int64
	count        int
	part         string
	stats        string
	format       string
	tables       string
}

func main() {
	if _, ok := os.LookupEnv("DEBUG"); ok {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	var cfg envConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("names: %v", err)
	}
	var opts options
	flag.StringVar(&opts.race, "race", cfg.Race, "race of names to generate [NAMES_RACE]")
	flag.StringVar(&opts.gender, "gender", cfg.Gender, "gender of first names, or empty for any [NAMES_GENDER]")
	flag.Int64Var(&opts.seed, "seed", cfg.Seed, "random seed (0 for a random seed) [NAMES_SEED]")
	flag.IntVar(&opts.count, "count", 1, "number of names to generate")
	flag.StringVar(&opts.part, "part", "full", "name part to generate: full, first, or last")
	flag.StringVar(&opts.stats, "stats", "", "also roll ability scores with this dice expression, e.g. "+abilities.Standard)
	flag.StringVar(&opts.format, "format", "text", "output format, text or yaml")
	flag.StringVar(&opts.tables, "tables", "", "YAML file of name fragment tables (default built in)")
	flag.Parse()

	if err := run(os.Stdout, opts); err != nil {
		slog.Error("names failed", slog.Any("err", err))
		os.Exit(1)
	}
}

// character is one generated name with optional ability scores.
type character struct {
	Name   string                     `yaml:"name"`
	Scores map[string]abilities.Score `yaml:"scores,omitempty"`
}

func run(w io.Writer, opts options) error {
	tables := names.DefaultTables()
	if opts.tables != "" {
		f, err := os.Open(opts.tables)
		if err != nil {
			return fmt.Errorf("open tables: %w", err)
		}
		defer f.Close()
		tables, err = names.ParseTables(f)
		if err != nil {
			return err
		}
	}
	rng := random.FromSeed(opts.seed)
	gen, err := tables.New(rng, opts.race, opts.gender)
	if err != nil {
		return err
	}
	var name func() string
	switch opts.part {
	case "full", "":
		name = gen.Name
	case "first":
		name = gen.First
	case "last":
		name = gen.Last
	default:
		return fmt.Errorf("unknown name part %q", opts.part)
	}
	slog.Debug("generating names", slog.String("race", gen.Race()), slog.String("gender", gen.Gender()), slog.Int("count", opts.count))

	out := make([]character, 0, max(opts.count, 0))
	for range opts.count {
		c := character{Name: name()}
		if opts.stats != "" {
			s, err := abilities.Roll(opts.stats, dice.WithRand(rng), dice.WithLogger(slog.Default()))
			if err != nil {
				return err
			}
			c.Scores = s.Map()
		}
		out = append(out, c)
	}

	switch opts.format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
		return enc.Close()
	case "text":
		for _, c := range out {
			if _, err := fmt.Fprintln(w, c.Name); err != nil {
				return err
			}
			if c.Scores == nil {
				continue
			}
			for _, a := range abilities.All() {
				s := c.Scores[a.String()]
				if _, err := fmt.Fprintf(w, "  %v %2d (%+d)\n", a, s.Value, s.Mod()); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}
