package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/internal/config"
	"github.com/zephyrtronium/dice/internal/random"
)

// envConfig holds defaults for flags.
type envConfig struct {
	Seed   int64  `env:"DICE_SEED"`
	Max    int    `env:"DICE_MAX" envDefault:"10000"`
	Format string `env:"DICE_FORMAT" envDefault:"text"`
}

type options struct {
	in     string
	lines  bool
	echo   bool
	tree   bool
	rolls  bool
	bounds bool
	seed   int64
	max    int
	format string
	trials int
}

func main() {
	if _, ok := os.LookupEnv("DEBUG"); ok {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	var cfg envConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("roll: %v", err)
	}
	var opts options
	flag.StringVar(&opts.in, "in", "", "input file (default stdin if no args given)")
	flag.BoolVar(&opts.lines, "n", false, "evaluate separate input lines as separate expressions")
	flag.BoolVar(&opts.echo, "echo", false, "print each expression in fully parenthesized form")
	flag.BoolVar(&opts.tree, "tree", false, "print parse trees")
	flag.BoolVar(&opts.rolls, "rolls", false, "print individual dice")
	flag.BoolVar(&opts.bounds, "bounds", false, "print the least and greatest possible results")
	flag.Int64Var(&opts.seed, "seed", cfg.Seed, "random seed (0 for a random seed) [DICE_SEED]")
	flag.IntVar(&opts.max, "max", cfg.Max, "most dice a single term may roll [DICE_MAX]")
	flag.StringVar(&opts.format, "format", cfg.Format, "output format, text or yaml [DICE_FORMAT]")
	flag.IntVar(&opts.trials, "trials", 1, "number of times to evaluate each expression")
	flag.Parse()

	srcs, err := sources(opts.in, flag.Args(), opts.lines)
	if err != nil {
		config.Exitf("roll: %v", err)
	}
	if err := run(os.Stdout, srcs, opts); err != nil {
		for _, err := range multierr.Errors(err) {
			slog.Error("roll failed", slog.Any("err", err))
		}
		os.Exit(1)
	}
}

// result is the outcome of one expression.
type result struct {
	Expr    string        `yaml:"expr"`
	Tree    string        `yaml:"tree,omitempty"`
	Results []int         `yaml:"results,omitempty"`
	Rolls   [][]dice.Roll `yaml:"rolls,omitempty"`
	Bounds  []int         `yaml:"bounds,flow,omitempty"`
	Error   string        `yaml:"error,omitempty"`
}

// run evaluates every source and writes the results to w. The error combines
// the failure of every expression that failed.
func run(w io.Writer, srcs []string, opts options) error {
	switch opts.format {
	case "text", "yaml":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.trials < 1 {
		return fmt.Errorf("trials (%d) must be positive", opts.trials)
	}
	tree := dice.NewTree(
		dice.WithRand(random.FromSeed(opts.seed)),
		dice.MaxDice(opts.max),
		dice.WithLogger(slog.Default()),
	)
	var errs error
	var out []result
	for _, src := range srcs {
		r, err := evaluate(tree, src, opts)
		errs = multierr.Append(errs, err)
		out = append(out, r)
	}
	var err error
	if opts.format == "yaml" {
		err = writeYAML(w, out)
	} else {
		err = writeText(w, out, opts)
	}
	return multierr.Append(errs, err)
}

func evaluate(tree *dice.Tree, src string, opts options) (result, error) {
	tree.SetExpression(src)
	r := result{Expr: src}
	switch tree.State() {
	case dice.StateUnset:
		r.Error = dice.ErrNotSet.Error()
		return r, fmt.Errorf("%q: %w", src, dice.ErrNotSet)
	case dice.StateInvalid:
		r.Error = tree.Err().Error()
		return r, fmt.Errorf("%q: %w", src, tree.Err())
	}
	if opts.echo {
		r.Expr = tree.Expr().String()
	}
	if opts.tree {
		r.Tree = tree.String()
	}
	if opts.bounds {
		if lo, hi, ok := tree.Expr().Bounds(); ok {
			r.Bounds = []int{lo, hi}
		}
	}
	for range opts.trials {
		v, err := tree.Eval()
		if err != nil {
			r.Error = err.Error()
			return r, fmt.Errorf("%q: %w", src, err)
		}
		r.Results = append(r.Results, v)
		if opts.rolls {
			r.Rolls = append(r.Rolls, tree.Rolls())
		}
	}
	return r, nil
}

func writeYAML(w io.Writer, out []result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return enc.Close()
}

func writeText(w io.Writer, out []result, opts options) error {
	var b strings.Builder
	for _, r := range out {
		if opts.echo || len(out) > 1 {
			b.WriteString(r.Expr)
			b.WriteString(" : ")
		}
		if r.Error != "" {
			b.WriteString(r.Error)
			b.WriteByte('\n')
			continue
		}
		for i, v := range r.Results {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(v))
		}
		if len(r.Bounds) == 2 {
			fmt.Fprintf(&b, " [%d, %d]", r.Bounds[0], r.Bounds[1])
		}
		b.WriteByte('\n')
		for i, rolls := range r.Rolls {
			for _, roll := range rolls {
				if len(r.Rolls) > 1 {
					fmt.Fprintf(&b, "  #%d", i+1)
				}
				fmt.Fprintf(&b, "  d%d%v: %v", roll.Sides, roll.Keep, roll.Results)
				if roll.Keep.Kind != dice.KeepNone {
					fmt.Fprintf(&b, " kept %v", roll.Kept)
				}
				fmt.Fprintf(&b, " = %d\n", roll.Total)
			}
		}
		b.WriteString(r.Tree)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// sources collects expressions from the input file and arguments. With
// lines, each non-blank line of the file is its own expression; otherwise
// the whole file is one.
func sources(inname string, args []string, lines bool) ([]string, error) {
	f, err := infile(inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	var srcs []string
	if f != nil {
		if f != os.Stdin {
			defer f.Close()
		}
		if lines {
			s := bufio.NewScanner(f)
			for s.Scan() {
				if t := strings.TrimSpace(s.Text()); t != "" {
					srcs = append(srcs, t)
				}
			}
			if err := s.Err(); err != nil {
				return nil, fmt.Errorf("read %s: %w", f.Name(), err)
			}
		} else {
			b, err := io.ReadAll(f)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f.Name(), err)
			}
			srcs = append(srcs, strings.TrimSpace(string(b)))
		}
	}
	srcs = append(srcs, args...)
	if len(srcs) == 0 {
		return nil, errors.New("no expressions")
	}
	return srcs, nil
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return f, nil
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
