package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kolkov/awkish"
)

// Options holds the root command flags.
type Options struct {
	Separator string
	Pattern   string
	CSV       bool
	Lax       bool
	RS        string
	OFS       string
	ORS       string

	Search  []string
	Match   []string
	Find    []string
	Any     []string
	Between []string

	Script string
	Output string
	Append bool
	Vars   []string
}

// NewRootCommand creates the awkish command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "awkish [flags] [file ...]",
		Short: "awk-style line processing with registered pattern rules",
		Long: `awkish processes text files line by line: every line is matched
against the configured rules in order, and matching lines are echoed
(or printed per the rule) to the output.

Rules come from flags (--search, --match, --find, --any, --between) or
from a YAML script (--script). With no rules every line is echoed.
With no file arguments, input is read from stdin.

Examples:
  awkish --search 'ERROR' app.log
  awkish --csv --script report.yaml data.csv
  awkish --between '^` + "```" + `','^` + "```" + `' README.md`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       awkish.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Separator, "separator", "F", "", "literal field separator")
	f.StringVarP(&opts.Pattern, "pattern", "p", "", "regular expression field separator")
	f.BoolVar(&opts.CSV, "csv", false, "parse fields as CSV")
	f.BoolVar(&opts.Lax, "lax", false, "best-effort CSV parsing instead of strict")
	f.StringVar(&opts.RS, "rs", "", "input record separator (default: newline)")
	f.StringVar(&opts.OFS, "ofs", "", "output field separator (default: space)")
	f.StringVar(&opts.ORS, "ors", "", "output record separator (default: newline)")
	f.StringArrayVarP(&opts.Search, "search", "e", nil, "echo lines matching pattern anywhere (repeatable)")
	f.StringArrayVarP(&opts.Match, "match", "m", nil, "echo lines matching pattern at line start (repeatable)")
	f.StringArrayVar(&opts.Find, "find", nil, "echo lines containing substring (repeatable)")
	f.StringSliceVar(&opts.Any, "any", nil, "echo lines containing any of the substrings")
	f.StringArrayVar(&opts.Between, "between", nil, "echo inclusive ranges; value is 'on,off' search patterns")
	f.StringVarP(&opts.Script, "script", "s", "", "YAML rule script")
	f.StringVarP(&opts.Output, "output", "o", "", "write output to file instead of stdout")
	f.BoolVarP(&opts.Append, "append", "a", false, "append to the output file")
	f.StringArrayVar(&opts.Vars, "var", nil, "extension value as name=value (repeatable)")

	return cmd
}

func runRoot(cmd *cobra.Command, opts *Options, files []string) error {
	a, err := buildEngine(opts)
	if err != nil {
		return err
	}

	for _, kv := range opts.Vars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return fmt.Errorf("--var %q: want name=value", kv)
		}
		a.SetVar(name, value)
	}

	switch {
	case opts.Output != "":
		if len(files) == 0 {
			return fmt.Errorf("--output requires input files")
		}
		return a.RunToFile(opts.Output, opts.Append, files...)
	case len(files) == 0:
		return a.Process(cmd.OutOrStdout(), awkish.Source{Name: "stdin", Reader: cmd.InOrStdin()})
	default:
		return a.RunTo(cmd.OutOrStdout(), files...)
	}
}

func buildEngine(opts *Options) (*awkish.Awk, error) {
	var a *awkish.Awk
	if opts.Script != "" {
		script, err := LoadScript(opts.Script)
		if err != nil {
			return nil, err
		}
		a, err = script.Engine()
		if err != nil {
			return nil, err
		}
	} else {
		fs, err := flagSplitter(opts)
		if err != nil {
			return nil, err
		}
		a = awkish.New(&awkish.Config{FS: fs, RS: opts.RS, OFS: opts.OFS, ORS: opts.ORS})
	}

	for _, pat := range opts.Search {
		cond, err := compilePattern(pat, awkish.Search)
		if err != nil {
			return nil, err
		}
		if err := a.When(cond, nil); err != nil {
			return nil, err
		}
	}
	for _, pat := range opts.Match {
		cond, err := compilePattern(pat, awkish.Match)
		if err != nil {
			return nil, err
		}
		if err := a.When(cond, nil); err != nil {
			return nil, err
		}
	}
	for _, sub := range opts.Find {
		if err := a.When(awkish.Find(sub), nil); err != nil {
			return nil, err
		}
	}
	if len(opts.Any) > 0 {
		if err := a.When(awkish.FindAny(opts.Any...), nil); err != nil {
			return nil, err
		}
	}
	for _, pair := range opts.Between {
		onPat, offPat, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("--between %q: want 'on,off'", pair)
		}
		on, err := compilePattern(onPat, awkish.Search)
		if err != nil {
			return nil, err
		}
		off, err := compilePattern(offPat, awkish.Search)
		if err != nil {
			return nil, err
		}
		if err := a.Between(on, off, nil); err != nil {
			return nil, err
		}
	}

	// No flag rules and no script: echo everything.
	if opts.Script == "" && !hasRules(opts) {
		if err := a.All(nil); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func hasRules(opts *Options) bool {
	return len(opts.Search)+len(opts.Match)+len(opts.Find)+len(opts.Any)+len(opts.Between) > 0
}

func flagSplitter(opts *Options) (awkish.Splitter, error) {
	n := 0
	if opts.Separator != "" {
		n++
	}
	if opts.Pattern != "" {
		n++
	}
	if opts.CSV {
		n++
	}
	if n > 1 {
		return nil, fmt.Errorf("--separator, --pattern and --csv are mutually exclusive")
	}
	switch {
	case opts.Separator != "":
		return awkish.Literal(opts.Separator), nil
	case opts.Pattern != "":
		return compilePattern(opts.Pattern, awkish.Pattern)
	case opts.CSV && opts.Lax:
		return awkish.CSVLax(), nil
	case opts.CSV:
		return awkish.CSV(), nil
	}
	return nil, nil
}
