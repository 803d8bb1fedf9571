package awkish

import (
	"bufio"
	"io"
	"os"

	"github.com/kolkov/awkish/internal/scan"
)

// Version is the awkish version string.
const Version = "0.1.0"

// Source is an already-open named input for Process.
type Source struct {
	Name   string
	Reader io.Reader
}

type rule struct {
	cond Condition
	act  Action
}

// Awk is a line-oriented processing engine in the manner of awk: the
// caller registers condition/action pairs and hooks, then runs the
// engine over a sequence of input files. Pairs are evaluated for every
// record in registration order; a truthy condition result (anything
// but nil, false or Absent) triggers the paired action.
//
// An Awk instance is not safe for concurrent use; a second run before
// the first completes is unsupported.
type Awk struct {
	config    Config
	beginJob  []Action
	endJob    []Action
	beginFile []Action
	endFile   []Action
	rules     []rule
	vars      map[string]any
	nr        int
}

// New creates an engine with the given configuration. A nil config
// means all defaults: whitespace field splitting, newline records,
// space OFS and newline ORS.
func New(config *Config) *Awk {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	a := &Awk{config: cfg, vars: make(map[string]any)}
	for k, v := range cfg.Vars {
		a.vars[k] = v
	}
	return a
}

// SetVar attaches a job-scoped extension value before a run. The value
// is visible by name to every hook, condition and action.
func (a *Awk) SetVar(name string, value any) {
	a.vars[name] = value
}

// SetVars attaches several extension values at once.
func (a *Awk) SetVars(vars map[string]any) {
	for k, v := range vars {
		a.vars[k] = v
	}
}

// Var returns the extension value attached under name, or nil.
func (a *Awk) Var(name string) any {
	return a.vars[name]
}

// BeginJob registers a hook run once before any file is processed.
// Hooks run in registration order.
func (a *Awk) BeginJob(hook any) error {
	h, err := asAction(hook)
	if err != nil {
		return err
	}
	a.beginJob = append(a.beginJob, h)
	return nil
}

// EndJob registers a hook run once after all files are processed.
func (a *Awk) EndJob(hook any) error {
	h, err := asAction(hook)
	if err != nil {
		return err
	}
	a.endJob = append(a.endJob, h)
	return nil
}

// Begin registers a hook run before each file's records are processed.
func (a *Awk) Begin(hook any) error {
	h, err := asAction(hook)
	if err != nil {
		return err
	}
	a.beginFile = append(a.beginFile, h)
	return nil
}

// End registers a hook run after each file's records are processed.
func (a *Awk) End(hook any) error {
	h, err := asAction(hook)
	if err != nil {
		return err
	}
	a.endFile = append(a.endFile, h)
	return nil
}

// When registers a condition/action pair. The condition may be a bool,
// a Condition, a func(*Record) shape accepted by the call adapter, or a
// Bound callable. A nil action is the default: echo the current line.
//
// Pairs fire in registration order for every record. Configuration
// problems are reported here, never deferred to the run.
func (a *Awk) When(cond any, action any) error {
	c, err := asCondition(cond)
	if err != nil {
		return err
	}
	act, err := asAction(action)
	if err != nil {
		return err
	}
	a.rules = append(a.rules, rule{cond: c, act: act})
	return nil
}

// All registers an action fired for every record, like When(true, action).
func (a *Awk) All(action any) error {
	return a.When(true, action)
}

// Between registers a range pair: matching starts on a record where on
// holds and stops on a later record where off holds, both ends
// inclusive. The range state persists across files within a run.
func (a *Awk) Between(on, off any, action any) error {
	onC, err := asCondition(on)
	if err != nil {
		return err
	}
	offC, err := asCondition(off)
	if err != nil {
		return err
	}
	act, err := asAction(action)
	if err != nil {
		return err
	}
	m := &rangeMatcher{on: onC, off: offC}
	a.rules = append(a.rules, rule{cond: m.eval, act: act})
	return nil
}

// Run processes the named files in order, writing to standard output.
func (a *Awk) Run(filenames ...string) error {
	return a.RunTo(os.Stdout, filenames...)
}

// RunTo is Run with an explicit output sink.
func (a *Awk) RunTo(output io.Writer, filenames ...string) error {
	return a.run(output, func(job *Record) error {
		for _, name := range filenames {
			if err := a.processFile(job, name); err != nil {
				return err
			}
		}
		return nil
	})
}

// RunToFile runs with output redirected to the named file, truncating
// it unless appendMode is set. The file is closed on every exit path.
func (a *Awk) RunToFile(path string, appendMode bool, filenames ...string) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendMode {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return err
	}
	err = a.RunTo(f, filenames...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Process runs the engine over already-open sources. It is the
// entry point the file-based variants funnel into.
func (a *Awk) Process(output io.Writer, sources ...Source) error {
	return a.run(output, func(job *Record) error {
		for _, src := range sources {
			if err := a.processSource(job, src.Name, src.Reader); err != nil {
				return err
			}
		}
		return nil
	})
}

// run wraps one job: begin-job hooks, the files, end-job hooks. Output
// is buffered; the buffer is flushed on every exit path so partial
// output is retained when a run aborts.
func (a *Awk) run(output io.Writer, files func(*Record) error) error {
	a.nr = 0
	out := bufio.NewWriter(output)
	defer out.Flush()

	job := &Record{awk: a, out: out}
	for _, h := range a.beginJob {
		if err := h(job); err != nil {
			return err
		}
	}
	if err := files(job); err != nil {
		return err
	}
	job.NR = a.nr
	for _, h := range a.endJob {
		if err := h(job); err != nil {
			return err
		}
	}
	return out.Flush()
}

// processFile opens one input file. An open failure aborts the run
// before the file's begin hooks.
func (a *Awk) processFile(job *Record, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return a.processSource(job, name, f)
}

func (a *Awk) processSource(job *Record, name string, r io.Reader) error {
	file := &Record{awk: a, out: job.out, Filename: name, fileOpen: true, NR: a.nr}
	for _, h := range a.beginFile {
		if err := h(file); err != nil {
			return err
		}
	}

	sc := scan.New(r, a.config.RS)
	fnr := 0
	for {
		ln, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		a.nr++
		fnr++
		rec := &Record{
			awk:      a,
			out:      job.out,
			Line:     ln.Text,
			Ending:   ln.End,
			NR:       a.nr,
			FNR:      fnr,
			Filename: name,
			hasLine:  true,
			fileOpen: true,
		}
		if ln.Text != "" {
			fields, err := a.config.FS.Split(ln.Text)
			if err != nil {
				return err
			}
			rec.Fields = fields
		}
		if err := a.dispatch(rec); err != nil {
			return err
		}
	}

	file.NR = a.nr
	file.FNR = fnr
	for _, h := range a.endFile {
		if err := h(file); err != nil {
			return err
		}
	}
	return nil
}

// dispatch evaluates every registered pair against one record in
// registration order. The truthy condition value is exposed as the
// record's Result for the duration of the paired action call.
func (a *Awk) dispatch(rec *Record) error {
	for i := range a.rules {
		ru := &a.rules[i]
		result, err := ru.cond(rec)
		if err != nil {
			return err
		}
		if !truthy(result) {
			continue
		}
		rec.Result = result
		err = ru.act(rec)
		rec.Result = nil
		if err != nil {
			return err
		}
	}
	return nil
}
