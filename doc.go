// Package awkish provides an awk-style line processing engine.
//
// awkish keeps the awk processing model but replaces the awk language
// with registered Go callables: conditions and actions evaluated in
// registration order against every record, plus hooks at job and file
// granularity.
//
// # Quick Start
//
// Echo every line of a file to stdout:
//
//	a := awkish.New(nil)
//	a.All(nil) // default action echoes the line
//	err := a.Run("data.txt")
//
// Print the first field of lines containing "error":
//
//	a := awkish.New(nil)
//	a.When(awkish.Find("error"), func(r *awkish.Record) {
//	    r.Print(r.Field(1))
//	})
//	err := a.Run("app.log")
//
// # Records
//
// Each input line becomes a [Record]: the raw line with its terminator
// stripped (and remembered), the parsed fields, the job and file record
// counters, and any extension values attached to the engine. Conditions
// and actions receive the record; a truthy condition result (anything
// but nil, false or [Absent]) triggers the paired action, and the value
// is visible to the action as Record.Result.
//
// # Field splitting
//
// The [Config] FS option selects the splitting strategy: [Whitespace]
// (default), [Literal], [Pattern], [CSV], [CSVLax], or any custom
// [SplitterFunc]. Fields are recomputed fresh for every line.
//
// # Ranges
//
// [Awk.Between] registers an inclusive range pair in the awk manner:
// matching opens on a record satisfying the on condition and closes on
// a later record satisfying the off condition, with both boundary
// records included. Range state persists across files within one run.
//
// # Flexible signatures
//
// [Bind] adapts an arbitrary function with a declared parameter list to
// the record context, resolving each name to the context value, a
// declared default, or [Absent] for out-of-range field references:
//
//	a.When(awkish.Bind(func(nf int) bool { return nf > 3 }, awkish.P("nf")),
//	    awkish.Bind(func(f1, f3 any) { fmt.Println(f1, f3) },
//	        awkish.P("f1"), awkish.P("f3")))
//
// # Error Handling
//
// The engine is single-attempt and fail-fast. Errors are returned as
// specific types for detailed handling:
//   - [ConfigError]: a callable the adapter cannot use, reported at
//     registration
//   - [MissingArgumentError]: a declared parameter with no value
//   - [FormatError]: strict-mode field splitting failure
//
// Errors raised by user conditions and actions propagate unchanged.
// Output written before an abort is retained.
package awkish
