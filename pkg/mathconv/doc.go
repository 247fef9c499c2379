/*
Package mathconv evaluates small formulas over up to ten positional inputs.

# Overview

A formula is a single expression over the variables x, y, z and Var3 to
Var9, bound in order to the inputs supplied with each evaluation. Formulas
are parsed once and cached; evaluating the same text again only binds new
inputs. Numbers in string inputs are parsed under the converter's culture,
so "1,5" is one and a half under de-DE.

	conv := mathconv.New(mathconv.WithCulture(culture.MustParse("en-US")))

	v, err := conv.Convert(ctx, "Round(x * 1.2; 2)", 19.99)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(v) // 23.99

# Syntax

Function arguments are separated by ';' and string literals are delimited
by backticks:

	IsNull(x; `n/a`)
	Format(`{0:N2} EUR`; x * y)
	x > 0 ? Concat(`+`; x) : x

See package expr for the grammar and package function for the built-ins.

# Failures

Evaluation never panics. Coercion problems degrade to null: `x + 1` with a
non-numeric x is null, not an error. Hard failures are returned as errors:
syntax errors and wrong argument counts when the formula is parsed, and
failures raised by functions such as Throw or Round while it runs. TryCatch
turns a hard failure in any but its last argument back into a value.
Cancellation of ctx and recovered panics are never suppressed.

# Default Converter

Hosts that need a process-wide converter can register one before first use:

	if err := mathconv.SetDefault(mathconv.New(opts...)); err != nil {
	    log.Fatal(err)
	}
	v, err := mathconv.Convert(ctx, "x * 2", 21)

Without a registration the first call to Default builds one with default
options. Once resolved, the default can no longer be replaced.

# Named Formulas

A converter configured with a library evaluates stored formulas by name:

	store, _ := library.NewSQLiteStore("formulas.db")
	conv := mathconv.New(mathconv.WithLibrary(store))
	v, err := conv.ConvertNamed(ctx, "vat", 100)

# Observability

Logging, metrics and tracing are opt-in. Every evaluation gets a unique
eval_id shared by its log records and spans.

	conv := mathconv.New(
	    mathconv.WithLogger(slog.Default()),
	    mathconv.WithMetrics(true),
	    mathconv.WithTracing(true),
	)
*/
package mathconv
