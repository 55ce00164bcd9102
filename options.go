package dioscript

// Option configures a Dioscript instance at construction time, grounded on the functional-options pattern used by
// `participle.Build[T](opts ...Option)` and by go-dws's `NewWithOptions`.
type Option func(*Dioscript)

// outputFunc adapts a plain function to the OutputHandler interface so
// WithOutput can take a closure directly.
type outputFunc func(string)

func (f outputFunc) Emit(s string) { f(s) }

// WithOutput directs print/println-style output to sink instead of
// discarding it.
func WithOutput(sink func(string)) Option {
	return func(d *Dioscript) {
		d.eval.Output = outputFunc(sink)
	}
}

// WithMaxDerefHops overrides the reference-chain hop ceiling. Values <= 0 are ignored.
func WithMaxDerefHops(n int) Option {
	return func(d *Dioscript) {
		d.eval.Env.SetMaxDerefHops(n)
	}
}

// WithMaxRecursionDepth overrides the script-function call-depth ceiling
//. Values <= 0 are ignored.
func WithMaxRecursionDepth(n int) Option {
	return func(d *Dioscript) {
		d.eval.SetMaxCallDepth(n)
	}
}
