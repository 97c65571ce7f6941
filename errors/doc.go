/*
Package errors implements the coded errors used across the framework.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when absolutely necessary. It is best to define a
new error here if you feel it is going to be somewhat package-agnostic.

If you want to register a custom error use Register(code, description). For
reusing errors use ErrXyz.New and ErrXyz.Newf. Code stands for the ABCI error
code, which allows to distinguish types of errors on the client side and act
accordingly.

There is also support for stacktraces. Please ensure you create the error
using ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation
to attach a stacktrace. If you wrap multiple times, only the first wrap
records the stacktrace. Avoid declaring package level instances like
`var errFoo = errors.ErrInput.New("foo")` as the recorded stacktrace would be
useless.

Once you have an error, you can use fmt verbs to get more context.
	%s is just the error message
	%+v is the full stack trace
*/
package errors
