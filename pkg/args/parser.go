package args

import (
	"fmt"
	"strconv"
)

// Parser reads one typed argument from the front of a cursor and returns the
// cursor positioned after whatever it consumed.
type Parser[T any] interface {
	Usage() Usage
	Parse(c Cursor) (T, Cursor, error)
}

// ReadableError is a parse failure whose message is safe to show to users.
// Other error types are reported without their message.
type ReadableError struct {
	Message string
}

func (e *ReadableError) Error() string { return e.Message }

// Readable returns a *ReadableError with a formatted message.
func Readable(format string, a ...any) error {
	return &ReadableError{Message: fmt.Sprintf(format, a...)}
}

// ErrMissingArgument is returned by token parsers when the cursor is exhausted.
var ErrMissingArgument error = &ReadableError{Message: "missing argument"}

type tokenParser[T any] struct {
	usage Usage
	fn    func(token string) (T, error)
}

// Token builds a parser that consumes exactly one token and converts it with fn.
func Token[T any](name, typeLabel string, fn func(token string) (T, error)) Parser[T] {
	return tokenParser[T]{
		usage: Usage{Name: name, Type: typeLabel, Count: CountOnce},
		fn:    fn,
	}
}

func (p tokenParser[T]) Usage() Usage { return p.usage }

func (p tokenParser[T]) Parse(c Cursor) (T, Cursor, error) {
	var zero T
	if c.Empty() {
		return zero, c, ErrMissingArgument
	}
	v, err := p.fn(c.First())
	if err != nil {
		return zero, c, err
	}
	return v, c.Tail(), nil
}

type optionalParser[T any] struct {
	inner Parser[T]
	def   T
}

// Optional accepts zero or one occurrence of p. An exhausted cursor yields def.
func Optional[T any](p Parser[T], def T) Parser[T] {
	return optionalParser[T]{inner: p, def: def}
}

func (p optionalParser[T]) Usage() Usage {
	u := p.inner.Usage()
	u.Count = CountOptional
	return u
}

func (p optionalParser[T]) Parse(c Cursor) (T, Cursor, error) {
	if c.Empty() {
		return p.def, c, nil
	}
	return p.inner.Parse(c)
}

type repeatingParser[T any] struct {
	inner Parser[T]
}

// Repeating accepts zero or more occurrences of p. It stops at the end of the
// cursor or at the first token p rejects, leaving that token unconsumed.
func Repeating[T any](p Parser[T]) Parser[[]T] {
	return repeatingParser[T]{inner: p}
}

func (p repeatingParser[T]) Usage() Usage {
	u := p.inner.Usage()
	u.Count = CountRepeating
	return u
}

func (p repeatingParser[T]) Parse(c Cursor) ([]T, Cursor, error) {
	var out []T
	for !c.Empty() {
		v, next, err := p.inner.Parse(c)
		if err != nil {
			break
		}
		out = append(out, v)
		c = next
	}
	return out, c, nil
}

// StringArg accepts any single token.
func StringArg(name string) Parser[string] {
	return Token(name, "String", func(token string) (string, error) {
		return token, nil
	})
}

// IntArg accepts a base-10 integer token.
func IntArg(name string) Parser[int] {
	return Token(name, "Int", func(token string) (int, error) {
		n, err := strconv.Atoi(token)
		if err != nil {
			return 0, Readable("expected an integer, got %q", token)
		}
		return n, nil
	})
}

// RemainingStringArgs accepts every remaining token.
func RemainingStringArgs(name string) Parser[[]string] {
	return Repeating(StringArg(name))
}

// erased lets a leaf hold parsers of different result types.
type erased interface {
	usage() Usage
	parse(c Cursor) (any, Cursor, error)
}

type erasedParser[T any] struct {
	p Parser[T]
}

func erase[T any](p Parser[T]) erased { return erasedParser[T]{p: p} }

func (e erasedParser[T]) usage() Usage { return e.p.Usage() }

func (e erasedParser[T]) parse(c Cursor) (any, Cursor, error) {
	v, next, err := e.p.Parse(c)
	return v, next, err
}
