package args

// Outcome is the result of running a leaf's parsers over a cursor: a Success
// or a Failure.
type Outcome interface {
	outcome()
}

// Success holds the parsed values in declaration order and the tokens the
// parsers left behind.
type Success struct {
	Values    []any
	Remaining Cursor
}

// FullMatch reports whether every token was consumed.
func (s Success) FullMatch() bool { return s.Remaining.Empty() }

// Failure records the 1-based position of the parser that rejected its input.
type Failure struct {
	Index int
	Err   error
}

func (Success) outcome() {}
func (Failure) outcome() {}

// IsFullMatch reports whether o is a Success that consumed every token.
func IsFullMatch(o Outcome) bool {
	s, ok := o.(Success)
	return ok && s.FullMatch()
}

func parseSequence(parsers []erased, c Cursor) Outcome {
	values := make([]any, 0, len(parsers))
	for _, p := range parsers {
		v, next, err := p.parse(c)
		if err != nil {
			return Failure{Index: len(values) + 1, Err: err}
		}
		values = append(values, v)
		c = next
	}
	return Success{Values: values, Remaining: c}
}
