package args

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(s string) Cursor { return NewCursor(strings.Fields(s)) }

func TestExecuteLeaf(t *testing.T) {
	var got []any
	shape := Describe(func(b *Block[*testEnv]) {
		Args3(b, StringArg("name"), IntArg("count"), Optional(IntArg("sides"), 6),
			func(e *testEnv, name string, count, sides int) error {
				got = []any{name, count, sides}
				return nil
			})
	})

	require.NoError(t, Execute(shape, tokens("dice 2"), &testEnv{}, Inline))
	assert.Equal(t, []any{"dice", 2, 6}, got)

	require.NoError(t, Execute(shape, tokens("dice 3 20"), &testEnv{}, Inline))
	assert.Equal(t, []any{"dice", 3, 20}, got)
}

func TestExecuteLeafErrors(t *testing.T) {
	shape := Describe(func(b *Block[*testEnv]) {
		Args2(b, StringArg("name"), IntArg("count"), func(e *testEnv, name string, count int) error {
			return e.record(name)
		})
	})

	tests := []struct {
		name  string
		input string
		msg   string
		index int
	}{
		{"extraneous", "a 1 b", "Error while parsing argument 3: extraneous arg: b", 3},
		{"bad int", "a b", `Error while parsing argument 2: expected an integer, got "b"`, 2},
		{"missing", "", "Error while parsing argument 1: missing argument", 1},
		{"missing second", "a", "Error while parsing argument 2: missing argument", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &testEnv{}
			err := Execute(shape, tokens(tt.input), env, Inline)

			var nm *NoMatchError
			require.ErrorAs(t, err, &nm)
			assert.Equal(t, tt.msg, nm.Message)
			assert.Equal(t, tt.index, nm.Index)
			assert.Empty(t, env.calls)
		})
	}
}

func TestExecuteExtraneousSingleArgument(t *testing.T) {
	shape := Describe(func(b *Block[*testEnv]) {
		Args1(b, StringArg("statement"), func(e *testEnv, s string) error { return e.record(s) })
	})

	err := Execute(shape, tokens("a b"), &testEnv{}, Inline)
	require.Error(t, err)
	assert.Equal(t, "Error while parsing argument 2: extraneous arg: b", err.Error())
}

func TestExecuteOpaqueParserError(t *testing.T) {
	secret := errors.New("internal detail")
	p := Token("id", "Snowflake", func(string) (string, error) { return "", secret })
	shape := Describe(func(b *Block[*testEnv]) {
		Args1(b, p, func(e *testEnv, id string) error { return nil })
	})

	err := Execute(shape, tokens("x"), &testEnv{}, Inline)
	var nm *NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "Error while parsing argument 1", nm.Message)
	assert.ErrorIs(t, err, secret)
}

func TestExecuteNoArgs(t *testing.T) {
	shape := Describe(func(b *Block[*testEnv]) {
		NoArgs(b, func(e *testEnv) error { return e.record("ran") })
	})

	env := &testEnv{}
	require.NoError(t, Execute(shape, tokens(""), env, Inline))
	assert.Equal(t, []string{"ran"}, env.calls)

	err := Execute(shape, tokens("oops"), env, Inline)
	require.Error(t, err)
	assert.Equal(t, "Error while parsing argument 1: extraneous arg: oops", err.Error())
	assert.Len(t, env.calls, 1)
}

func TestExecuteAlternativesFirstMatchWins(t *testing.T) {
	evaluated := 0
	counting := Token("any", "String", func(s string) (string, error) {
		evaluated++
		return s, nil
	})

	shape := Describe(func(b *Block[*testEnv]) {
		b.MatchFirst(func(c *Choices[*testEnv]) {
			NoArgs(c, func(e *testEnv) error { return e.record("none") })
			Args1(c, StringArg("statement"), func(e *testEnv, s string) error { return e.record("one:" + s) })
			Args1(c, counting, func(e *testEnv, s string) error { return e.record("shadowed") })
		})
	})

	env := &testEnv{}
	require.NoError(t, Execute(shape, tokens(""), env, Inline))
	require.NoError(t, Execute(shape, tokens("hello"), env, Inline))
	assert.Equal(t, []string{"none", "one:hello"}, env.calls)
	assert.Zero(t, evaluated, "branches after the winner are not evaluated")
}

func TestExecuteAlternativesDiscardPartialMatch(t *testing.T) {
	shape := Describe(func(b *Block[*testEnv]) {
		b.MatchFirst(func(c *Choices[*testEnv]) {
			Args1(c, StringArg("message_id"), func(e *testEnv, id string) error { return e.record("single") })
			Args2(c, StringArg("range_begin"), StringArg("range_end"), func(e *testEnv, a, b string) error {
				return e.record("range")
			})
		})
	})

	env := &testEnv{}
	require.NoError(t, Execute(shape, tokens("1 2"), env, Inline))
	assert.Equal(t, []string{"range"}, env.calls)

	err := Execute(shape, tokens("1 2 3"), env, Inline)
	var nm *NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, MsgNoAlternative, nm.Message)
	assert.Zero(t, nm.Index)
	assert.Len(t, env.calls, 1)
}

func TestExecuteNestedMatchFirst(t *testing.T) {
	shape := Describe(func(b *Block[*testEnv]) {
		b.MatchFirst(func(c *Choices[*testEnv]) {
			c.MatchFirst(func(c *Choices[*testEnv]) {
				Args1(c, IntArg("n"), func(e *testEnv, n int) error { return e.record("int") })
			})
			Args1(c, StringArg("s"), func(e *testEnv, s string) error { return e.record("string") })
		})
	})

	env := &testEnv{}
	require.NoError(t, Execute(shape, tokens("5"), env, Inline))
	require.NoError(t, Execute(shape, tokens("five"), env, Inline))
	assert.Equal(t, []string{"int", "string"}, env.calls)
}

func digestShape(ids *[]string) Shape[*testEnv] {
	return Describe(func(b *Block[*testEnv]) {
		b.Subcommands(func(s *SubcommandSet[*testEnv]) {
			s.Subcommand("add", func(b *Block[*testEnv]) {
				Args1(b, StringArg("id"), func(e *testEnv, id string) error {
					*ids = append(*ids, id)
					return nil
				})
			})
			s.Subcommand("clear", func(b *Block[*testEnv]) {
				NoArgs(b, func(e *testEnv) error { return e.record("clear") })
			})
		})
	})
}

func TestExecuteSubcommands(t *testing.T) {
	var ids []string
	shape := digestShape(&ids)

	for _, input := range []string{"ADD 42", "add 43", "Add 44"} {
		require.NoError(t, Execute(shape, tokens(input), &testEnv{}, Inline), input)
	}
	assert.Equal(t, []string{"42", "43", "44"}, ids)

	env := &testEnv{}
	require.NoError(t, Execute(shape, tokens("CLEAR"), env, Inline))
	assert.Equal(t, []string{"clear"}, env.calls)
}

func TestExecuteSubcommandsNoMatch(t *testing.T) {
	var ids []string
	shape := digestShape(&ids)

	for _, input := range []string{"", "remove 1", "add", "add 1 2", "clear now"} {
		t.Run(input, func(t *testing.T) {
			env := &testEnv{}
			err := Execute(shape, tokens(input), env, Inline)
			var nm *NoMatchError
			require.ErrorAs(t, err, &nm)
			assert.Equal(t, MsgNoSubcommand, nm.Message)
			assert.Empty(t, env.calls)
		})
	}
	assert.Empty(t, ids)
}

func TestExecuteEmptySubcommandBodyNeverMatches(t *testing.T) {
	shape := Describe(func(b *Block[*testEnv]) {
		b.Subcommands(func(s *SubcommandSet[*testEnv]) {
			s.Subcommand("later", func(b *Block[*testEnv]) {})
		})
	})

	err := Execute(shape, tokens("later"), &testEnv{}, Inline)
	assert.EqualError(t, err, MsgNoSubcommand)
}

func TestExecuteReturnsHandlerError(t *testing.T) {
	boom := errors.New("boom")
	shape := Describe(func(b *Block[*testEnv]) {
		NoArgs(b, func(e *testEnv) error { return boom })
	})

	err := Execute(shape, tokens(""), &testEnv{}, Inline)
	assert.ErrorIs(t, err, boom)

	var nm *NoMatchError
	assert.False(t, errors.As(err, &nm))
}

func TestExecuteDeferredStrategy(t *testing.T) {
	var queued []func() error
	queue := StrategyFunc(func(work func() error) error {
		queued = append(queued, work)
		return nil
	})

	shape := Describe(func(b *Block[*testEnv]) {
		Args1(b, StringArg("s"), func(e *testEnv, s string) error { return e.record(s) })
	})

	env := &testEnv{}
	require.NoError(t, Execute(shape, tokens("later"), env, queue))
	assert.Empty(t, env.calls)

	require.Len(t, queued, 1)
	require.NoError(t, queued[0]())
	assert.Equal(t, []string{"later"}, env.calls)
}

func TestMatchDoesNotRun(t *testing.T) {
	shape := Describe(func(b *Block[*testEnv]) {
		Args2(b, StringArg("a"), IntArg("b"), func(e *testEnv, a string, b int) error { return e.record(a) })
	})

	p, err := Match[*testEnv](shape, tokens("x 3"))
	require.NoError(t, err)
	assert.Equal(t, []any{"x", 3}, p.Values())
}

func TestExecuteEmptyShapePanics(t *testing.T) {
	err := recoverError(func() {
		_ = Execute[*testEnv](&Empty[*testEnv]{}, tokens(""), &testEnv{}, Inline)
	})
	assert.ErrorIs(t, err, ErrNoShape)
}

func TestExecuteFourArguments(t *testing.T) {
	var got []any
	shape := Describe(func(b *Block[*testEnv]) {
		Args4(b, StringArg("a"), IntArg("n"), StringArg("c"), RemainingStringArgs("rest"),
			func(e *testEnv, a string, n int, c string, rest []string) error {
				got = []any{a, n, c, rest}
				return nil
			})
	})

	require.NoError(t, Execute(shape, tokens("x 2 y z w"), &testEnv{}, Inline))
	assert.Equal(t, []any{"x", 2, "y", []string{"z", "w"}}, got)

	err := Execute(shape, tokens("x y"), &testEnv{}, Inline)
	var nm *NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, 2, nm.Index)
	assert.Equal(t, `Error while parsing argument 2: expected an integer, got "y"`, nm.Message)

	fixed := Describe(func(b *Block[*testEnv]) {
		Args4(b, StringArg("a"), IntArg("n"), StringArg("c"), StringArg("d"),
			func(e *testEnv, a string, n int, c, d string) error { return nil })
	})
	err = Execute(fixed, tokens("a 1 b c d"), &testEnv{}, Inline)
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, 5, nm.Index)
	assert.Equal(t, "Error while parsing argument 5: extraneous arg: d", nm.Message)
	assert.Equal(t, "[a: String] [n: Int] [c: String] [d: String]", Render[*testEnv](fixed))
}
