package args

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingRunsOnce(t *testing.T) {
	shape := Describe(func(b *Block[*testEnv]) {
		Args1(b, StringArg("s"), func(e *testEnv, s string) error { return e.record(s) })
	})
	p, err := Match[*testEnv](shape, tokens("once"))
	require.NoError(t, err)

	env := &testEnv{}
	require.NoError(t, p.Run(env, Inline))
	assert.Equal(t, []string{"once"}, env.calls)

	err = recoverError(func() { _ = p.Run(env, Inline) })
	assert.ErrorIs(t, err, ErrPendingReused)
	assert.Len(t, env.calls, 1)
}

func TestPendingConcurrentRun(t *testing.T) {
	var mu sync.Mutex
	runs := 0
	shape := Describe(func(b *Block[*testEnv]) {
		NoArgs(b, func(e *testEnv) error {
			mu.Lock()
			runs++
			mu.Unlock()
			return nil
		})
	})
	p, err := Match[*testEnv](shape, tokens(""))
	require.NoError(t, err)

	var wg sync.WaitGroup
	panics := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := recoverError(func() { _ = p.Run(&testEnv{}, Inline) }); err != nil {
				panics <- err
			}
		}()
	}
	wg.Wait()
	close(panics)

	assert.Equal(t, 1, runs)
	assert.Len(t, panics, 7)
}

func TestPendingHandsEnvironmentToStrategy(t *testing.T) {
	type env struct{ name string }
	var seen string
	shape := Describe(func(b *Block[*env]) {
		NoArgs(b, func(e *env) error {
			seen = e.name
			return nil
		})
	})
	p, err := Match[*env](shape, NewCursor(nil))
	require.NoError(t, err)

	var scheduled func() error
	require.NoError(t, p.Run(&env{name: "guild-1"}, StrategyFunc(func(work func() error) error {
		scheduled = work
		return nil
	})))
	assert.Empty(t, seen)

	require.NoError(t, scheduled())
	assert.Equal(t, "guild-1", seen)
}
