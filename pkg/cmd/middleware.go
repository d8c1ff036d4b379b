package cmd

// Middleware wraps a command (logging, permission checks, rate limits).
type Middleware func(Command) Command

// Apply applies middlewares in order; the first in the list is the innermost,
// so the last one runs first.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}
