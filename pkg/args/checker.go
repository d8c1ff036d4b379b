package args

import (
	"errors"
	"fmt"
	"strings"
)

// Authoring errors. They are raised with panic while a description is built,
// because they indicate a defect in the command itself rather than bad input.
var (
	ErrTwoImplementations           = errors.New("args: cannot provide two implementations in one block")
	ErrImplementationAndSubcommands = errors.New("args: cannot provide implementation and subcommands in one block")
	ErrDuplicateSubcommand          = errors.New("args: cannot use same subcommand twice")
	ErrBlockSealed                  = errors.New("args: description block used after it was built")
	ErrNoShape                      = errors.New("args: command description declares nothing")
)

type blockState int

const (
	stateEmpty blockState = iota
	stateImplementation
	stateSubcommands
)

// checker guards a single block: it commits to one leaf or match-first set,
// or to a list of uniquely named subcommands.
type checker struct {
	state blockState
	seen  []string
}

func (c *checker) implementation() {
	switch c.state {
	case stateImplementation:
		panic(ErrTwoImplementations)
	case stateSubcommands:
		panic(ErrImplementationAndSubcommands)
	}
	c.state = stateImplementation
}

func (c *checker) subcommands() {
	if c.state == stateImplementation {
		panic(ErrImplementationAndSubcommands)
	}
	c.state = stateSubcommands
}

func (c *checker) subcommand(name string) {
	c.subcommands()

	for _, s := range c.seen {
		if strings.EqualFold(s, name) {
			panic(fmt.Errorf("%w: %q", ErrDuplicateSubcommand, name))
		}
	}
	c.seen = append(c.seen, name)
}
