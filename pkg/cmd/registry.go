package cmd

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry stores commands by name, case-insensitively. It does not dispatch;
// adapters look commands up and run them with their own invocation data.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	aliases  map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds c under its name and the given aliases. A name that is
// already taken is an error.
func (r *Registry) Register(c Command, aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(c.Name())
	if r.taken(name) {
		return fmt.Errorf("command %q already registered", c.Name())
	}
	for _, a := range aliases {
		if a = strings.ToLower(a); r.taken(a) || a == name {
			return fmt.Errorf("alias %q of %q already registered", a, c.Name())
		}
	}

	r.commands[name] = c
	for _, a := range aliases {
		r.aliases[strings.ToLower(a)] = name
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	_, cmd := r.commands[name]
	_, alias := r.aliases[name]
	return cmd || alias
}

// Get returns the command registered under name or one of its aliases, or nil.
func (r *Registry) Get(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.ToLower(name)
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	return r.commands[name]
}

// GetAll returns all registered commands, sorted by name.
func (r *Registry) GetAll() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	slices.SortFunc(list, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return list
}
