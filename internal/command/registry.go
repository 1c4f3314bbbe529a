package command

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateCommand is returned when a name is registered twice.
	ErrDuplicateCommand = errors.New("command already registered")

	// ErrInvalidDefinition is returned for commands with no usable name.
	ErrInvalidDefinition = errors.New("invalid command definition")
)

// Registry holds all registered commands keyed by name.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. Registration is startup-only; the registry is
// read-only once the bot starts serving interactions.
func (r *Registry) Register(c Command) error {
	if c == nil || c.Name() == "" {
		return ErrInvalidDefinition
	}
	if _, exists := r.commands[c.Name()]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicateCommand, c.Name())
	}

	r.commands[c.Name()] = c
	return nil
}

// Lookup resolves a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// All returns every registered command sorted by name.
func (r *Registry) All() []Command {
	all := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}
