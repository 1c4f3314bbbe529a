package command

import (
	"log"
	"time"
)

// Middleware wraps a command with cross-cutting behavior.
type Middleware func(Command) Command

// Wrapped decorates a command's Run. The inner command stays reachable via
// Unwrap so optional interfaces like SlashProvider survive wrapping.
type Wrapped struct {
	Command
	RunFunc func(ctx *Context) error
}

func (w *Wrapped) Run(ctx *Context) error {
	return w.RunFunc(ctx)
}

func (w *Wrapped) Unwrap() Command {
	return w.Command
}

// Apply wraps a command with the given middleware, outermost last.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// AsSlash finds a SlashProvider on the command or any wrapped inner command.
func AsSlash(c Command) (SlashProvider, bool) {
	for c != nil {
		if p, ok := c.(SlashProvider); ok {
			return p, true
		}
		u, ok := c.(interface{ Unwrap() Command })
		if !ok {
			return nil, false
		}
		c = u.Unwrap()
	}
	return nil, false
}

// AsComponent finds a ComponentHandler on the command or any wrapped inner
// command.
func AsComponent(c Command) (ComponentHandler, bool) {
	for c != nil {
		if h, ok := c.(ComponentHandler); ok {
			return h, true
		}
		u, ok := c.(interface{ Unwrap() Command })
		if !ok {
			return nil, false
		}
		c = u.Unwrap()
	}
	return nil, false
}

// WithCommandLogger logs every run with its outcome and duration.
func WithCommandLogger() Middleware {
	return func(next Command) Command {
		return &Wrapped{
			Command: next,
			RunFunc: func(ctx *Context) error {
				start := time.Now()
				err := next.Run(ctx)
				if err != nil {
					log.Printf("[WARN] Command '%s' failed after %s: %v", next.Name(), time.Since(start).Round(time.Millisecond), err)
				} else {
					log.Printf("[INFO] Command '%s' completed in %s", next.Name(), time.Since(start).Round(time.Millisecond))
				}
				return err
			},
		}
	}
}
