// Package command defines the command contract and the registry the
// dispatcher resolves invocations against. Concrete commands live in the
// category subpackages and register themselves at startup.
package command

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/config"
	"mlvsbot/internal/reminder"
	"mlvsbot/internal/respond"
	"mlvsbot/internal/storage"
	"mlvsbot/internal/translate"
	"mlvsbot/pkg/jobs"
)

// Command is the minimal contract every bot command implements.
type Command interface {
	Name() string
	Description() string
	Category() string

	// OwnerOnly restricts the command to the configured bot owner.
	OwnerOnly() bool

	// AllowedRoles lists role IDs permitted to invoke the command. Empty
	// means no role requirement.
	AllowedRoles() []string

	// NeedsDefer reports whether the dispatcher should defer the
	// interaction before running the handler. Commands that hit storage,
	// the network, or external APIs should return true.
	NeedsDefer() bool

	Run(ctx *Context) error
}

// SlashProvider is implemented by commands that expose a slash definition.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// ComponentHandler is implemented by commands that own message components.
// The dispatcher routes component interactions whose custom ID starts with
// "<name>:" to the command's Component method.
type ComponentHandler interface {
	Component(ctx *Context) error
}

// Context carries everything a command handler needs for one invocation.
type Context struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate

	Registry   *Registry
	Storage    *storage.Storage
	Reminders  *reminder.Store
	Translator *translate.Translator
	Config     *config.Config
	Jobs       *jobs.Manager
	StartedAt  time.Time

	// Respond is the response channel for this interaction. Handlers send
	// all user-visible output through it.
	Respond *respond.Channel
}

// GuildID returns the guild the interaction came from, empty in DMs.
func (c *Context) GuildID() string {
	return c.Event.GuildID
}

// CallerID returns the invoking user's ID regardless of guild or DM context.
func (c *Context) CallerID() string {
	if c.Event.Member != nil && c.Event.Member.User != nil {
		return c.Event.Member.User.ID
	}
	if c.Event.User != nil {
		return c.Event.User.ID
	}
	return ""
}

// Caller returns the invoking user.
func (c *Context) Caller() *discordgo.User {
	if c.Event.Member != nil && c.Event.Member.User != nil {
		return c.Event.Member.User
	}
	return c.Event.User
}

// Option finds a named option in a slash command's option list.
func Option(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, opt := range opts {
		if opt.Name == name {
			return opt, true
		}
	}
	return nil, false
}
