// Package core holds the always-on informational commands.
package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/respond"
)

type PingCommand struct{}

func (c *PingCommand) Name() string           { return "ping" }
func (c *PingCommand) Description() string    { return "Check bot latency" }
func (c *PingCommand) Category() string       { return "🕯️ Information" }
func (c *PingCommand) OwnerOnly() bool        { return false }
func (c *PingCommand) AllowedRoles() []string { return []string{} }
func (c *PingCommand) NeedsDefer() bool       { return false }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(ctx *command.Context) error {
	latency := ctx.Session.HeartbeatLatency().Milliseconds()
	return ctx.Respond.Finalize(respond.Payload{
		Content: fmt.Sprintf("🏓 Pong! %dms", latency),
	})
}
