package core

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

type UptimeCommand struct{}

func (c *UptimeCommand) Name() string           { return "uptime" }
func (c *UptimeCommand) Description() string    { return "Show how long the bot has been running" }
func (c *UptimeCommand) Category() string       { return "🕯️ Information" }
func (c *UptimeCommand) OwnerOnly() bool        { return false }
func (c *UptimeCommand) AllowedRoles() []string { return []string{} }
func (c *UptimeCommand) NeedsDefer() bool       { return true }

func (c *UptimeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *UptimeCommand) Run(ctx *command.Context) error {
	up := time.Since(ctx.StartedAt).Round(time.Second)

	days := int(up.Hours()) / 24
	hours := int(up.Hours()) % 24
	minutes := int(up.Minutes()) % 60
	seconds := int(up.Seconds()) % 60

	embed := discord.InfoEmbed("Uptime", fmt.Sprintf(
		"Online for **%dd %dh %dm %ds**\nStarted <t:%d:F>",
		days, hours, minutes, seconds, ctx.StartedAt.Unix(),
	))
	return ctx.Respond.Finalize(respond.Payload{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}
