package core

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
	"mlvsbot/internal/version"
)

type BotInfoCommand struct{}

func (c *BotInfoCommand) Name() string           { return "botinfo" }
func (c *BotInfoCommand) Description() string    { return "Show bot version and runtime details" }
func (c *BotInfoCommand) Category() string       { return "🕯️ Information" }
func (c *BotInfoCommand) OwnerOnly() bool        { return false }
func (c *BotInfoCommand) AllowedRoles() []string { return []string{} }
func (c *BotInfoCommand) NeedsDefer() bool       { return true }

func (c *BotInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *BotInfoCommand) Run(ctx *command.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	embed := &discordgo.MessageEmbed{
		Title: version.AppName,
		Color: discord.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: version.AppVersion, Inline: true},
			{Name: "Go", Value: runtime.Version(), Inline: true},
			{Name: "Guilds", Value: fmt.Sprintf("%d", len(ctx.Session.State.Guilds)), Inline: true},
			{Name: "Memory", Value: fmt.Sprintf("%.1f MB", float64(mem.Alloc)/1024/1024), Inline: true},
			{Name: "Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "Uptime", Value: time.Since(ctx.StartedAt).Round(time.Second).String(), Inline: true},
		},
	}
	return ctx.Respond.Finalize(respond.Payload{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}
