package info

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

type ServerInfoCommand struct{}

func (c *ServerInfoCommand) Name() string           { return "serverinfo" }
func (c *ServerInfoCommand) Description() string    { return "Show details about this server" }
func (c *ServerInfoCommand) Category() string       { return "🕯️ Information" }
func (c *ServerInfoCommand) OwnerOnly() bool        { return false }
func (c *ServerInfoCommand) AllowedRoles() []string { return []string{} }
func (c *ServerInfoCommand) NeedsDefer() bool       { return true }

func (c *ServerInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ServerInfoCommand) Run(ctx *command.Context) error {
	guild, err := ctx.Session.State.Guild(ctx.GuildID())
	if err != nil {
		guild, err = ctx.Session.Guild(ctx.GuildID())
		if err != nil {
			return fmt.Errorf("error fetching guild %s: %w", ctx.GuildID(), err)
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: guild.Name,
		Color: discord.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: guild.ID, Inline: true},
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "Created", Value: timestamp(guild.ID), Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
			{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
		},
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}

	return ctx.Respond.Finalize(respond.Payload{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}
