// Package info holds commands that inspect users and guilds.
package info

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

type UserInfoCommand struct{}

func (c *UserInfoCommand) Name() string           { return "userinfo" }
func (c *UserInfoCommand) Description() string    { return "Show details about a server member" }
func (c *UserInfoCommand) Category() string       { return "🕯️ Information" }
func (c *UserInfoCommand) OwnerOnly() bool        { return false }
func (c *UserInfoCommand) AllowedRoles() []string { return []string{} }
func (c *UserInfoCommand) NeedsDefer() bool       { return true }

func (c *UserInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The member to inspect (defaults to you)",
			},
		},
	}
}

func (c *UserInfoCommand) Run(ctx *command.Context) error {
	target := ctx.Caller()
	if opt, ok := command.Option(ctx.Event.ApplicationCommandData().Options, "user"); ok {
		target = opt.UserValue(ctx.Session)
	}

	member, err := ctx.Session.GuildMember(ctx.GuildID(), target.ID)
	if err != nil {
		return fmt.Errorf("error fetching member %s: %w", target.ID, err)
	}

	roles := make([]string, 0, len(member.Roles))
	for _, roleID := range member.Roles {
		roles = append(roles, fmt.Sprintf("<@&%s>", roleID))
	}
	roleList := "none"
	if len(roles) > 0 {
		roleList = strings.Join(roles, " ")
	}

	embed := &discordgo.MessageEmbed{
		Title:     target.Username,
		Color:     discord.EmbedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: target.ID, Inline: true},
			{Name: "Created", Value: timestamp(target.ID), Inline: true},
			{Name: "Joined", Value: fmt.Sprintf("<t:%d:R>", member.JoinedAt.Unix()), Inline: true},
			{Name: fmt.Sprintf("Roles (%d)", len(member.Roles)), Value: roleList},
		},
	}
	if member.Nick != "" {
		embed.Description = fmt.Sprintf("Also known as **%s**", member.Nick)
	}

	return ctx.Respond.Finalize(respond.Payload{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}

// timestamp renders a snowflake's creation time as a relative Discord tag.
func timestamp(snowflake string) string {
	ts, err := discordgo.SnowflakeTimestamp(snowflake)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("<t:%d:R>", ts.Unix())
}
