package admin

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

var manageGuild int64 = discordgo.PermissionManageGuild

type AnnounceCommand struct{}

func (c *AnnounceCommand) Name() string           { return "announce" }
func (c *AnnounceCommand) Description() string    { return "Post an announcement embed to a channel" }
func (c *AnnounceCommand) Category() string       { return "⚙️ Settings" }
func (c *AnnounceCommand) OwnerOnly() bool        { return false }
func (c *AnnounceCommand) AllowedRoles() []string { return []string{} }
func (c *AnnounceCommand) NeedsDefer() bool       { return true }

func (c *AnnounceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		Type:                     discordgo.ChatApplicationCommand,
		DefaultMemberPermissions: &manageGuild,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Where to post",
				Required:    true,
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
					discordgo.ChannelTypeGuildNews,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "The announcement text",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "title",
				Description: "Optional embed title",
			},
		},
	}
}

func (c *AnnounceCommand) Run(ctx *command.Context) error {
	opts := ctx.Event.ApplicationCommandData().Options

	channelOpt, _ := command.Option(opts, "channel")
	messageOpt, _ := command.Option(opts, "message")
	if channelOpt == nil || messageOpt == nil {
		return fmt.Errorf("missing required options")
	}

	title := "Announcement"
	if opt, ok := command.Option(opts, "title"); ok {
		title = opt.StringValue()
	}

	channel := channelOpt.ChannelValue(ctx.Session)
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: messageOpt.StringValue(),
		Color:       discord.EmbedColor,
	}
	if _, err := ctx.Session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		return fmt.Errorf("error posting announcement: %w", err)
	}

	confirm := discord.SuccessEmbed("Announcement posted", fmt.Sprintf("Sent to <#%s>.", channel.ID))
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{confirm},
		Ephemeral: true,
	})
}
