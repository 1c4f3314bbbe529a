// Package admin holds moderation and configuration commands.
package admin

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

var manageMessages int64 = discordgo.PermissionManageMessages

type ClearCommand struct{}

func (c *ClearCommand) Name() string           { return "clear" }
func (c *ClearCommand) Description() string    { return "Bulk delete recent messages in this channel" }
func (c *ClearCommand) Category() string       { return "⚙️ Settings" }
func (c *ClearCommand) OwnerOnly() bool        { return false }
func (c *ClearCommand) AllowedRoles() []string { return []string{} }
func (c *ClearCommand) NeedsDefer() bool       { return true }

func (c *ClearCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		Type:                     discordgo.ChatApplicationCommand,
		DefaultMemberPermissions: &manageMessages,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many messages to delete (1-100)",
				Required:    true,
				MinValue:    &minAmount,
				MaxValue:    100,
			},
		},
	}
}

var minAmount float64 = 1

func (c *ClearCommand) Run(ctx *command.Context) error {
	opt, ok := command.Option(ctx.Event.ApplicationCommandData().Options, "amount")
	if !ok {
		return fmt.Errorf("missing amount option")
	}
	amount := int(opt.IntValue())

	messages, err := ctx.Session.ChannelMessages(ctx.Event.ChannelID, amount, "", "", "")
	if err != nil {
		return fmt.Errorf("error listing messages: %w", err)
	}

	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if len(ids) > 0 {
		if err := ctx.Session.ChannelMessagesBulkDelete(ctx.Event.ChannelID, ids); err != nil {
			return fmt.Errorf("error deleting messages: %w", err)
		}
	}

	embed := discord.SuccessEmbed("Channel cleared", fmt.Sprintf("Deleted %d messages.", len(ids)))
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Ephemeral: true,
	})
}
