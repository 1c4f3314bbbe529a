package utility

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

type AFKCommand struct{}

func (c *AFKCommand) Name() string           { return "afk" }
func (c *AFKCommand) Description() string    { return "Mark yourself as away" }
func (c *AFKCommand) Category() string       { return "📢 Utilities" }
func (c *AFKCommand) OwnerOnly() bool        { return false }
func (c *AFKCommand) AllowedRoles() []string { return []string{} }
func (c *AFKCommand) NeedsDefer() bool       { return true }

func (c *AFKCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "Why you're away",
			},
		},
	}
}

func (c *AFKCommand) Run(ctx *command.Context) error {
	message := ""
	if opt, ok := command.Option(ctx.Event.ApplicationCommandData().Options, "message"); ok {
		message = opt.StringValue()
	}

	if err := ctx.Storage.SetAFK(ctx.CallerID(), message, time.Now()); err != nil {
		return fmt.Errorf("error saving AFK state: %w", err)
	}

	text := "You're now marked as AFK. I'll let people know when they mention you."
	if message != "" {
		text = fmt.Sprintf("You're now marked as AFK: %s", message)
	}
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{discord.SuccessEmbed("AFK", text)},
		Ephemeral: true,
	})
}
