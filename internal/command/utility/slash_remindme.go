package utility

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

type RemindMeCommand struct{}

func (c *RemindMeCommand) Name() string           { return "remindme" }
func (c *RemindMeCommand) Description() string    { return "Get a reminder in this channel later" }
func (c *RemindMeCommand) Category() string       { return "📢 Utilities" }
func (c *RemindMeCommand) OwnerOnly() bool        { return false }
func (c *RemindMeCommand) AllowedRoles() []string { return []string{} }
func (c *RemindMeCommand) NeedsDefer() bool       { return true }

func (c *RemindMeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "when",
				Description: "When to remind, e.g. 10m, 2h, or \"tomorrow at 9am\"",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "What to remind you about",
				Required:    true,
			},
		},
	}
}

func (c *RemindMeCommand) Run(ctx *command.Context) error {
	opts := ctx.Event.ApplicationCommandData().Options

	whenOpt, _ := command.Option(opts, "when")
	messageOpt, _ := command.Option(opts, "message")
	if whenOpt == nil || messageOpt == nil {
		return fmt.Errorf("missing required options")
	}

	dueAt, err := parseWhen(whenOpt.StringValue(), time.Now())
	if err != nil {
		return ctx.Respond.Finalize(respond.Payload{
			Embeds:    []*discordgo.MessageEmbed{discord.WarnEmbed(err.Error())},
			Ephemeral: true,
		})
	}

	r, err := ctx.Reminders.Add(ctx.CallerID(), ctx.Event.ChannelID, messageOpt.StringValue(), dueAt)
	if err != nil {
		return fmt.Errorf("error saving reminder: %w", err)
	}

	embed := discord.SuccessEmbed("Reminder set", fmt.Sprintf(
		"I'll remind you <t:%d:R>: %s\n`ID:` `%d`",
		dueAt.Unix(), r.Message, r.ID,
	))
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Ephemeral: true,
	})
}
