package admin

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

// AdminCommand is the owner's toolbox. The dispatcher's owner gate keeps it
// out of everyone else's reach even though the definition is visible.
type AdminCommand struct{}

func (c *AdminCommand) Name() string           { return "admin" }
func (c *AdminCommand) Description() string    { return "Owner-only bot management" }
func (c *AdminCommand) Category() string       { return "⚙️ Settings" }
func (c *AdminCommand) OwnerOnly() bool        { return true }
func (c *AdminCommand) AllowedRoles() []string { return []string{} }
func (c *AdminCommand) NeedsDefer() bool       { return false }

func (c *AdminCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show internal bot status",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "presence",
				Description: "Change the bot's activity text",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "text",
						Description: "The new activity text",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "guilds",
				Description: "List the guilds the bot is in",
			},
		},
	}
}

func (c *AdminCommand) Run(ctx *command.Context) error {
	data := ctx.Event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("no subcommand provided")
	}

	switch sub := data.Options[0]; sub.Name {
	case "status":
		return c.runStatus(ctx)
	case "presence":
		return c.runPresence(ctx, sub.Options[0].StringValue())
	case "guilds":
		return c.runGuilds(ctx)
	default:
		return fmt.Errorf("unknown subcommand '%s'", sub.Name)
	}
}

func (c *AdminCommand) runStatus(ctx *command.Context) error {
	pending, err := ctx.Reminders.Count()
	if err != nil {
		return err
	}

	runningJobs := "none"
	if names := ctx.Jobs.List(); len(names) > 0 {
		runningJobs = strings.Join(names, ", ")
	}

	embed := &discordgo.MessageEmbed{
		Title: "Bot Status",
		Color: discord.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Guilds", Value: fmt.Sprintf("%d", len(ctx.Session.State.Guilds)), Inline: true},
			{Name: "Commands", Value: fmt.Sprintf("%d", len(ctx.Registry.All())), Inline: true},
			{Name: "Pending reminders", Value: fmt.Sprintf("%d", pending), Inline: true},
			{Name: "Latency", Value: fmt.Sprintf("%dms", ctx.Session.HeartbeatLatency().Milliseconds()), Inline: true},
			{Name: "Translation", Value: fmt.Sprintf("%v", ctx.Translator.Available()), Inline: true},
			{Name: "Jobs", Value: runningJobs, Inline: true},
		},
	}
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Ephemeral: true,
	})
}

func (c *AdminCommand) runPresence(ctx *command.Context, text string) error {
	if err := ctx.Session.UpdateGameStatus(0, text); err != nil {
		return fmt.Errorf("error updating presence: %w", err)
	}
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{discord.SuccessEmbed("Presence updated", text)},
		Ephemeral: true,
	})
}

func (c *AdminCommand) runGuilds(ctx *command.Context) error {
	var lines strings.Builder
	for _, g := range ctx.Session.State.Guilds {
		lines.WriteString(fmt.Sprintf("**%s** `%s` (%d members)\n", g.Name, g.ID, g.MemberCount))
	}
	if lines.Len() == 0 {
		lines.WriteString("No guilds.")
	}

	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{discord.InfoEmbed("Guilds", lines.String())},
		Ephemeral: true,
	})
}
