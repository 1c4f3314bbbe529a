package admin

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
	"mlvsbot/internal/storage"
)

type SetWelcomeCommand struct{}

func (c *SetWelcomeCommand) Name() string           { return "setwelcome" }
func (c *SetWelcomeCommand) Description() string    { return "Configure welcome and goodbye messages" }
func (c *SetWelcomeCommand) Category() string       { return "⚙️ Settings" }
func (c *SetWelcomeCommand) OwnerOnly() bool        { return false }
func (c *SetWelcomeCommand) AllowedRoles() []string { return []string{} }
func (c *SetWelcomeCommand) NeedsDefer() bool       { return true }

func (c *SetWelcomeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		Type:                     discordgo.ChatApplicationCommand,
		DefaultMemberPermissions: &manageGuild,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "channel",
				Description: "Set the channel greetings are posted in",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "The greetings channel",
						Required:    true,
						ChannelTypes: []discordgo.ChannelType{
							discordgo.ChannelTypeGuildText,
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "message",
				Description: "Set the welcome template ({user} and {server} are filled in)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "template",
						Description: "e.g. Welcome to {server}, {user}!",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "goodbye",
				Description: "Set the goodbye template ({user} and {server} are filled in)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "template",
						Description: "e.g. {user} left {server}.",
						Required:    true,
					},
				},
			},
		},
	}
}

func (c *SetWelcomeCommand) Run(ctx *command.Context) error {
	data := ctx.Event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("no subcommand provided")
	}

	sub := data.Options[0]
	var confirmation string

	switch sub.Name {
	case "channel":
		channel := sub.Options[0].ChannelValue(ctx.Session)
		if err := ctx.Storage.SetGuildSetting(ctx.GuildID(), storage.SettingWelcomeChannelID, channel.ID); err != nil {
			return err
		}
		confirmation = fmt.Sprintf("Greetings will be posted in <#%s>.", channel.ID)

	case "message":
		template := sub.Options[0].StringValue()
		if err := ctx.Storage.SetGuildSetting(ctx.GuildID(), storage.SettingWelcomeMessage, template); err != nil {
			return err
		}
		confirmation = fmt.Sprintf("Welcome template saved:\n> %s", template)

	case "goodbye":
		template := sub.Options[0].StringValue()
		if err := ctx.Storage.SetGuildSetting(ctx.GuildID(), storage.SettingGoodbyeMessage, template); err != nil {
			return err
		}
		confirmation = fmt.Sprintf("Goodbye template saved:\n> %s", template)

	default:
		return fmt.Errorf("unknown subcommand '%s'", sub.Name)
	}

	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{discord.SuccessEmbed("Settings updated", confirmation)},
		Ephemeral: true,
	})
}
