package core

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string           { return "help" }
func (c *HelpCommand) Description() string    { return "List all available commands" }
func (c *HelpCommand) Category() string       { return "🕯️ Information" }
func (c *HelpCommand) OwnerOnly() bool        { return false }
func (c *HelpCommand) AllowedRoles() []string { return []string{} }
func (c *HelpCommand) NeedsDefer() bool       { return false }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *HelpCommand) Run(ctx *command.Context) error {
	byCategory := map[string][]command.Command{}
	var categories []string

	for _, cmd := range ctx.Registry.All() {
		if cmd.OwnerOnly() {
			continue
		}
		if _, seen := byCategory[cmd.Category()]; !seen {
			categories = append(categories, cmd.Category())
		}
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Commands",
		Color: discord.EmbedColor,
	}
	for _, category := range categories {
		var lines strings.Builder
		for _, cmd := range byCategory[category] {
			lines.WriteString(fmt.Sprintf("`/%s` %s\n", cmd.Name(), cmd.Description()))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  category,
			Value: lines.String(),
		})
	}

	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Ephemeral: true,
	})
}
