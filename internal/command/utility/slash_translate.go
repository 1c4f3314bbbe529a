package utility

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
	"mlvsbot/internal/translate"
)

type TranslateCommand struct{}

func (c *TranslateCommand) Name() string           { return "translate" }
func (c *TranslateCommand) Description() string    { return "Translate text into another language" }
func (c *TranslateCommand) Category() string       { return "📢 Utilities" }
func (c *TranslateCommand) OwnerOnly() bool        { return false }
func (c *TranslateCommand) AllowedRoles() []string { return []string{} }
func (c *TranslateCommand) NeedsDefer() bool       { return true }

func (c *TranslateCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "The text to translate",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "language",
				Description: "Target language, e.g. English, Spanish, Japanese",
				Required:    true,
			},
		},
	}
}

func (c *TranslateCommand) Run(ctx *command.Context) error {
	opts := ctx.Event.ApplicationCommandData().Options

	textOpt, _ := command.Option(opts, "text")
	langOpt, _ := command.Option(opts, "language")
	if textOpt == nil || langOpt == nil {
		return fmt.Errorf("missing required options")
	}

	translated, err := ctx.Translator.Translate(context.Background(), textOpt.StringValue(), langOpt.StringValue())
	if errors.Is(err, translate.ErrUnavailable) {
		return ctx.Respond.Finalize(respond.Payload{
			Embeds:    []*discordgo.MessageEmbed{discord.WarnEmbed("Translation is not configured on this bot.")},
			Ephemeral: true,
		})
	}
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Color: discord.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Original", Value: textOpt.StringValue()},
			{Name: langOpt.StringValue(), Value: translated},
		},
	}
	return ctx.Respond.Finalize(respond.Payload{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}
