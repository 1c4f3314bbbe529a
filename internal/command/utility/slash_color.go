package utility

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/colorutil"
	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
)

type ColorCommand struct{}

func (c *ColorCommand) Name() string           { return "color" }
func (c *ColorCommand) Description() string    { return "Inspect colors and build palettes" }
func (c *ColorCommand) Category() string       { return "📢 Utilities" }
func (c *ColorCommand) OwnerOnly() bool        { return false }
func (c *ColorCommand) AllowedRoles() []string { return []string{} }
func (c *ColorCommand) NeedsDefer() bool       { return false }

func (c *ColorCommand) SlashDefinition() *discordgo.ApplicationCommand {
	valueOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "value",
		Description: "Hex (#7C3AED), rgb(124, 58, 237), or a name",
		Required:    true,
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "info",
				Description: "Show a color's RGB, HSL and HSV values",
				Options:     []*discordgo.ApplicationCommandOption{valueOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "palette",
				Description: "Build harmony palettes from a color",
				Options:     []*discordgo.ApplicationCommandOption{valueOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "random",
				Description: "Roll a random color",
			},
		},
	}
}

func (c *ColorCommand) Run(ctx *command.Context) error {
	data := ctx.Event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("no subcommand provided")
	}

	sub := data.Options[0]
	switch sub.Name {
	case "info":
		rgb, err := colorutil.Parse(sub.Options[0].StringValue())
		if err != nil {
			return c.warn(ctx, err.Error())
		}
		return c.sendInfo(ctx, rgb)

	case "palette":
		rgb, err := colorutil.Parse(sub.Options[0].StringValue())
		if err != nil {
			return c.warn(ctx, err.Error())
		}
		return c.sendPalette(ctx, rgb)

	case "random":
		return c.sendInfo(ctx, colorutil.Random())

	default:
		return fmt.Errorf("unknown subcommand '%s'", sub.Name)
	}
}

func (c *ColorCommand) warn(ctx *command.Context, text string) error {
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{discord.WarnEmbed(text)},
		Ephemeral: true,
	})
}

func (c *ColorCommand) sendInfo(ctx *command.Context, rgb colorutil.RGB) error {
	h, s, l := rgb.HSL()
	_, sv, v := rgb.HSV()

	embed := &discordgo.MessageEmbed{
		Title: rgb.Hex(),
		Color: rgb.Int(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "RGB", Value: fmt.Sprintf("%d, %d, %d", rgb.R, rgb.G, rgb.B), Inline: true},
			{Name: "HSL", Value: fmt.Sprintf("%.0f°, %.0f%%, %.0f%%", h, s*100, l*100), Inline: true},
			{Name: "HSV", Value: fmt.Sprintf("%.0f°, %.0f%%, %.0f%%", h, sv*100, v*100), Inline: true},
		},
	}
	return ctx.Respond.Finalize(respond.Payload{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}

func (c *ColorCommand) sendPalette(ctx *command.Context, rgb colorutil.RGB) error {
	analogous := rgb.Analogous()
	triadic := rgb.Triadic()
	tetradic := rgb.Tetradic()

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Palettes for %s", rgb.Hex()),
		Color: rgb.Int(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Complementary", Value: rgb.Complementary().Hex(), Inline: true},
			{Name: "Analogous", Value: fmt.Sprintf("%s %s", analogous[0].Hex(), analogous[1].Hex()), Inline: true},
			{Name: "Triadic", Value: fmt.Sprintf("%s %s", triadic[0].Hex(), triadic[1].Hex()), Inline: true},
			{Name: "Tetradic", Value: fmt.Sprintf("%s %s %s", tetradic[0].Hex(), tetradic[1].Hex(), tetradic[2].Hex()), Inline: true},
			{Name: "Shades", Value: monoList(rgb), Inline: false},
		},
	}
	return ctx.Respond.Finalize(respond.Payload{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}

func monoList(rgb colorutil.RGB) string {
	shades := rgb.Monochromatic(5)
	parts := make([]string, len(shades))
	for i, shade := range shades {
		parts[i] = shade.Hex()
	}
	return strings.Join(parts, " ")
}
