package utility

import (
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
	"mlvsbot/internal/storage"
)

type ShortenCommand struct{}

func (c *ShortenCommand) Name() string           { return "shorten" }
func (c *ShortenCommand) Description() string    { return "Shorten a URL" }
func (c *ShortenCommand) Category() string       { return "📢 Utilities" }
func (c *ShortenCommand) OwnerOnly() bool        { return false }
func (c *ShortenCommand) AllowedRoles() []string { return []string{} }
func (c *ShortenCommand) NeedsDefer() bool       { return true }

func (c *ShortenCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "url",
				Description: "The URL to shorten",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "custom",
				Description: "Custom short code (3-20 letters and digits)",
			},
		},
	}
}

func (c *ShortenCommand) Run(ctx *command.Context) error {
	opts := ctx.Event.ApplicationCommandData().Options

	urlOpt, ok := command.Option(opts, "url")
	if !ok {
		return fmt.Errorf("missing url option")
	}

	raw := strings.TrimSpace(urlOpt.StringValue())
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		if looksLikeDomain(raw) {
			raw = "https://" + raw
		}
	}

	if !isValidURL(raw) {
		return c.warn(ctx, fmt.Sprintf(
			"`%s` doesn't look like a valid link. Try something like `https://example.com`.", raw,
		))
	}

	if custom, ok := command.Option(opts, "custom"); ok {
		code := custom.StringValue()
		if !codePattern.MatchString(code) {
			return c.warn(ctx, "Custom codes must be 3-20 letters and digits.")
		}

		link := storage.ShortLink{
			Code:      code,
			Original:  raw,
			UserID:    ctx.CallerID(),
			CreatedMs: time.Now().UnixMilli(),
		}
		if err := ctx.Storage.AddShortLink(link); err != nil {
			if errors.Is(err, storage.ErrCodeTaken) {
				return c.warn(ctx, fmt.Sprintf("The code `%s` is already taken.", code))
			}
			return err
		}
		return c.reply(ctx, &link, false)
	}

	// Same URL twice returns the existing code instead of minting a new one.
	if existing, found, err := ctx.Storage.FindByOriginal(raw); err == nil && found {
		return c.reply(ctx, existing, true)
	}

	link := storage.ShortLink{
		Code:      randomCode(6),
		Original:  raw,
		UserID:    ctx.CallerID(),
		CreatedMs: time.Now().UnixMilli(),
	}
	for attempt := 0; attempt < 5; attempt++ {
		err := ctx.Storage.AddShortLink(link)
		if err == nil {
			return c.reply(ctx, &link, false)
		}
		if !errors.Is(err, storage.ErrCodeTaken) {
			return err
		}
		link.Code = randomCode(6)
	}

	return fmt.Errorf("error allocating a free short code")
}

func (c *ShortenCommand) warn(ctx *command.Context, text string) error {
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{discord.WarnEmbed(text)},
		Ephemeral: true,
	})
}

func (c *ShortenCommand) reply(ctx *command.Context, link *storage.ShortLink, existing bool) error {
	title := "Short Link Created"
	if existing {
		title = "Short Link Already Exists"
	}

	embed := discord.SuccessEmbed(title, fmt.Sprintf(
		"**Original:** %s\n**Shortened:** %s/%s",
		link.Original, ctx.Config.ShortDomain, link.Code,
	))
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Ephemeral: true,
	})
}

var codePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)

func randomCode(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func looksLikeDomain(s string) bool {
	return strings.Contains(s, ".") && !strings.ContainsAny(s, " @")
}

var hostPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidURL(str string) bool {
	u, err := url.ParseRequestURI(str)
	if err != nil {
		return false
	}
	if u.Scheme == "" || u.Host == "" {
		return false
	}

	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return true
	}
	return hostPattern.MatchString(host)
}
