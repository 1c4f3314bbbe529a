package admin

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/respond"
	"mlvsbot/internal/storage"
)

const verifyButtonID = "verify:button"

type VerifyCommand struct{}

func (c *VerifyCommand) Name() string           { return "verify" }
func (c *VerifyCommand) Description() string    { return "Set up member verification with a button" }
func (c *VerifyCommand) Category() string       { return "⚙️ Settings" }
func (c *VerifyCommand) OwnerOnly() bool        { return false }
func (c *VerifyCommand) AllowedRoles() []string { return []string{} }
func (c *VerifyCommand) NeedsDefer() bool       { return true }

func (c *VerifyCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		Type:                     discordgo.ChatApplicationCommand,
		DefaultMemberPermissions: &manageGuild,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "Role granted on verification",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "unverified",
				Description: "Role assigned to newcomers and removed on verification",
			},
		},
	}
}

// Run stores the role configuration and posts the verification prompt in the
// current channel.
func (c *VerifyCommand) Run(ctx *command.Context) error {
	opts := ctx.Event.ApplicationCommandData().Options

	roleOpt, ok := command.Option(opts, "role")
	if !ok {
		return fmt.Errorf("missing role option")
	}
	role := roleOpt.RoleValue(ctx.Session, ctx.GuildID())
	if err := ctx.Storage.SetGuildSetting(ctx.GuildID(), storage.SettingVerifyRoleID, role.ID); err != nil {
		return err
	}

	if opt, ok := command.Option(opts, "unverified"); ok {
		unverified := opt.RoleValue(ctx.Session, ctx.GuildID())
		if err := ctx.Storage.SetGuildSetting(ctx.GuildID(), storage.SettingUnverifiedRoleID, unverified.ID); err != nil {
			return err
		}
	}

	prompt := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			discord.InfoEmbed("Verification", "Press the button below to verify yourself and unlock the server."),
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Verify",
						Style:    discordgo.SuccessButton,
						CustomID: verifyButtonID,
					},
				},
			},
		},
	}
	if _, err := ctx.Session.ChannelMessageSendComplex(ctx.Event.ChannelID, prompt); err != nil {
		return fmt.Errorf("error posting verification prompt: %w", err)
	}

	confirm := discord.SuccessEmbed("Verification configured",
		fmt.Sprintf("Members who press the button receive <@&%s>.", role.ID))
	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{confirm},
		Ephemeral: true,
	})
}

// Component handles presses of the verification button.
func (c *VerifyCommand) Component(ctx *command.Context) error {
	roleID, err := ctx.Storage.GuildSetting(ctx.GuildID(), storage.SettingVerifyRoleID)
	if err != nil {
		return ctx.Respond.Finalize(respond.Payload{
			Embeds:    []*discordgo.MessageEmbed{discord.WarnEmbed("Verification is not configured on this server.")},
			Ephemeral: true,
		})
	}

	userID := ctx.CallerID()
	if err := ctx.Session.GuildMemberRoleAdd(ctx.GuildID(), userID, roleID); err != nil {
		return fmt.Errorf("error granting verified role: %w", err)
	}

	if unverifiedID, err := ctx.Storage.GuildSetting(ctx.GuildID(), storage.SettingUnverifiedRoleID); err == nil {
		if err := ctx.Session.GuildMemberRoleRemove(ctx.GuildID(), userID, unverifiedID); err != nil {
			log.Printf("[WARN] Error removing unverified role from %s: %v", userID, err)
		}
	}

	return ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{discord.SuccessEmbed("Verified", "You now have access to the server. Welcome!")},
		Ephemeral: true,
	})
}
