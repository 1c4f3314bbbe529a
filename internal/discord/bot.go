package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fatih/color"

	"mlvsbot/internal/command"
	"mlvsbot/internal/config"
	"mlvsbot/internal/reminder"
	"mlvsbot/internal/shortlink"
	"mlvsbot/internal/storage"
	"mlvsbot/internal/translate"
	"mlvsbot/internal/version"
	"mlvsbot/pkg/jobs"
)

// Bot ties the Discord session to the command registry, the dispatcher, and
// the background services.
type Bot struct {
	session    *discordgo.Session
	cfg        *config.Config
	registry   *command.Registry
	store      *storage.Storage
	reminders  *reminder.Store
	translator *translate.Translator
	dispatcher *Dispatcher
	events     *EventRegistry
	jobs       *jobs.Manager
	startedAt  time.Time
}

func NewBot(
	cfg *config.Config,
	registry *command.Registry,
	store *storage.Storage,
	reminders *reminder.Store,
	translator *translate.Translator,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	b := &Bot{
		session:    session,
		cfg:        cfg,
		registry:   registry,
		store:      store,
		reminders:  reminders,
		translator: translator,
		events:     NewEventRegistry(),
		jobs:       jobs.NewManager(),
		startedAt:  time.Now(),
	}
	b.dispatcher = NewDispatcher(registry, cfg, store, reminders, translator, b.jobs, b.startedAt)

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b.events.Add(EventDefinition{Name: "ready", Once: true, Handler: b.onReady})
	b.events.Add(EventDefinition{Name: "interactionCreate", Handler: b.dispatcher.HandleInteraction})
	b.events.Add(EventDefinition{Name: "messageCreate", Handler: b.onMessageCreate})
	b.events.Add(EventDefinition{Name: "guildMemberAdd", Handler: b.onGuildMemberAdd})
	b.events.Add(EventDefinition{Name: "guildMemberRemove", Handler: b.onGuildMemberRemove})
	b.events.Add(EventDefinition{Name: "guildCreate", Handler: b.onGuildCreate})

	return b, nil
}

// Run opens the session and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.events.Attach(b)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord session: %w", err)
	}
	defer b.session.Close()

	if err := b.jobs.StartAsync(ctx, "reminder-scheduler", b.reminderJob()); err != nil {
		log.Printf("[ERR] Error starting reminder scheduler: %v", err)
	}
	if err := b.jobs.StartAsync(ctx, "shortlink-server", func(jctx context.Context) {
		shortlink.RunServer(jctx, b.store, b.cfg.ShortlinkAddr)
	}); err != nil {
		log.Printf("[ERR] Error starting shortlink server: %v", err)
	}

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	b.jobs.StopAll()
	return nil
}

func (b *Bot) reminderJob() jobs.Job {
	scheduler := reminder.NewScheduler(b.reminders, func(r reminder.Reminder) error {
		content := fmt.Sprintf("⏰ <@%s> Reminder: %s", r.UserID, r.Message)
		_, err := b.session.ChannelMessageSend(r.ChannelID, content)
		return err
	})
	return scheduler.Run
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	color.New(color.FgMagenta, color.Bold).Printf("%s %s\n", version.AppName, version.AppVersion)

	if err := s.UpdateGameStatus(0, "mlvs.me | /help"); err != nil {
		log.Printf("[WARN] Error setting presence: %v", err)
	}

	if !b.cfg.InitSlashCommands {
		log.Println("[INFO] Slash command registration skipped")
	} else if b.cfg.GuildID != "" {
		if err := b.registerGuild(b.cfg.GuildID); err != nil {
			log.Printf("[ERR] Error registering guild commands: %v", err)
		}
	} else {
		if err := b.registerGlobal(); err != nil {
			log.Printf("[ERR] Error registering global commands: %v", err)
		}
	}

	log.Printf("[INFO] Bot %s is running in %d guilds", r.User.Username, len(r.Guilds))
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Joined guild: %s (%s)", g.Name, g.ID)

	// Global commands propagate on their own; only the pinned guild needs
	// an explicit sync.
	if b.cfg.InitSlashCommands && b.cfg.GuildID == g.ID {
		if err := b.registerGuild(g.ID); err != nil {
			log.Printf("[ERR] Error registering commands for guild %s: %v", g.ID, err)
		}
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}

	// A message from an AFK user ends their AFK state.
	if record, ok, err := b.store.ClearAFK(m.Author.ID); err != nil {
		log.Printf("[WARN] Error clearing AFK state: %v", err)
	} else if ok {
		away := time.Since(record.Since()).Round(time.Second)
		Message(s, m.ChannelID, fmt.Sprintf("Welcome back, <@%s>! You were away for %s.", m.Author.ID, away))
	}

	for _, mentioned := range m.Mentions {
		record, ok, err := b.store.AFK(mentioned.ID)
		if err != nil || !ok {
			continue
		}

		reason := record.Message
		if reason == "" {
			reason = "no reason given"
		}
		Message(s, m.ChannelID, fmt.Sprintf("%s is AFK: %s (since <t:%d:R>)",
			mentioned.Username, reason, record.Since().Unix()))
	}
}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if roleID, err := b.store.GuildSetting(m.GuildID, storage.SettingUnverifiedRoleID); err == nil {
		if err := s.GuildMemberRoleAdd(m.GuildID, m.User.ID, roleID); err != nil {
			log.Printf("[WARN] Error assigning unverified role in guild %s: %v", m.GuildID, err)
		}
	}

	channelID, err := b.store.GuildSetting(m.GuildID, storage.SettingWelcomeChannelID)
	if err != nil {
		return
	}

	message, err := b.store.GuildSetting(m.GuildID, storage.SettingWelcomeMessage)
	if err != nil {
		message = "Welcome to {server}, {user}!"
	}

	MessageEmbed(s, channelID, &discordgo.MessageEmbed{
		Description: b.fillPlaceholders(s, m.GuildID, message, m.User.Mention()),
		Color:       SuccessColor,
	})
}

func (b *Bot) onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	channelID, err := b.store.GuildSetting(m.GuildID, storage.SettingWelcomeChannelID)
	if err != nil {
		return
	}

	message, err := b.store.GuildSetting(m.GuildID, storage.SettingGoodbyeMessage)
	if err != nil {
		return
	}

	// The member is gone, so a mention would not resolve; use the username.
	MessageEmbed(s, channelID, &discordgo.MessageEmbed{
		Description: b.fillPlaceholders(s, m.GuildID, message, m.User.Username),
		Color:       WarnColor,
	})
}

// fillPlaceholders substitutes {user} and {server} in greeting templates.
func (b *Bot) fillPlaceholders(s *discordgo.Session, guildID, template, userDisplay string) string {
	serverName := guildID
	if guild, err := s.State.Guild(guildID); err == nil {
		serverName = guild.Name
	} else if guild, err := s.Guild(guildID); err == nil {
		serverName = guild.Name
	}

	out := strings.ReplaceAll(template, "{user}", userDisplay)
	return strings.ReplaceAll(out, "{server}", serverName)
}
