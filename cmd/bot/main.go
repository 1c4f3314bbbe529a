package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"mlvsbot/internal/command"
	"mlvsbot/internal/command/admin"
	"mlvsbot/internal/command/core"
	"mlvsbot/internal/command/info"
	"mlvsbot/internal/command/utility"
	"mlvsbot/internal/config"
	"mlvsbot/internal/discord"
	"mlvsbot/internal/reminder"
	"mlvsbot/internal/storage"
	"mlvsbot/internal/translate"
)

func main() {
	cfg := config.New()

	if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0o755); err != nil {
		log.Fatalf("[ERR] Error creating data directory: %v", err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatalf("[ERR] Error opening datastore: %v", err)
	}
	defer store.Close()

	reminders, err := reminder.Open(cfg.RemindersDB)
	if err != nil {
		log.Fatalf("[ERR] Error opening reminder database: %v", err)
	}
	defer reminders.Close()

	translator := translate.New(cfg.OpenAIKey)
	if !translator.Available() {
		log.Println("[INFO] OPENAI_API_KEY not set, /translate will be unavailable")
	}

	registry := command.NewRegistry()
	all := []command.Command{
		&core.PingCommand{},
		&core.HelpCommand{},
		&core.BotInfoCommand{},
		&core.UptimeCommand{},
		&info.UserInfoCommand{},
		&info.ServerInfoCommand{},
		&utility.RemindMeCommand{},
		&utility.AFKCommand{},
		&utility.ShortenCommand{},
		&utility.ColorCommand{},
		&utility.TranslateCommand{},
		&admin.ClearCommand{},
		&admin.AnnounceCommand{},
		&admin.SetWelcomeCommand{},
		&admin.VerifyCommand{},
		&admin.AdminCommand{},
	}
	for _, c := range all {
		if err := registry.Register(command.Apply(c, command.WithCommandLogger())); err != nil {
			log.Printf("[WARN] Skipping command: %v", err)
		}
	}

	bot, err := discord.NewBot(cfg, registry, store, reminders, translator)
	if err != nil {
		log.Fatalf("[ERR] Error creating bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		log.Fatalf("[ERR] Bot exited: %v", err)
	}
	log.Println("[INFO] Goodbye.")
}
