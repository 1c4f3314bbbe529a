package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
}

// Config holds all runtime settings. Required fields abort startup when missing.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	OwnerID      string `env:"OWNER_ID,required"`

	// GuildID scopes slash command deployment to a single guild. Empty means global.
	GuildID string `env:"GUILD_ID"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"data/datastore.json"`
	RemindersDB string `env:"REMINDERS_DB" envDefault:"data/reminders.db"`

	OpenAIKey string `env:"OPENAI_API_KEY"`

	ShortDomain   string `env:"SHORT_DOMAIN" envDefault:"https://mlvs.me"`
	ShortlinkAddr string `env:"SHORTLINK_ADDR" envDefault:":8787"`

	InitSlashCommands bool `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

// New parses the environment into a Config. Missing required variables are fatal.
func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[ERR] Invalid configuration: %v", err)
	}
	return cfg
}
