package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"mlvsbot/internal/command"
)

// registerLimiter throttles per-command registration calls against Discord's
// application command rate limits.
var registerLimiter = rate.NewLimiter(rate.Limit(2), 2)

// slashDefinitions collects the definitions of all registered commands.
// Commands without a definition (component-only helpers) are skipped.
func slashDefinitions(registry *command.Registry) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, cmd := range registry.All() {
		provider, ok := command.AsSlash(cmd)
		if !ok {
			continue
		}
		def := provider.SlashDefinition()
		if def == nil {
			continue
		}
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		defs = append(defs, def)
	}
	return defs
}

// registerGlobal replaces the application's global command set in one call.
func (b *Bot) registerGlobal() error {
	defs := slashDefinitions(b.registry)
	_, err := b.session.ApplicationCommandBulkOverwrite(b.appID(), "", defs)
	if err != nil {
		return err
	}

	log.Printf("[INFO] Registered %d global slash commands", len(defs))
	return nil
}

// registerGuild syncs commands for one guild incrementally: deletes obsolete
// commands, then creates or updates only those whose definition hash changed.
func (b *Bot) registerGuild(guildID string) error {
	appID := b.appID()
	defs := slashDefinitions(b.registry)

	wantedHashes := make(map[string]string, len(defs))
	for _, def := range defs {
		wantedHashes[def.Name] = definitionHash(def)
	}

	localHashes := loadGuildCommandHashes(guildID)

	existing, err := b.session.ApplicationCommands(appID, guildID)
	if err != nil {
		log.Printf("[WARN] Error listing commands for guild %s: %v", guildID, err)
	}
	for _, old := range existing {
		if _, wanted := wantedHashes[old.Name]; wanted {
			continue
		}
		log.Printf("[INFO] [%s] Deleting obsolete command '%s'", guildID, old.Name)
		if err := b.session.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			log.Printf("[ERR] [%s] Error deleting '%s': %v", guildID, old.Name, err)
		}
		delete(localHashes, old.Name)
	}

	ctx := context.Background()
	changed := 0
	for _, def := range defs {
		if localHashes[def.Name] == wantedHashes[def.Name] {
			continue
		}

		if err := registerLimiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := b.session.ApplicationCommandCreate(appID, guildID, def); err != nil {
			log.Printf("[ERR] [%s] Error registering '%s': %v", guildID, def.Name, err)
			continue
		}

		localHashes[def.Name] = wantedHashes[def.Name]
		changed++
	}

	saveGuildCommandHashes(guildID, localHashes)
	if changed > 0 {
		log.Printf("[INFO] [%s] Registered %d changed slash commands", guildID, changed)
	} else {
		log.Printf("[INFO] [%s] Slash commands already up to date", guildID)
	}
	return nil
}

func (b *Bot) appID() string {
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}

	user, err := b.session.User("@me")
	if err != nil {
		log.Printf("[ERR] Error fetching bot user: %v", err)
		return ""
	}
	return user.ID
}
