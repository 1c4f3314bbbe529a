package discord

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// The per-guild hash cache remembers what was last registered so restarts
// only touch commands whose definitions actually changed.

func guildCachePath(guildID string) string {
	return filepath.Join("data", "commands", guildID+".json")
}

func loadGuildCommandHashes(guildID string) map[string]string {
	hashes := make(map[string]string)

	file, err := os.ReadFile(guildCachePath(guildID))
	if err == nil {
		if err := json.Unmarshal(file, &hashes); err != nil {
			log.Printf("[WARN] Ignoring corrupt command cache for guild %s: %v", guildID, err)
			return make(map[string]string)
		}
	}
	return hashes
}

func saveGuildCommandHashes(guildID string, hashes map[string]string) {
	path := guildCachePath(guildID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("[WARN] Error creating command cache directory: %v", err)
		return
	}

	data, _ := json.MarshalIndent(hashes, "", "  ")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("[WARN] Error writing command cache for guild %s: %v", guildID, err)
	}
}
