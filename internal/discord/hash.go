package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// definitionHash fingerprints a slash definition so unchanged commands can
// skip re-registration. Runtime-only fields (IDs, versions) are excluded and
// options are sorted so the hash is stable across restarts.
func definitionHash(def *discordgo.ApplicationCommand) string {
	data, _ := json.Marshal(canonicalDefinition(def))
	sum := sha1.Sum(data)
	return fmt.Sprintf("%x", sum)
}

func canonicalDefinition(def *discordgo.ApplicationCommand) map[string]any {
	obj := map[string]any{
		"name":        def.Name,
		"description": def.Description,
		"type":        def.Type,
	}
	if def.DefaultMemberPermissions != nil {
		obj["default_member_permissions"] = *def.DefaultMemberPermissions
	}
	if len(def.Options) > 0 {
		obj["options"] = canonicalOptions(def.Options)
	}
	return obj
}

func canonicalOptions(opts []*discordgo.ApplicationCommandOption) []map[string]any {
	out := make([]map[string]any, len(opts))
	for i, o := range opts {
		entry := map[string]any{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]any, len(o.Choices))
			for j, c := range o.Choices {
				choices[j] = map[string]any{"name": c.Name, "value": c.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = canonicalOptions(o.Options)
		}
		out[i] = entry
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i]["name"].(string) < out[j]["name"].(string)
	})
	return out
}
