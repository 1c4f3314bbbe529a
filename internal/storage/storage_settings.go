package storage

import "fmt"

// Guild setting keys used by the bot. Settings are free-form key/value rows
// per guild; these constants just name the ones the bot reads.
const (
	SettingWelcomeChannelID = "welcome_channel_id"
	SettingWelcomeMessage   = "welcome_message"
	SettingGoodbyeMessage   = "goodbye_message"
	SettingVerifyRoleID     = "verify_role_id"
	SettingUnverifiedRoleID = "unverified_role_id"
)

func guildKey(guildID string) string {
	return "guild:" + guildID
}

func (s *Storage) guildSettings(guildID string) (map[string]string, error) {
	data, exists := s.ds.Get(guildKey(guildID))
	if !exists {
		return map[string]string{}, nil
	}

	settings := map[string]string{}
	if err := decode(data, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetGuildSetting stores a single key/value setting for a guild.
func (s *Storage) SetGuildSetting(guildID, key, value string) error {
	settings, err := s.guildSettings(guildID)
	if err != nil {
		return err
	}

	settings[key] = value
	s.ds.Add(guildKey(guildID), settings)
	return nil
}

// GuildSetting returns the value for key, or ErrNotFound when unset.
func (s *Storage) GuildSetting(guildID, key string) (string, error) {
	settings, err := s.guildSettings(guildID)
	if err != nil {
		return "", err
	}

	value, ok := settings[key]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: setting '%s' for guild %s", ErrNotFound, key, guildID)
	}
	return value, nil
}

// DeleteGuildSetting removes a single setting for a guild.
func (s *Storage) DeleteGuildSetting(guildID, key string) error {
	settings, err := s.guildSettings(guildID)
	if err != nil {
		return err
	}

	delete(settings, key)
	s.ds.Add(guildKey(guildID), settings)
	return nil
}
