package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// Embed accent colors. EmbedColor is the default brand accent; the rest
// follow Discord's blurple/green/red/yellow palette.
const (
	EmbedColor   = 0x7C3AED
	InfoColor    = 0x5865F2
	SuccessColor = 0x57F287
	ErrorColor   = 0xED4245
	WarnColor    = 0xFEE75C
)

func InfoEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: InfoColor}
}

func SuccessEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: SuccessColor}
}

func ErrorEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Description: description, Color: ErrorColor}
}

func WarnEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Description: description, Color: WarnColor}
}

// Message sends a plain text message to a channel, logging failures.
func Message(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("[WARN] Error sending message to channel %s: %v", channelID, err)
	}
}

// MessageEmbed sends an embed to a channel, logging failures.
func MessageEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("[WARN] Error sending embed to channel %s: %v", channelID, err)
	}
}
