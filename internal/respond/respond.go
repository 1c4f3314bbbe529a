// Package respond tracks the response lifecycle of a single Discord
// interaction. The gateway allows exactly one initial response (immediate or
// deferred) and one finalization; followups are only valid afterwards. The
// Channel type makes that ordering structural instead of relying on every
// handler to remember what has already been sent.
package respond

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// ErrInvalidState is returned when a call is not valid for the channel's
// current state, e.g. finalizing twice or deferring after a reply went out.
var ErrInvalidState = errors.New("invalid response channel state")

type State int

const (
	StateUnacknowledged State = iota
	StateDeferred
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateUnacknowledged:
		return "unacknowledged"
	case StateDeferred:
		return "deferred"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Payload is the outbound content of a finalize or followup.
type Payload struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// Transport performs the actual wire calls. Production code uses the
// session-backed implementation from NewForInteraction; tests inject fakes.
type Transport interface {
	Respond(resp *discordgo.InteractionResponse) error
	Edit(edit *discordgo.WebhookEdit) error
	Followup(params *discordgo.WebhookParams) error
}

// Channel is the response channel for one interaction. Safe for concurrent use.
type Channel struct {
	mu    sync.Mutex
	state State
	tr    Transport
}

// New returns an unacknowledged channel over the given transport.
func New(tr Transport) *Channel {
	return &Channel{tr: tr}
}

// NewForInteraction binds a channel to a live session/interaction pair.
func NewForInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) *Channel {
	return New(&sessionTransport{s: s, i: i})
}

// State returns the channel's current state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Acknowledge defers the interaction, buying time for slow handlers. Valid
// only while unacknowledged.
func (c *Channel) Acknowledge(ephemeral bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateUnacknowledged {
		return fmt.Errorf("%w: acknowledge while %s", ErrInvalidState, c.state)
	}

	var data *discordgo.InteractionResponseData
	if ephemeral {
		data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := c.tr.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	}); err != nil {
		return err
	}

	c.state = StateDeferred
	return nil
}

// Finalize sends the terminal user-visible response: a fresh reply when the
// channel is unacknowledged, an edit of the deferred message otherwise. A
// second finalize fails with ErrInvalidState.
func (c *Channel) Finalize(p Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateUnacknowledged:
		data := &discordgo.InteractionResponseData{
			Content:    p.Content,
			Embeds:     p.Embeds,
			Components: p.Components,
		}
		if p.Ephemeral {
			data.Flags = discordgo.MessageFlagsEphemeral
		}
		if err := c.tr.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		}); err != nil {
			return err
		}

	case StateDeferred:
		edit := &discordgo.WebhookEdit{}
		if p.Content != "" {
			edit.Content = &p.Content
		}
		if p.Embeds != nil {
			edit.Embeds = &p.Embeds
		}
		if p.Components != nil {
			edit.Components = &p.Components
		}
		if err := c.tr.Edit(edit); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: finalize while %s", ErrInvalidState, c.state)
	}

	c.state = StateFinalized
	return nil
}

// FinalizeAdditional sends a followup message. Valid only once finalized.
func (c *Channel) FinalizeAdditional(p Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFinalized {
		return fmt.Errorf("%w: followup while %s", ErrInvalidState, c.state)
	}

	params := &discordgo.WebhookParams{
		Content: p.Content,
		Embeds:  p.Embeds,
	}
	if p.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	return c.tr.Followup(params)
}

type sessionTransport struct {
	s *discordgo.Session
	i *discordgo.InteractionCreate
}

func (t *sessionTransport) Respond(resp *discordgo.InteractionResponse) error {
	return t.s.InteractionRespond(t.i.Interaction, resp)
}

func (t *sessionTransport) Edit(edit *discordgo.WebhookEdit) error {
	_, err := t.s.InteractionResponseEdit(t.i.Interaction, edit)
	return err
}

func (t *sessionTransport) Followup(params *discordgo.WebhookParams) error {
	_, err := t.s.FollowupMessageCreate(t.i.Interaction, true, params)
	return err
}
