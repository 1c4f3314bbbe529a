package discord

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/config"
	"mlvsbot/internal/reminder"
	"mlvsbot/internal/respond"
	"mlvsbot/internal/storage"
	"mlvsbot/internal/translate"
	"mlvsbot/pkg/jobs"
)

const (
	ownerDenialMessage = "This command is only available to the bot owner."
	roleDenialMessage  = "You do not have the required role to use this command."
	notFoundMessage    = "Unknown command. It may have been removed or renamed."
	failureMessage     = "Something went wrong while running this command."
	defaultDoneMessage = "Done."
)

// handlerTimeout bounds a single command run. Discord edits on the deferred
// message stay valid well past this window.
const handlerTimeout = 2 * time.Minute

// Dispatcher routes interactions to registered commands: resolve, gate,
// defer when the command asks for it, run, and guarantee exactly one
// user-visible outcome per invocation.
type Dispatcher struct {
	registry   *command.Registry
	cfg        *config.Config
	store      *storage.Storage
	reminders  *reminder.Store
	translator *translate.Translator
	jobs       *jobs.Manager
	startedAt  time.Time
	timeout    time.Duration

	// newChannel builds the response channel per interaction. Tests swap in
	// a fake transport here.
	newChannel func(s *discordgo.Session, i *discordgo.InteractionCreate) *respond.Channel
}

func NewDispatcher(
	registry *command.Registry,
	cfg *config.Config,
	store *storage.Storage,
	reminders *reminder.Store,
	translator *translate.Translator,
	manager *jobs.Manager,
	startedAt time.Time,
) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		cfg:        cfg,
		store:      store,
		reminders:  reminders,
		translator: translator,
		jobs:       manager,
		startedAt:  startedAt,
		timeout:    handlerTimeout,
		newChannel: respond.NewForInteraction,
	}
}

// HandleInteraction is the session's InteractionCreate handler.
func (d *Dispatcher) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		d.dispatchSlash(s, i)
	case discordgo.InteractionMessageComponent:
		d.dispatchComponent(s, i)
	}
}

func (d *Dispatcher) newContext(s *discordgo.Session, i *discordgo.InteractionCreate) *command.Context {
	return &command.Context{
		Session:    s,
		Event:      i,
		Registry:   d.registry,
		Storage:    d.store,
		Reminders:  d.reminders,
		Translator: d.translator,
		Config:     d.cfg,
		Jobs:       d.jobs,
		StartedAt:  d.startedAt,
		Respond:    d.newChannel(s, i),
	}
}

func (d *Dispatcher) dispatchSlash(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := d.newContext(s, i)
	name := i.ApplicationCommandData().Name

	cmd, ok := d.registry.Lookup(name)
	if !ok {
		log.Printf("[WARN] Received unknown slash command '%s'", name)
		d.finalizeEmbed(ctx, ErrorEmbed(notFoundMessage))
		return
	}

	d.dispatch(cmd, ctx)
}

func (d *Dispatcher) dispatch(cmd command.Command, ctx *command.Context) {
	if !command.CheckOwner(cmd, ctx.CallerID(), d.cfg.OwnerID) {
		d.finalizeEmbed(ctx, WarnEmbed(ownerDenialMessage))
		return
	}
	if !command.CheckRoles(cmd, callerRoles(ctx.Event)) {
		d.finalizeEmbed(ctx, WarnEmbed(roleDenialMessage))
		return
	}

	if cmd.NeedsDefer() {
		if err := ctx.Respond.Acknowledge(true); err != nil {
			log.Printf("[WARN] Error deferring command '%s': %v", cmd.Name(), err)
		}
	}

	err := d.runWithTimeout(cmd, ctx)
	if err != nil {
		log.Printf("[ERR] Command '%s' failed: %v", cmd.Name(), err)
		if ctx.Respond.State() != respond.StateFinalized {
			d.finalizeEmbed(ctx, ErrorEmbed(failureMessage))
		}
		return
	}

	// A handler that never finalized still owes the user a response.
	if ctx.Respond.State() != respond.StateFinalized {
		if ferr := ctx.Respond.Finalize(respond.Payload{Content: defaultDoneMessage, Ephemeral: true}); ferr != nil {
			log.Printf("[WARN] Error sending default response for '%s': %v", cmd.Name(), ferr)
		}
	}
}

func (d *Dispatcher) runWithTimeout(cmd command.Command, ctx *command.Context) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic in command handler: %v", r)
			}
		}()
		done <- cmd.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(d.timeout):
		return fmt.Errorf("command '%s' timed out after %s", cmd.Name(), d.timeout)
	}
}

func (d *Dispatcher) dispatchComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := d.newContext(s, i)
	customID := i.MessageComponentData().CustomID

	for _, cmd := range d.registry.All() {
		if !strings.HasPrefix(customID, cmd.Name()+":") {
			continue
		}
		handler, ok := command.AsComponent(cmd)
		if !ok {
			continue
		}

		// Component handlers follow the same deferral policy as slash runs.
		if cmd.NeedsDefer() {
			if err := ctx.Respond.Acknowledge(true); err != nil {
				log.Printf("[WARN] Error deferring component '%s': %v", customID, err)
			}
		}

		if err := handler.Component(ctx); err != nil {
			log.Printf("[ERR] Component '%s' failed: %v", customID, err)
			if ctx.Respond.State() != respond.StateFinalized {
				d.finalizeEmbed(ctx, ErrorEmbed(failureMessage))
			}
		}
		return
	}

	log.Printf("[WARN] No handler for component '%s'", customID)
}

func (d *Dispatcher) finalizeEmbed(ctx *command.Context, embed *discordgo.MessageEmbed) {
	err := ctx.Respond.Finalize(respond.Payload{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Ephemeral: true,
	})
	if err != nil {
		log.Printf("[WARN] Error sending response: %v", err)
	}
}

// callerRoles resolves the invoking member's roles. Nil means roles could
// not be resolved (e.g. a DM invocation) and the role gate denies.
func callerRoles(i *discordgo.InteractionCreate) []string {
	if i.Member == nil {
		return nil
	}
	if i.Member.Roles == nil {
		return []string{}
	}
	return i.Member.Roles
}
