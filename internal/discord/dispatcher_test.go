package discord

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"mlvsbot/internal/command"
	"mlvsbot/internal/config"
	"mlvsbot/internal/respond"
)

type fakeTransport struct {
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	followups []*discordgo.WebhookParams
}

func (f *fakeTransport) Respond(resp *discordgo.InteractionResponse) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeTransport) Edit(edit *discordgo.WebhookEdit) error {
	f.edits = append(f.edits, edit)
	return nil
}

func (f *fakeTransport) Followup(params *discordgo.WebhookParams) error {
	f.followups = append(f.followups, params)
	return nil
}

type testCommand struct {
	name       string
	ownerOnly  bool
	roles      []string
	needsDefer bool
	run        func(ctx *command.Context) error
}

func (c *testCommand) Name() string           { return c.name }
func (c *testCommand) Description() string    { return "test" }
func (c *testCommand) Category() string       { return "test" }
func (c *testCommand) OwnerOnly() bool        { return c.ownerOnly }
func (c *testCommand) AllowedRoles() []string { return c.roles }
func (c *testCommand) NeedsDefer() bool       { return c.needsDefer }
func (c *testCommand) Run(ctx *command.Context) error {
	if c.run != nil {
		return c.run(ctx)
	}
	return nil
}

func slashInteraction(name, userID string, roles []string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: name},
			Member: &discordgo.Member{
				User:  &discordgo.User{ID: userID},
				Roles: roles,
			},
			GuildID: "g1",
		},
	}
}

func newTestDispatcher(t *testing.T, cmds ...command.Command) (*Dispatcher, *fakeTransport) {
	t.Helper()

	registry := command.NewRegistry()
	for _, c := range cmds {
		if err := registry.Register(c); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	tr := &fakeTransport{}
	d := NewDispatcher(registry, &config.Config{OwnerID: "owner"}, nil, nil, nil, nil, time.Now())
	d.newChannel = func(s *discordgo.Session, i *discordgo.InteractionCreate) *respond.Channel {
		return respond.New(tr)
	}
	return d, tr
}

func embedText(resp *discordgo.InteractionResponse) string {
	if resp.Data == nil || len(resp.Data.Embeds) == 0 {
		return ""
	}
	return resp.Data.Embeds[0].Description
}

func TestDispatchUnknownCommand(t *testing.T) {
	d, tr := newTestDispatcher(t)

	d.HandleInteraction(nil, slashInteraction("nope", "u1", []string{}))

	if len(tr.responses) != 1 {
		t.Fatalf("responses = %d", len(tr.responses))
	}
	if embedText(tr.responses[0]) != notFoundMessage {
		t.Errorf("message = %q", embedText(tr.responses[0]))
	}
	if tr.responses[0].Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("not-found response is not ephemeral")
	}
}

func TestDispatchOwnerGate(t *testing.T) {
	ran := false
	cmd := &testCommand{name: "admin", ownerOnly: true, run: func(ctx *command.Context) error {
		ran = true
		return ctx.Respond.Finalize(respond.Payload{Content: "ok"})
	}}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, slashInteraction("admin", "intruder", []string{}))
	if ran {
		t.Fatal("handler ran for non-owner")
	}
	if embedText(tr.responses[0]) != ownerDenialMessage {
		t.Errorf("message = %q", embedText(tr.responses[0]))
	}

	d.HandleInteraction(nil, slashInteraction("admin", "owner", []string{}))
	if !ran {
		t.Fatal("handler did not run for owner")
	}
}

func TestDispatchRoleGate(t *testing.T) {
	ran := false
	cmd := &testCommand{name: "mod", roles: []string{"r1"}, run: func(ctx *command.Context) error {
		ran = true
		return ctx.Respond.Finalize(respond.Payload{Content: "ok"})
	}}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, slashInteraction("mod", "u1", []string{"r9"}))
	if ran {
		t.Fatal("handler ran without an allowed role")
	}
	if embedText(tr.responses[0]) != roleDenialMessage {
		t.Errorf("message = %q", embedText(tr.responses[0]))
	}

	d.HandleInteraction(nil, slashInteraction("mod", "u1", []string{"r1", "r9"}))
	if !ran {
		t.Fatal("handler did not run with an allowed role")
	}
}

func TestDispatchUnresolvedRolesDeny(t *testing.T) {
	ran := false
	cmd := &testCommand{name: "ping", run: func(ctx *command.Context) error {
		ran = true
		return ctx.Respond.Finalize(respond.Payload{Content: "pong"})
	}}
	d, tr := newTestDispatcher(t, cmd)

	// DM invocation: no member, so roles cannot be resolved.
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: "ping"},
			User: &discordgo.User{ID: "u1"},
		},
	}
	d.HandleInteraction(nil, i)

	if ran {
		t.Fatal("handler ran with unresolved roles")
	}
	if embedText(tr.responses[0]) != roleDenialMessage {
		t.Errorf("message = %q", embedText(tr.responses[0]))
	}
}

func TestDispatchDefersWhenRequested(t *testing.T) {
	cmd := &testCommand{name: "slow", needsDefer: true, run: func(ctx *command.Context) error {
		if ctx.Respond.State() != respond.StateDeferred {
			t.Errorf("handler state = %s, want deferred", ctx.Respond.State())
		}
		return ctx.Respond.Finalize(respond.Payload{Content: "finished"})
	}}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, slashInteraction("slow", "u1", []string{}))

	if len(tr.responses) != 1 {
		t.Fatalf("responses = %d", len(tr.responses))
	}
	if tr.responses[0].Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Errorf("type = %v", tr.responses[0].Type)
	}
	if tr.responses[0].Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("deferral is not ephemeral")
	}
	if len(tr.edits) != 1 || *tr.edits[0].Content != "finished" {
		t.Fatalf("edits = %+v", tr.edits)
	}
}

func TestDispatchHandlerErrorSingleFailureMessage(t *testing.T) {
	cmd := &testCommand{name: "broken", run: func(ctx *command.Context) error {
		return errors.New("boom")
	}}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, slashInteraction("broken", "u1", []string{}))

	if len(tr.responses) != 1 {
		t.Fatalf("responses = %d", len(tr.responses))
	}
	if embedText(tr.responses[0]) != failureMessage {
		t.Errorf("message = %q", embedText(tr.responses[0]))
	}
}

func TestDispatchHandlerErrorAfterDeferEditsFailure(t *testing.T) {
	cmd := &testCommand{name: "broken", needsDefer: true, run: func(ctx *command.Context) error {
		return errors.New("boom")
	}}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, slashInteraction("broken", "u1", []string{}))

	// The failure replaces the deferred placeholder instead of adding a
	// second message.
	if len(tr.responses) != 1 || len(tr.edits) != 1 {
		t.Fatalf("responses = %d, edits = %d", len(tr.responses), len(tr.edits))
	}
	if (*tr.edits[0].Embeds)[0].Description != failureMessage {
		t.Errorf("edit = %+v", tr.edits[0])
	}
}

func TestDispatchHandlerErrorAfterFinalizeSendsNothing(t *testing.T) {
	cmd := &testCommand{name: "half", run: func(ctx *command.Context) error {
		if err := ctx.Respond.Finalize(respond.Payload{Content: "partial"}); err != nil {
			return err
		}
		return errors.New("late failure")
	}}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, slashInteraction("half", "u1", []string{}))

	if len(tr.responses) != 1 || len(tr.edits) != 0 || len(tr.followups) != 0 {
		t.Fatalf("extra sends after finalized failure: %d/%d/%d",
			len(tr.responses), len(tr.edits), len(tr.followups))
	}
	if tr.responses[0].Data.Content != "partial" {
		t.Errorf("content = %q", tr.responses[0].Data.Content)
	}
}

func TestDispatchSilentSuccessGetsDefault(t *testing.T) {
	cmd := &testCommand{name: "quiet"}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, slashInteraction("quiet", "u1", []string{}))

	if len(tr.responses) != 1 {
		t.Fatalf("responses = %d", len(tr.responses))
	}
	if tr.responses[0].Data.Content != defaultDoneMessage {
		t.Errorf("content = %q", tr.responses[0].Data.Content)
	}
}

func TestDispatchPanicBecomesFailure(t *testing.T) {
	cmd := &testCommand{name: "panicky", run: func(ctx *command.Context) error {
		panic("oh no")
	}}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, slashInteraction("panicky", "u1", []string{}))

	if len(tr.responses) != 1 {
		t.Fatalf("responses = %d", len(tr.responses))
	}
	if embedText(tr.responses[0]) != failureMessage {
		t.Errorf("message = %q", embedText(tr.responses[0]))
	}
}

func TestDispatchHandlerTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	cmd := &testCommand{name: "stuck", run: func(ctx *command.Context) error {
		<-block
		return nil
	}}
	d, tr := newTestDispatcher(t, cmd)
	d.timeout = 50 * time.Millisecond

	d.HandleInteraction(nil, slashInteraction("stuck", "u1", []string{}))

	if len(tr.responses) != 1 {
		t.Fatalf("responses = %d", len(tr.responses))
	}
	if embedText(tr.responses[0]) != failureMessage {
		t.Errorf("message = %q", embedText(tr.responses[0]))
	}
}

type componentCommand struct {
	testCommand
	component func(ctx *command.Context) error
}

func (c *componentCommand) Component(ctx *command.Context) error {
	return c.component(ctx)
}

func componentInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: customID},
			Member: &discordgo.Member{
				User:  &discordgo.User{ID: "u1"},
				Roles: []string{},
			},
			GuildID: "g1",
		},
	}
}

func TestDispatchComponentByPrefix(t *testing.T) {
	var gotID string
	cmd := &componentCommand{
		testCommand: testCommand{name: "verify"},
		component: func(ctx *command.Context) error {
			gotID = ctx.Event.MessageComponentData().CustomID
			return ctx.Respond.Finalize(respond.Payload{Content: "verified", Ephemeral: true})
		},
	}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, componentInteraction("verify:button"))

	if gotID != "verify:button" {
		t.Errorf("custom ID = %q", gotID)
	}
	if len(tr.responses) != 1 || tr.responses[0].Data.Content != "verified" {
		t.Fatalf("responses = %+v", tr.responses)
	}
}

func TestDispatchComponentDefersWhenRequested(t *testing.T) {
	cmd := &componentCommand{
		testCommand: testCommand{name: "verify", needsDefer: true},
		component: func(ctx *command.Context) error {
			if ctx.Respond.State() != respond.StateDeferred {
				t.Errorf("handler state = %s, want deferred", ctx.Respond.State())
			}
			return ctx.Respond.Finalize(respond.Payload{Content: "verified", Ephemeral: true})
		},
	}
	d, tr := newTestDispatcher(t, cmd)

	d.HandleInteraction(nil, componentInteraction("verify:button"))

	if len(tr.responses) != 1 {
		t.Fatalf("responses = %d", len(tr.responses))
	}
	if tr.responses[0].Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Errorf("type = %v", tr.responses[0].Type)
	}
	if len(tr.edits) != 1 || *tr.edits[0].Content != "verified" {
		t.Fatalf("edits = %+v", tr.edits)
	}
}
