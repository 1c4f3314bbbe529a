package respond

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type fakeTransport struct {
	calls     []string
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	followups []*discordgo.WebhookParams
	fail      error
}

func (f *fakeTransport) Respond(resp *discordgo.InteractionResponse) error {
	if f.fail != nil {
		return f.fail
	}
	f.calls = append(f.calls, "respond")
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeTransport) Edit(edit *discordgo.WebhookEdit) error {
	if f.fail != nil {
		return f.fail
	}
	f.calls = append(f.calls, "edit")
	f.edits = append(f.edits, edit)
	return nil
}

func (f *fakeTransport) Followup(params *discordgo.WebhookParams) error {
	if f.fail != nil {
		return f.fail
	}
	f.calls = append(f.calls, "followup")
	f.followups = append(f.followups, params)
	return nil
}

func TestFinalizeFreshReply(t *testing.T) {
	tr := &fakeTransport{}
	ch := New(tr)

	if err := ch.Finalize(Payload{Content: "pong"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if ch.State() != StateFinalized {
		t.Errorf("state = %s", ch.State())
	}
	if len(tr.responses) != 1 {
		t.Fatalf("responses = %d", len(tr.responses))
	}
	if tr.responses[0].Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("type = %v", tr.responses[0].Type)
	}
	if tr.responses[0].Data.Content != "pong" {
		t.Errorf("content = %q", tr.responses[0].Data.Content)
	}
}

func TestAcknowledgeThenFinalizeEdits(t *testing.T) {
	tr := &fakeTransport{}
	ch := New(tr)

	if err := ch.Acknowledge(true); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if ch.State() != StateDeferred {
		t.Errorf("state = %s", ch.State())
	}
	if tr.responses[0].Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Errorf("type = %v", tr.responses[0].Type)
	}
	if tr.responses[0].Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("deferred response not ephemeral")
	}

	if err := ch.Finalize(Payload{Content: "done"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	// One deferral plus one edit, never a second initial response.
	if len(tr.calls) != 2 || tr.calls[1] != "edit" {
		t.Fatalf("calls = %v", tr.calls)
	}
	if *tr.edits[0].Content != "done" {
		t.Errorf("edit content = %q", *tr.edits[0].Content)
	}
}

func TestDoubleFinalizeFails(t *testing.T) {
	tr := &fakeTransport{}
	ch := New(tr)

	if err := ch.Finalize(Payload{Content: "one"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := ch.Finalize(Payload{Content: "two"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if len(tr.calls) != 1 {
		t.Fatalf("calls = %v", tr.calls)
	}
}

func TestAcknowledgeAfterFinalizeFails(t *testing.T) {
	ch := New(&fakeTransport{})

	if err := ch.Finalize(Payload{Content: "done"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := ch.Acknowledge(false); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestDoubleAcknowledgeFails(t *testing.T) {
	ch := New(&fakeTransport{})

	if err := ch.Acknowledge(false); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if err := ch.Acknowledge(false); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFollowupOnlyAfterFinalize(t *testing.T) {
	tr := &fakeTransport{}
	ch := New(tr)

	if err := ch.FinalizeAdditional(Payload{Content: "extra"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState while unacknowledged, got %v", err)
	}

	if err := ch.Acknowledge(false); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if err := ch.FinalizeAdditional(Payload{Content: "extra"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState while deferred, got %v", err)
	}

	if err := ch.Finalize(Payload{Content: "done"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := ch.FinalizeAdditional(Payload{Content: "extra", Ephemeral: true}); err != nil {
		t.Fatalf("FinalizeAdditional: %v", err)
	}

	if len(tr.followups) != 1 {
		t.Fatalf("followups = %d", len(tr.followups))
	}
	if tr.followups[0].Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("followup not ephemeral")
	}
}

func TestTransportFailureKeepsState(t *testing.T) {
	boom := errors.New("gateway down")
	tr := &fakeTransport{fail: boom}
	ch := New(tr)

	if err := ch.Acknowledge(false); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if ch.State() != StateUnacknowledged {
		t.Errorf("state advanced despite transport failure: %s", ch.State())
	}

	tr.fail = nil
	if err := ch.Acknowledge(false); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}
