package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGuildSettings(t *testing.T) {
	s := newTestStorage(t)

	if _, err := s.GuildSetting("g1", SettingWelcomeMessage); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.SetGuildSetting("g1", SettingWelcomeMessage, "Welcome, {user}!"); err != nil {
		t.Fatalf("SetGuildSetting: %v", err)
	}

	got, err := s.GuildSetting("g1", SettingWelcomeMessage)
	if err != nil {
		t.Fatalf("GuildSetting: %v", err)
	}
	if got != "Welcome, {user}!" {
		t.Errorf("got %q", got)
	}

	// Settings are scoped per guild.
	if _, err := s.GuildSetting("g2", SettingWelcomeMessage); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other guild, got %v", err)
	}

	if err := s.DeleteGuildSetting("g1", SettingWelcomeMessage); err != nil {
		t.Fatalf("DeleteGuildSetting: %v", err)
	}
	if _, err := s.GuildSetting("g1", SettingWelcomeMessage); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAFKRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if _, ok, err := s.AFK("u1"); err != nil || ok {
		t.Fatalf("AFK on empty store: ok=%v err=%v", ok, err)
	}

	since := time.Now()
	if err := s.SetAFK("u1", "lunch", since); err != nil {
		t.Fatalf("SetAFK: %v", err)
	}

	record, ok, err := s.AFK("u1")
	if err != nil || !ok {
		t.Fatalf("AFK: ok=%v err=%v", ok, err)
	}
	if record.Message != "lunch" {
		t.Errorf("message = %q", record.Message)
	}
	if record.Since().UnixMilli() != since.UnixMilli() {
		t.Errorf("since = %v, want %v", record.Since(), since)
	}

	previous, ok, err := s.ClearAFK("u1")
	if err != nil || !ok {
		t.Fatalf("ClearAFK: ok=%v err=%v", ok, err)
	}
	if previous.Message != "lunch" {
		t.Errorf("previous message = %q", previous.Message)
	}

	if _, ok, _ := s.AFK("u1"); ok {
		t.Error("record still present after ClearAFK")
	}
	if _, ok, _ := s.ClearAFK("u1"); ok {
		t.Error("second ClearAFK reported a record")
	}
}

func TestShortLinks(t *testing.T) {
	s := newTestStorage(t)

	link := ShortLink{
		Code:      "abc123",
		Original:  "https://example.com/some/long/path",
		UserID:    "u1",
		CreatedMs: time.Now().UnixMilli(),
	}
	if err := s.AddShortLink(link); err != nil {
		t.Fatalf("AddShortLink: %v", err)
	}

	if err := s.AddShortLink(link); !errors.Is(err, ErrCodeTaken) {
		t.Fatalf("expected ErrCodeTaken, got %v", err)
	}

	got, err := s.ShortLink("abc123")
	if err != nil {
		t.Fatalf("ShortLink: %v", err)
	}
	if got.Original != link.Original {
		t.Errorf("original = %q", got.Original)
	}

	existing, found, err := s.FindByOriginal(link.Original)
	if err != nil || !found {
		t.Fatalf("FindByOriginal: found=%v err=%v", found, err)
	}
	if existing.Code != "abc123" {
		t.Errorf("code = %q", existing.Code)
	}

	if err := s.IncrementClicks("abc123"); err != nil {
		t.Fatalf("IncrementClicks: %v", err)
	}
	got, _ = s.ShortLink("abc123")
	if got.Clicks != 1 {
		t.Errorf("clicks = %d, want 1", got.Clicks)
	}

	if _, err := s.ShortLink("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
