package utility

import (
	"testing"
	"time"
)

func TestParseDelay(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"10m", 10 * time.Minute},
		{"10", 10 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"3 days", 72 * time.Hour},
		{"90s", 90 * time.Second},
		{"1h30m", 90 * time.Minute},
		{"2d12h", 60 * time.Hour},
		{" 15 mins ", 15 * time.Minute},
	}
	for _, c := range cases {
		got, err := parseDelay(c.in)
		if err != nil {
			t.Errorf("parseDelay(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseDelay(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseWhenCompactForms(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got, err := parseWhen("45m", now)
	if err != nil {
		t.Fatalf("parseWhen: %v", err)
	}
	if want := now.Add(45 * time.Minute); !got.Equal(want) {
		t.Errorf("parseWhen = %v, want %v", got, want)
	}

	if _, err := parseWhen("absolute gibberish qzx", now); err == nil {
		t.Error("parseWhen accepted gibberish")
	}
}

func TestParseDelayRejects(t *testing.T) {
	for _, in := range []string{"", "soon", "2s", "-5m", "h", "1y"} {
		if _, err := parseDelay(in); err == nil {
			t.Errorf("parseDelay(%q) succeeded", in)
		}
	}
}
