// Package utility holds everyday helper commands.
package utility

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sho0pi/naturaltime"
)

const minReminderDelay = 5 * time.Second

var whenParser *naturaltime.Parser

func init() {
	p, err := naturaltime.New()
	if err != nil {
		log.Printf("[WARN] Natural language time parsing unavailable: %v", err)
		return
	}
	whenParser = p
}

// parseWhen resolves a reminder time: compact delays like "10m" first, then
// natural language like "tomorrow at 9am".
func parseWhen(input string, now time.Time) (time.Time, error) {
	if d, err := parseDelay(input); err == nil {
		return now.Add(d), nil
	}

	if whenParser != nil {
		if t, err := whenParser.ParseDate(input, now); err == nil && t != nil {
			if t.Sub(now) < minReminderDelay {
				return time.Time{}, fmt.Errorf("that time is already in the past or too soon")
			}
			return *t, nil
		}
	}

	return time.Time{}, fmt.Errorf("could not understand '%s', try forms like 10m, 2h or \"tomorrow at 9am\"", input)
}

var durationPattern = regexp.MustCompile(`^(\d+)\s*(s|m|h|d|sec|secs|min|mins|hour|hours|day|days)?$`)

// parseDelay reads human reminder delays like "10m", "2h", "3 days" or a
// stack of them ("1h30m"). Bare numbers are minutes.
func parseDelay(input string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	// Compound forms like "1h30m" parse via the standard library, with a
	// day unit expanded first.
	if d, err := time.ParseDuration(expandDays(s)); err == nil {
		return checkDelay(d)
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("unrecognized duration '%s', try forms like 10m, 2h or 1d", input)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number in duration '%s'", input)
	}

	var unit time.Duration
	switch m[2] {
	case "s", "sec", "secs":
		unit = time.Second
	case "", "m", "min", "mins":
		unit = time.Minute
	case "h", "hour", "hours":
		unit = time.Hour
	case "d", "day", "days":
		unit = 24 * time.Hour
	}

	return checkDelay(time.Duration(n) * unit)
}

func checkDelay(d time.Duration) (time.Duration, error) {
	if d < minReminderDelay {
		return 0, fmt.Errorf("delay must be at least %s", minReminderDelay)
	}
	return d, nil
}

var dayPattern = regexp.MustCompile(`(\d+)d`)

func expandDays(s string) string {
	return dayPattern.ReplaceAllStringFunc(s, func(m string) string {
		n, _ := strconv.Atoi(strings.TrimSuffix(m, "d"))
		return fmt.Sprintf("%dh", n*24)
	})
}
