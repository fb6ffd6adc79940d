package telegram

import (
	"strings"
	"testing"

	"github.com/ji-woo-hub/suguan-bot/internal/domain"
)

func TestSessionWalksAllFiveSteps(t *testing.T) {
	sess := newSession()

	inputs := []string{"12-15-2025", "14:30", "Central", "Sugo 1", "English"}
	for i, in := range inputs {
		ok, done := sess.apply(in)
		if !ok {
			t.Fatalf("step %d: input %q rejected", i, in)
		}
		wantDone := i == len(inputs)-1
		if done != wantDone {
			t.Fatalf("step %d: done=%v, want %v", i, done, wantDone)
		}
	}

	s := sess.schedule(42)
	if s.UserID != 42 {
		t.Errorf("user: want 42, got %d", s.UserID)
	}
	if s.Date != "12-15-2025" || s.Day != "Monday" {
		t.Errorf("date/day: got %q %q", s.Date, s.Day)
	}
	if s.Time24 != "14:30" || s.Time12 != "02:30 PM" {
		t.Errorf("time: got %q %q", s.Time24, s.Time12)
	}
	if s.Locale != "Central" || s.Role != "Sugo 1" || s.Language != "English" {
		t.Errorf("fields: got %q %q %q", s.Locale, s.Role, s.Language)
	}
	if s.Status != domain.StatusActive {
		t.Errorf("status: want active, got %s", s.Status)
	}
}

func TestSessionRepromptsSameStepOnInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		setup  []string // valid inputs to reach the step under test
		bad    []string
		good   string
		atStep step
	}{
		{"date", nil, []string{"15-12-2025", "someday", ""}, "12-15-2025", stepDate},
		{"time", []string{"12-15-2025"}, []string{"25:00", "2 pm"}, "14:30", stepTime},
		{"locale", []string{"12-15-2025", "14:30"}, []string{"   "}, "Central", stepLocale},
		{"role", []string{"12-15-2025", "14:30", "Central"}, []string{"Sugo 9", "Deacon"}, "Sugo 1", stepRole},
		{"language", []string{"12-15-2025", "14:30", "Central", "Sugo 1"}, []string{"French"}, "English", stepLanguage},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sess := newSession()
			for _, in := range c.setup {
				if ok, _ := sess.apply(in); !ok {
					t.Fatalf("setup input %q rejected", in)
				}
			}
			for _, bad := range c.bad {
				if ok, _ := sess.apply(bad); ok {
					t.Fatalf("input %q accepted, want rejection", bad)
				}
				if sess.step != c.atStep {
					t.Fatalf("after %q: step moved to %d", bad, sess.step)
				}
			}
			if ok, _ := sess.apply(c.good); !ok {
				t.Fatalf("valid input %q rejected after re-prompts", c.good)
			}
		})
	}
}

func TestSessionAcceptsSelectionsCaseInsensitively(t *testing.T) {
	sess := newSession()
	for _, in := range []string{"12-15-2025", "14:30", "Central", "sugo 2", "tagalog"} {
		if ok, _ := sess.apply(in); !ok {
			t.Fatalf("input %q rejected", in)
		}
	}
	s := sess.schedule(1)
	if s.Role != "Sugo 2" || s.Language != "Tagalog" {
		t.Fatalf("canonical spelling lost: %q %q", s.Role, s.Language)
	}
}

func TestNormalizeCommand(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/start", "start"},
		{"Enter", "enter"},
		{"HISTORY", "history"},
		{"/Enter@SuguanBot", "enter"},
		{" cancel ", "cancel"},
	}
	for _, c := range cases {
		if got := normalizeCommand(c.in); got != c.want {
			t.Errorf("normalizeCommand(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHistoryTextProjection(t *testing.T) {
	rows := []domain.Schedule{
		{Date: "12-15-2025", Day: "Monday", Time12: "02:30 PM",
			Locale: "Central", Role: "Sugo 1", Language: "English",
			Status: domain.StatusActive},
		{Date: "11-02-2025", Day: "Sunday", Time12: "09:00 AM",
			Locale: "North", Role: "Sugo 2", Language: "Tagalog",
			Status: domain.StatusFinished},
	}
	got := historyText(rows, 0)
	for _, want := range []string{
		"1. 12-15-2025 (Monday) 02:30 PM",
		"2. 11-02-2025 (Sunday) 09:00 AM",
		"Sugo 1", "Tagalog", "active", "finished",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("history text missing %q:\n%s", want, got)
		}
	}
}

func TestHistoryNavKeyboard(t *testing.T) {
	if kb := historyNavKeyboard(0, 10, false); kb != nil {
		t.Fatal("single page should have no nav keyboard")
	}
	kb := historyNavKeyboard(10, 10, true)
	if kb == nil || len(kb.InlineKeyboard[0]) != 2 {
		t.Fatal("middle page should have both Newer and Older")
	}
	if got := *kb.InlineKeyboard[0][0].CallbackData; got != "hist:0" {
		t.Errorf("newer callback: got %q", got)
	}
	if got := *kb.InlineKeyboard[0][1].CallbackData; got != "hist:20" {
		t.Errorf("older callback: got %q", got)
	}
}
