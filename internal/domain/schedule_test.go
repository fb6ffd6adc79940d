package domain

import "testing"

func TestCanonicalRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Sugo 1", "Sugo 1", true},
		{"sugo 1", "Sugo 1", true},
		{"SUGO 2", "Sugo 2", true},
		{" Sugo 2 ", "Sugo 2", true},
		{"Sugo 9", "", false},
		{"Sugo", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := CanonicalRole(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("CanonicalRole(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCanonicalLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"English", "English", true},
		{"english", "English", true},
		{"TAGALOG", "Tagalog", true},
		{"French", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := CanonicalLanguage(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("CanonicalLanguage(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusActive, StatusCanceled, true},
		{StatusActive, StatusFinished, true},
		{StatusCanceled, StatusActive, false},
		{StatusFinished, StatusActive, false},
		{StatusCanceled, StatusFinished, false},
		{StatusActive, StatusActive, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestScheduleEventAt(t *testing.T) {
	s := &Schedule{Date: "12-15-2025", Time24: "14:30"}
	at, err := s.EventAt()
	if err != nil {
		t.Fatalf("EventAt: %v", err)
	}
	if at.Hour() != 14 || at.Minute() != 30 {
		t.Fatalf("unexpected clock: %v", at)
	}
}
