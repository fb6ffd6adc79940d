package telegram

import "github.com/ji-woo-hub/suguan-bot/internal/domain"

// step is the position of a conversation inside the scheduling form.
type step int

const (
	stepDate step = iota
	stepTime
	stepLocale
	stepRole
	stepLanguage
)

// session is the per-chat conversation record: the current step plus the
// five fields the form collects. One session exists per chat at most.
type session struct {
	step     step
	date     string
	day      string
	time24   string
	time12   string
	locale   string
	role     string
	language string
}

func newSession() *session {
	return &session{step: stepDate}
}

// apply feeds one user input into the form. On valid input the session
// advances one step and ok is true; on invalid input the session stays on
// the same step. done becomes true when the final field is filled.
func (s *session) apply(text string) (ok, done bool) {
	switch s.step {
	case stepDate:
		d, err := domain.ParseDate(text)
		if err != nil {
			return false, false
		}
		s.date = d.Format(domain.DateLayout)
		s.day = domain.WeekdayName(d)
		s.step = stepTime
		return true, false

	case stepTime:
		t, err := domain.ParseTime24(text)
		if err != nil {
			return false, false
		}
		s.time24 = t.Format(domain.Time24Layout)
		s.time12 = t.Format(domain.Time12Layout)
		s.step = stepLocale
		return true, false

	case stepLocale:
		loc, err := domain.ValidateLocale(text)
		if err != nil {
			return false, false
		}
		s.locale = loc
		s.step = stepRole
		return true, false

	case stepRole:
		role, found := domain.CanonicalRole(text)
		if !found {
			return false, false
		}
		s.role = role
		s.step = stepLanguage
		return true, false

	case stepLanguage:
		lang, found := domain.CanonicalLanguage(text)
		if !found {
			return false, false
		}
		s.language = lang
		return true, true
	}
	return false, false
}

// schedule builds the record a completed session describes.
func (s *session) schedule(userID int64) *domain.Schedule {
	return &domain.Schedule{
		UserID:   userID,
		Date:     s.date,
		Day:      s.day,
		Time24:   s.time24,
		Time12:   s.time12,
		Locale:   s.locale,
		Role:     s.role,
		Language: s.language,
		Status:   domain.StatusActive,
	}
}
