package domain

import "time"

// DayNames maps days_of_week integers (0=Sunday) to display names.
var DayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday",
	"Thursday", "Friday", "Saturday",
}

// QuizSchedule is an admin-managed schedule that sends a user a daily
// question at a fixed time on selected weekdays.
type QuizSchedule struct {
	// ID is the schedule identifier.
	ID string `json:"id"`

	// UserID is the recipient.
	UserID string `json:"user_id"`

	// QuestionTime is the send time in "HH:MM" 24-hour form.
	QuestionTime string `json:"question_time"`

	// DaysOfWeek are active weekdays, 0=Sunday through 6=Saturday.
	DaysOfWeek []int `json:"days_of_week"`

	// Active reports whether the schedule is currently enabled.
	Active bool `json:"active"`

	// CreatedAt is when the schedule was created.
	CreatedAt time.Time `json:"created_at"`
}

// DayActive reports whether the given weekday is selected.
func (s *QuizSchedule) DayActive(day int) bool {
	if s == nil {
		return false
	}
	for _, d := range s.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// ToggleDay adds or removes a weekday, keeping the slice sorted.
// Out-of-range days are ignored.
func (s *QuizSchedule) ToggleDay(day int) {
	if s == nil || day < 0 || day > 6 {
		return
	}
	for i, d := range s.DaysOfWeek {
		if d == day {
			s.DaysOfWeek = append(s.DaysOfWeek[:i], s.DaysOfWeek[i+1:]...)
			return
		}
	}
	inserted := false
	for i, d := range s.DaysOfWeek {
		if day < d {
			s.DaysOfWeek = append(s.DaysOfWeek[:i],
				append([]int{day}, s.DaysOfWeek[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		s.DaysOfWeek = append(s.DaysOfWeek, day)
	}
}

// DaySummary renders the selected days as short names, "Every day"
// when all seven are active and "Never" when none are.
func (s *QuizSchedule) DaySummary() string {
	if s == nil || len(s.DaysOfWeek) == 0 {
		return "Never"
	}
	if len(s.DaysOfWeek) == 7 {
		return "Every day"
	}
	out := ""
	for i, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			continue
		}
		if i > 0 {
			out += ", "
		}
		out += DayNames[d][:3]
	}
	return out
}

// ScheduleInput is the create/update payload for a quiz schedule.
type ScheduleInput struct {
	UserID       string `json:"user_id" validate:"required"`
	QuestionTime string `json:"question_time" validate:"required,len=5"`
	DaysOfWeek   []int  `json:"days_of_week" validate:"dive,min=0,max=6"`
	Active       bool   `json:"active"`
}
