package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizSchedule_ToggleDay_Add(t *testing.T) {
	s := &QuizSchedule{}

	s.ToggleDay(3)
	assert.Equal(t, []int{3}, s.DaysOfWeek)

	s.ToggleDay(1)
	assert.Equal(t, []int{1, 3}, s.DaysOfWeek)

	s.ToggleDay(6)
	assert.Equal(t, []int{1, 3, 6}, s.DaysOfWeek)
}

func TestQuizSchedule_ToggleDay_Remove(t *testing.T) {
	s := &QuizSchedule{DaysOfWeek: []int{1, 3, 5}}

	s.ToggleDay(3)
	assert.Equal(t, []int{1, 5}, s.DaysOfWeek)

	s.ToggleDay(1)
	s.ToggleDay(5)
	assert.Empty(t, s.DaysOfWeek)
}

func TestQuizSchedule_ToggleDay_OutOfRange(t *testing.T) {
	s := &QuizSchedule{DaysOfWeek: []int{2}}

	s.ToggleDay(-1)
	s.ToggleDay(7)
	assert.Equal(t, []int{2}, s.DaysOfWeek)
}

func TestQuizSchedule_ToggleDay_Roundtrip(t *testing.T) {
	s := &QuizSchedule{}
	for d := 0; d < 7; d++ {
		s.ToggleDay(d)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, s.DaysOfWeek)

	for d := 0; d < 7; d++ {
		s.ToggleDay(d)
	}
	assert.Empty(t, s.DaysOfWeek)
}

func TestQuizSchedule_DayActive(t *testing.T) {
	s := &QuizSchedule{DaysOfWeek: []int{0, 6}}

	assert.True(t, s.DayActive(0))
	assert.True(t, s.DayActive(6))
	assert.False(t, s.DayActive(3))
}

func TestQuizSchedule_DaySummary(t *testing.T) {
	assert.Equal(t, "Never", (&QuizSchedule{}).DaySummary())
	assert.Equal(t, "Every day",
		(&QuizSchedule{DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6}}).DaySummary())
	assert.Equal(t, "Mon, Wed, Fri",
		(&QuizSchedule{DaysOfWeek: []int{1, 3, 5}}).DaySummary())
}

func TestQuizStats_Record(t *testing.T) {
	s := QuizStats{}

	s = s.Record(true)
	assert.Equal(t, QuizStats{Total: 1, Correct: 1, Streak: 1}, s)

	s = s.Record(true)
	assert.Equal(t, QuizStats{Total: 2, Correct: 2, Streak: 2}, s)

	s = s.Record(false)
	assert.Equal(t, QuizStats{Total: 3, Correct: 2, Streak: 0}, s)

	s = s.Record(true)
	assert.Equal(t, QuizStats{Total: 4, Correct: 3, Streak: 1}, s)
}

func TestQuizStats_Accuracy(t *testing.T) {
	assert.Equal(t, 0, QuizStats{}.Accuracy())
	assert.Equal(t, 50, QuizStats{Total: 2, Correct: 1}.Accuracy())
	assert.Equal(t, 67, QuizStats{Total: 3, Correct: 2}.Accuracy())
	assert.Equal(t, 100, QuizStats{Total: 5, Correct: 5}.Accuracy())
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())

	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
}

func TestUser_IsEnrolled(t *testing.T) {
	u := &User{EnrolledMaterials: []string{"m1", "m2"}}

	assert.True(t, u.IsEnrolled("m1"))
	assert.False(t, u.IsEnrolled("m3"))
}

func TestMaterial_HasFile(t *testing.T) {
	assert.True(t, (&Material{FilePath: "materials/a.pdf"}).HasFile())
	assert.False(t, (&Material{}).HasFile())
}

func TestMaterial_Ghost(t *testing.T) {
	missing := false
	present := true

	assert.True(t, (&Material{FilePath: "materials/a.pdf", FileExists: &missing}).Ghost())
	assert.False(t, (&Material{FilePath: "materials/a.pdf", FileExists: &present}).Ghost())
	assert.False(t, (&Material{FilePath: "materials/a.pdf"}).Ghost())
}

func TestProgress_PageDone(t *testing.T) {
	p := &Progress{CompletedPages: []int{1, 4, 9}}

	assert.True(t, p.PageDone(4))
	assert.False(t, p.PageDone(2))

	var nilProgress *Progress
	assert.False(t, nilProgress.PageDone(1))
}
