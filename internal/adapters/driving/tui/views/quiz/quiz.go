// Package quiz provides the daily quiz view for the TUI.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/components/input"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/messages"
	"github.com/studia-labs/studia-cli/internal/adapters/driving/tui/styles"
	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
)

// phase tracks where the user is in the quiz flow.
type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseVerdict
	phaseStats
)

// View drives the daily question flow: fetch, answer, verdict, stats.
type View struct {
	styles *styles.Styles
	quiz   driving.QuizService

	phase    phase
	question *domain.Question
	answer   *input.Field
	selected int // option index for multiple choice
	result   *domain.AnswerResult
	stats    domain.QuizStats
	history  []domain.QuizAttempt
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new quiz view.
func NewView(s *styles.Styles, quiz driving.QuizService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		quiz:   quiz,
		answer: input.NewField(s, "Your answer", ""),
		width:  80,
		height: 24,
	}
}

// Init initialises the view and fetches the daily question.
func (v *View) Init() tea.Cmd {
	v.phase = phaseLoading
	v.result = nil
	v.err = nil
	return v.loadQuestion()
}

// loadQuestion returns a command that fetches the daily question.
func (v *View) loadQuestion() tea.Cmd {
	return func() tea.Msg {
		question, err := v.quiz.Daily(context.Background())
		return messages.QuestionLoaded{Question: question, Err: err}
	}
}

// loadStats returns a command that loads the local totals and history.
func (v *View) loadStats() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := v.quiz.Stats(ctx)
		if err != nil {
			return messages.QuizStatsLoaded{Err: err}
		}
		history, err := v.quiz.History(ctx)
		return messages.QuizStatsLoaded{Stats: stats, History: history, Err: err}
	}
}

// Update handles messages for the quiz view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QuestionLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.phase = phaseAnswering
			return v, nil
		}
		v.err = nil
		v.question = msg.Question
		v.selected = 0
		v.answer.Reset()
		v.phase = phaseAnswering
		if v.question != nil && !v.question.MultipleChoice() {
			return v, v.answer.Focus()
		}
		return v, nil

	case messages.AnswerSubmitted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.result = msg.Result
		v.phase = phaseVerdict
		return v, nil

	case messages.QuizStatsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.stats = msg.Stats
		v.history = msg.History
		v.phase = phaseStats
		return v, nil
	}

	if v.phase == phaseAnswering && v.question != nil && !v.question.MultipleChoice() {
		var cmd tea.Cmd
		v.answer, cmd = v.answer.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg handles key presses per phase.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.phase {
	case phaseAnswering:
		return v.handleAnswering(msg)
	case phaseVerdict:
		switch msg.String() {
		case "n", "enter":
			v.phase = phaseLoading
			return v, v.loadQuestion()
		case "s":
			return v, v.loadStats()
		}
	case phaseStats:
		if msg.String() == "n" {
			v.phase = phaseLoading
			return v, v.loadQuestion()
		}
	case phaseLoading:
	}
	return v, nil
}

// handleAnswering handles key presses while a question is open.
func (v *View) handleAnswering(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.question == nil {
		if msg.String() == "s" {
			return v, v.loadStats()
		}
		return v, nil
	}

	if v.question.MultipleChoice() {
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil
		case "down", "j":
			if v.selected < len(v.question.Options)-1 {
				v.selected++
			}
			return v, nil
		case "enter":
			return v.submit(v.question.Options[v.selected])
		}
		return v, nil
	}

	if msg.String() == "enter" {
		return v.submit(strings.TrimSpace(v.answer.Value()))
	}
	var cmd tea.Cmd
	v.answer, cmd = v.answer.Update(msg)
	return v, cmd
}

// submit sends the answer to the server.
func (v *View) submit(userAnswer string) (*View, tea.Cmd) {
	if userAnswer == "" {
		return v, nil
	}
	question := v.question
	return v, func() tea.Msg {
		result, err := v.quiz.Answer(context.Background(), question, userAnswer)
		return messages.AnswerSubmitted{Result: result, Err: err}
	}
}

// View renders the quiz flow.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Daily Quiz"))
	b.WriteString("\n\n")

	switch v.phase {
	case phaseLoading:
		b.WriteString(v.styles.Muted.Render("Fetching your question..."))
		b.WriteString("\n")
	case phaseAnswering:
		b.WriteString(v.viewQuestion())
	case phaseVerdict:
		b.WriteString(v.viewVerdict())
	case phaseStats:
		b.WriteString(v.viewStats())
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// viewQuestion renders the open question and answer entry.
func (v *View) viewQuestion() string {
	var b strings.Builder

	if v.question == nil {
		b.WriteString(v.styles.Muted.Render("No question available today."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[s] stats  [esc] back"))
		return b.String()
	}

	b.WriteString(v.styles.Normal.Render(v.question.Text))
	b.WriteString("\n\n")

	if v.question.MultipleChoice() {
		for i, opt := range v.question.Options {
			cursor := "  "
			style := v.styles.Normal
			if i == v.selected {
				cursor = "> "
				style = v.styles.Subtitle
			}
			b.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(opt)))
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[j/k] choose  [enter] answer  [esc] back"))
	} else {
		b.WriteString(v.answer.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] answer  [esc] back"))
	}

	return b.String()
}

// viewVerdict renders the server's verdict.
func (v *View) viewVerdict() string {
	var b strings.Builder

	if v.result.Correct {
		b.WriteString(v.styles.Success.Render("Correct!"))
	} else {
		b.WriteString(v.styles.Error.Render("Incorrect."))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("Answer: " + v.result.CorrectAnswer))
	}
	b.WriteString("\n")

	if v.result.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.result.Explanation))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[n] next question  [s] stats  [esc] back"))

	return b.String()
}

// viewStats renders the local totals and attempt history.
func (v *View) viewStats() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Your stats"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf(
		"Answered: %d   Correct: %d   Accuracy: %d%%   Streak: %d",
		v.stats.Total, v.stats.Correct, v.stats.Accuracy(), v.stats.Streak,
	)))
	b.WriteString("\n\n")

	if len(v.history) > 0 {
		b.WriteString(v.styles.Subtitle.Render("Recent answers"))
		b.WriteString("\n")
		for _, attempt := range v.history {
			mark := v.styles.Success.Render("+")
			if !attempt.Correct {
				mark = v.styles.Error.Render("x")
			}
			b.WriteString(fmt.Sprintf(" %s %s\n", mark, v.styles.Normal.Render(attempt.Question)))
		}
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("[n] next question  [esc] back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Question returns the current question.
func (v *View) Question() *domain.Question {
	return v.question
}

// Result returns the last verdict.
func (v *View) Result() *domain.AnswerResult {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
