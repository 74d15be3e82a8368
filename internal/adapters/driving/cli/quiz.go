package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer daily quiz questions",
	Long: `Fetch and answer your daily quiz question, and review your
locally tracked statistics.

Examples:
  studia quiz          # fetch today's question and answer it
  studia quiz stats
  studia quiz history`,
	RunE: runQuizDaily,
}

var quizDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Fetch and answer today's question",
	RunE:  runQuizDaily,
}

var quizStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your running quiz totals",
	RunE:  runQuizStats,
}

var quizHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your recent answers",
	RunE:  runQuizHistory,
}

func init() {
	quizCmd.AddCommand(quizDailyCmd)
	quizCmd.AddCommand(quizStatsCmd)
	quizCmd.AddCommand(quizHistoryCmd)
	rootCmd.AddCommand(quizCmd)
}

func runQuizDaily(cmd *cobra.Command, _ []string) error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}

	ctx := context.Background()
	question, err := quizService.Daily(ctx)
	if err != nil {
		return fmt.Errorf("fetching question: %w", err)
	}
	if question == nil {
		cmd.Println("No question available today.")
		return nil
	}

	cmd.Println(question.Text)
	cmd.Println()

	var answer string
	if question.MultipleChoice() {
		for i, opt := range question.Options {
			cmd.Printf("  %d) %s\n", i+1, opt)
		}
		cmd.Println()
		choice, err := promptLine(cmd, fmt.Sprintf("Answer [1-%d]: ", len(question.Options)))
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(question.Options) {
			return fmt.Errorf("invalid choice %q", choice)
		}
		answer = question.Options[n-1]
	} else {
		if answer, err = promptLine(cmd, "Answer: "); err != nil {
			return err
		}
	}

	result, err := quizService.Answer(ctx, question, answer)
	if err != nil {
		return fmt.Errorf("submitting answer: %w", err)
	}

	if result.Correct {
		cmd.Println("Correct!")
	} else {
		cmd.Printf("Incorrect. The answer was: %s\n", result.CorrectAnswer)
	}
	if result.Explanation != "" {
		cmd.Println(result.Explanation)
	}
	return nil
}

func runQuizStats(cmd *cobra.Command, _ []string) error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}

	stats, err := quizService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	cmd.Printf("Answered: %d\n", stats.Total)
	cmd.Printf("Correct:  %d (%d%%)\n", stats.Correct, stats.Accuracy())
	cmd.Printf("Streak:   %d\n", stats.Streak)
	return nil
}

func runQuizHistory(cmd *cobra.Command, _ []string) error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}

	history, err := quizService.History(context.Background())
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(history) == 0 {
		cmd.Println("No answers recorded yet.")
		return nil
	}

	for _, attempt := range history {
		mark := "+"
		if !attempt.Correct {
			mark = "x"
		}
		cmd.Printf("  %s %s  %s\n",
			mark,
			attempt.AnsweredAt.Local().Format("2006-01-02"),
			attempt.Question,
		)
		if !attempt.Correct {
			cmd.Printf("      answered %q, expected %q\n", attempt.UserAnswer, attempt.CorrectAnswer)
		}
	}
	return nil
}
