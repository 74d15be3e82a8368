package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer users, departments, questions and schedules",
	Long: `Administration commands. These require an admin account; the
server rejects them for regular users.

Examples:
  studia admin users list
  studia admin users create --email x@y.z --name "X" --department ops --role user
  studia admin departments create --name ops
  studia admin questions upload questions.csv
  studia admin schedules create --user <user-id> --time 09:00 --days 1,2,3,4,5`,
}

// --- users ---

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
	RunE:  runAdminUsersList,
}

var adminUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  runAdminUsersList,
}

var adminUsersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE:  runAdminUsersCreate,
}

var adminUsersDeleteCmd = &cobra.Command{
	Use:   "delete [user-id]",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminUsersDelete,
}

// --- departments ---

var adminDepartmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Manage departments",
	RunE:  runAdminDepartmentsList,
}

var adminDepartmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments",
	RunE:  runAdminDepartmentsList,
}

var adminDepartmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a department",
	RunE:  runAdminDepartmentsCreate,
}

var adminDepartmentsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a department",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDepartmentsDelete,
}

// --- questions ---

var adminQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage quiz questions",
	RunE:  runAdminQuestionsList,
}

var adminQuestionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions with answers",
	RunE:  runAdminQuestionsList,
}

var adminQuestionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a question",
	RunE:  runAdminQuestionsCreate,
}

var adminQuestionsDeleteCmd = &cobra.Command{
	Use:   "delete [question-id]",
	Short: "Delete a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminQuestionsDelete,
}

var adminQuestionsUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Bulk-upload questions from a CSV or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminQuestionsUpload,
}

// --- schedules ---

var adminSchedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "Manage quiz schedules",
	RunE:  runAdminSchedulesList,
}

var adminSchedulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quiz schedules",
	RunE:  runAdminSchedulesList,
}

var adminSchedulesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a quiz schedule",
	RunE:  runAdminSchedulesCreate,
}

var adminSchedulesDeleteCmd = &cobra.Command{
	Use:   "delete [schedule-id]",
	Short: "Delete a quiz schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminSchedulesDelete,
}

// Flags.
var (
	adminUserEmail      string
	adminUserName       string
	adminUserDepartment string
	adminUserRole       string
	adminUserPassword   string

	adminDeptName        string
	adminDeptDescription string

	adminQuestionText       string
	adminQuestionOptions    []string
	adminQuestionAnswer     string
	adminQuestionDepartment string
	adminQuestionType       string
	adminQuestionMaterial   string

	adminScheduleUser string
	adminScheduleTime string
	adminScheduleDays []int
)

//nolint:funlen // flag registration
func init() {
	adminUsersCreateCmd.Flags().StringVar(&adminUserEmail, "email", "", "account email")
	adminUsersCreateCmd.Flags().StringVar(&adminUserName, "name", "", "full name")
	adminUsersCreateCmd.Flags().StringVar(&adminUserDepartment, "department", "", "department")
	adminUsersCreateCmd.Flags().StringVar(&adminUserRole, "role", "user", "role (user, admin)")
	adminUsersCreateCmd.Flags().StringVar(&adminUserPassword, "password", "", "initial password")

	adminDepartmentsCreateCmd.Flags().StringVar(&adminDeptName, "name", "", "department name")
	adminDepartmentsCreateCmd.Flags().StringVar(&adminDeptDescription, "description", "", "description")

	adminQuestionsCreateCmd.Flags().StringVar(&adminQuestionText, "text", "", "question text")
	adminQuestionsCreateCmd.Flags().StringSliceVar(&adminQuestionOptions, "options", nil, "answer options (comma-separated)")
	adminQuestionsCreateCmd.Flags().StringVar(&adminQuestionAnswer, "answer", "", "correct answer")
	adminQuestionsCreateCmd.Flags().StringVar(&adminQuestionDepartment, "department", "", "target department")
	adminQuestionsCreateCmd.Flags().StringVar(&adminQuestionType, "type", "multiple_choice", "question type")
	adminQuestionsCreateCmd.Flags().StringVar(&adminQuestionMaterial, "material", "", "linked material ID")

	adminSchedulesCreateCmd.Flags().StringVar(&adminScheduleUser, "user", "", "recipient user ID")
	adminSchedulesCreateCmd.Flags().StringVar(&adminScheduleTime, "time", "09:00", "send time (HH:MM)")
	adminSchedulesCreateCmd.Flags().IntSliceVar(&adminScheduleDays, "days", []int{1, 2, 3, 4, 5}, "weekdays (0=Sunday)")

	adminUsersCmd.AddCommand(adminUsersListCmd)
	adminUsersCmd.AddCommand(adminUsersCreateCmd)
	adminUsersCmd.AddCommand(adminUsersDeleteCmd)

	adminDepartmentsCmd.AddCommand(adminDepartmentsListCmd)
	adminDepartmentsCmd.AddCommand(adminDepartmentsCreateCmd)
	adminDepartmentsCmd.AddCommand(adminDepartmentsDeleteCmd)

	adminQuestionsCmd.AddCommand(adminQuestionsListCmd)
	adminQuestionsCmd.AddCommand(adminQuestionsCreateCmd)
	adminQuestionsCmd.AddCommand(adminQuestionsDeleteCmd)
	adminQuestionsCmd.AddCommand(adminQuestionsUploadCmd)

	adminSchedulesCmd.AddCommand(adminSchedulesListCmd)
	adminSchedulesCmd.AddCommand(adminSchedulesCreateCmd)
	adminSchedulesCmd.AddCommand(adminSchedulesDeleteCmd)

	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminDepartmentsCmd)
	adminCmd.AddCommand(adminQuestionsCmd)
	adminCmd.AddCommand(adminSchedulesCmd)
	rootCmd.AddCommand(adminCmd)
}

func requireAdmin() error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}
	return nil
}

func runAdminUsersList(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	users, err := adminService.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	for i := range users {
		u := &users[i]
		cmd.Printf("  %s  %s <%s>  %s/%s\n", u.ID, u.FullName, u.Email, u.Department, u.Role)
	}
	return nil
}

func runAdminUsersCreate(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	user, err := adminService.CreateUser(context.Background(), driven.AdminUserInput{
		Email:      adminUserEmail,
		Password:   adminUserPassword,
		FullName:   adminUserName,
		Department: adminUserDepartment,
		Role:       adminUserRole,
	})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	cmd.Printf("Created user %s (%s)\n", user.Email, user.ID)
	return nil
}

func runAdminUsersDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	if err := adminService.DeleteUser(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	cmd.Println("Deleted.")
	return nil
}

func runAdminDepartmentsList(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	departments, err := adminService.ListDepartments(context.Background())
	if err != nil {
		return fmt.Errorf("listing departments: %w", err)
	}

	for _, d := range departments {
		line := "  " + d.Name
		if d.Description != "" {
			line += "  " + d.Description
		}
		cmd.Println(line)
	}
	return nil
}

func runAdminDepartmentsCreate(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	err := adminService.CreateDepartment(context.Background(), adminDeptName, adminDeptDescription)
	if err != nil {
		return fmt.Errorf("creating department: %w", err)
	}
	cmd.Printf("Created department %s\n", adminDeptName)
	return nil
}

func runAdminDepartmentsDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	if err := adminService.DeleteDepartment(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting department: %w", err)
	}
	cmd.Println("Deleted.")
	return nil
}

func runAdminQuestionsList(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	questions, err := adminService.ListQuestions(context.Background())
	if err != nil {
		return fmt.Errorf("listing questions: %w", err)
	}

	for i := range questions {
		q := &questions[i]
		cmd.Printf("  %s  [%s] %s\n", q.ID, q.Department, q.Text)
		if len(q.Options) > 0 {
			cmd.Printf("      options: %s\n", strings.Join(q.Options, " | "))
		}
		cmd.Printf("      answer: %s\n", q.Answer)
	}
	return nil
}

func runAdminQuestionsCreate(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	err := adminService.CreateQuestion(context.Background(), driven.QuestionInput{
		Text:       adminQuestionText,
		Options:    adminQuestionOptions,
		Answer:     adminQuestionAnswer,
		Department: adminQuestionDepartment,
		Type:       adminQuestionType,
		MaterialID: adminQuestionMaterial,
	})
	if err != nil {
		return fmt.Errorf("creating question: %w", err)
	}
	cmd.Println("Created.")
	return nil
}

func runAdminQuestionsDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	if err := adminService.DeleteQuestion(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting question: %w", err)
	}
	cmd.Println("Deleted.")
	return nil
}

func runAdminQuestionsUpload(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	count, err := adminService.UploadQuestions(context.Background(), filepath.Base(args[0]), data)
	if err != nil {
		return fmt.Errorf("uploading questions: %w", err)
	}
	cmd.Printf("Uploaded %d questions.\n", count)
	return nil
}

func runAdminSchedulesList(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	schedules, err := adminService.ListSchedules(context.Background())
	if err != nil {
		return fmt.Errorf("listing schedules: %w", err)
	}

	for i := range schedules {
		s := &schedules[i]
		state := "inactive"
		if s.Active {
			state = "active"
		}
		cmd.Printf("  %s  %s at %s (%s, %s)\n", s.ID, s.UserID, s.QuestionTime, s.DaySummary(), state)
	}
	return nil
}

func runAdminSchedulesCreate(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	err := adminService.CreateSchedule(context.Background(), domain.ScheduleInput{
		UserID:       adminScheduleUser,
		QuestionTime: adminScheduleTime,
		DaysOfWeek:   adminScheduleDays,
		Active:       true,
	})
	if err != nil {
		return fmt.Errorf("creating schedule: %w", err)
	}
	cmd.Println("Created.")
	return nil
}

func runAdminSchedulesDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	if err := adminService.DeleteSchedule(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	cmd.Println("Deleted.")
	return nil
}
