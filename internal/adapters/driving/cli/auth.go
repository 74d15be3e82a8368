package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in to the platform",
	Long: `Sign in with your email and password.

The session token is cached locally, so subsequent commands and the TUI
reuse it until it expires or you log out.

Examples:
  studia login jane@example.com
  studia login            # prompts for email too`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the cached session",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account.

Examples:
  studia register --email jane@example.com --name "Jane Doe" --department engineering`,
	RunE: runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

// Flags for register.
var (
	registerEmail      string
	registerName       string
	registerDepartment string
)

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerName, "name", "", "full name")
	registerCmd.Flags().StringVar(&registerDepartment, "department", "", "department")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	email := ""
	if len(args) == 1 {
		email = args[0]
	}
	if email == "" {
		var err error
		email, err = promptLine(cmd, "Email: ")
		if err != nil {
			return err
		}
	}

	password, err := promptPassword(cmd, "Password: ")
	if err != nil {
		return err
	}

	session, err := authService.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Signed in as %s (%s)\n", session.User.FullName, session.User.Email)
	if !session.ExpiresAt.IsZero() {
		cmd.Printf("Session expires %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	if err := authService.Logout(context.Background()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	input := driven.RegisterInput{
		Email:      registerEmail,
		FullName:   registerName,
		Department: registerDepartment,
	}

	var err error
	if input.Email == "" {
		if input.Email, err = promptLine(cmd, "Email: "); err != nil {
			return err
		}
	}
	if input.FullName == "" {
		if input.FullName, err = promptLine(cmd, "Full name: "); err != nil {
			return err
		}
	}
	if input.Department == "" {
		if input.Department, err = promptLine(cmd, "Department: "); err != nil {
			return err
		}
	}
	if input.Password, err = promptPassword(cmd, "Password: "); err != nil {
		return err
	}

	user, err := authService.Register(context.Background(), input)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	cmd.Printf("Account created for %s. Run 'studia login %s' to sign in.\n",
		user.FullName, user.Email)
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	session, err := authService.Restore(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			cmd.Println("Not signed in. Run 'studia login'.")
			return nil
		}
		return fmt.Errorf("restoring session: %w", err)
	}

	user := session.User
	cmd.Printf("%s (%s)\n", user.FullName, user.Email)
	cmd.Printf("  Department: %s\n", user.Department)
	cmd.Printf("  Role:       %s\n", user.Role)
	if !session.ExpiresAt.IsZero() {
		cmd.Printf("  Expires:    %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// promptLine reads one trimmed line from stdin.
func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, falling back to a plain line read otherwise.
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cmd.Print(prompt)
		data, err := term.ReadPassword(int(syscall.Stdin))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}
	return promptLine(cmd, prompt)
}
