package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/taskflow/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the TaskFlow server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("email", "", "Email address to log in with")
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Email: ")
		email, _ = reader.ReadString('\n')
		email = strings.TrimSpace(email)
	}

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	identity, err := client.Login(context.Background(), email, string(passwordBytes))
	if err != nil {
		if identity != nil {
			// Logged in but the session could not be persisted
			fmt.Printf("⚠️  Logged in as %s, but the session could not be saved: %v\n", identity.Name, err)
			return nil
		}
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Kind == api.KindUnauthorized {
			return fmt.Errorf("invalid email or password")
		}
		return err
	}

	fmt.Printf("✅ Logged in as %s <%s>\n", identity.Name, identity.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if !client.Session().IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	if err := client.Logout(); err != nil {
		return err
	}
	fmt.Println("✅ Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	identity := client.Session().Identity()
	if identity == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", identity.Name, identity.Email)
	return nil
}
