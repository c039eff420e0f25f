package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Gatherly",
	Long: `Log in to Gatherly with your email and password.

The auth token is stored in ~/.gatherly/token. Set GATHERLY_TOKEN_PASSPHRASE
to keep it encrypted at rest.

Missing credentials are prompted for interactively.

Examples:
  gatherly login --email user@example.com
  gatherly login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if email == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--email is required")
			}
			email, err = tui.PromptForString(tui.Prompt{Message: "Email", Required: true})
			if err != nil {
				return err
			}
		}
		if password == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--password is required")
			}
			password, err = tui.PromptForPassword("Password")
			if err != nil {
				return err
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		if !app.session.Login(cmd.Context(), api.LoginCredentials{Email: email, Password: password}) {
			return app.sessionError("login failed")
		}

		user := app.session.CurrentUser()
		fmt.Printf("Logged in as %s\n", user.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Gatherly account",
	Long: `Create a new Gatherly account and log in with it.

Missing fields are prompted for interactively.

Examples:
  gatherly register --email user@example.com --username user`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := api.RegisterData{}
		data.Username, _ = cmd.Flags().GetString("username")
		data.Email, _ = cmd.Flags().GetString("email")
		data.FirstName, _ = cmd.Flags().GetString("first-name")
		data.LastName, _ = cmd.Flags().GetString("last-name")
		data.Password, _ = cmd.Flags().GetString("password")

		var err error
		if data.Email == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--email is required")
			}
			data.Email, err = tui.PromptForString(tui.Prompt{Message: "Email", Required: true})
			if err != nil {
				return err
			}
		}
		if data.Username == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--username is required")
			}
			data.Username, err = tui.PromptForString(tui.Prompt{Message: "Username", Required: true})
			if err != nil {
				return err
			}
		}
		if data.Password == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--password is required")
			}
			data.Password, err = tui.PromptForPassword("Password")
			if err != nil {
				return err
			}
			confirm, err := tui.PromptForPassword("Repeat password")
			if err != nil {
				return err
			}
			if confirm != data.Password {
				return fmt.Errorf("passwords do not match")
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		if !app.session.Register(cmd.Context(), data) {
			return app.sessionError("registration failed")
		}

		fmt.Printf("Welcome to Gatherly, %s!\n", data.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored token",
	Long: `Log out from Gatherly.

The server is told to revoke the token, but the local session is cleared
even when that call fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if !app.tokens.HasToken() {
			fmt.Println("Not logged in.")
			return nil
		}

		app.start(cmd.Context())
		app.session.Logout(cmd.Context())
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		app.start(cmd.Context())
		if !app.session.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		user := app.session.CurrentUser()
		fmt.Printf("Logged in as %s", user.Email)
		if user.FirstName != "" || user.LastName != "" {
			fmt.Printf(" (%s %s)", user.FirstName, user.LastName)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", "Password")

	registerCmd.Flags().String("username", "", "Username")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("password", "", "Password")
	registerCmd.Flags().String("first-name", "", "First name")
	registerCmd.Flags().String("last-name", "", "Last name")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
