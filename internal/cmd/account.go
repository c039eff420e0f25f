package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/tui"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your profile and password",
	Long: `Manage your Gatherly account.

Subcommands:
  show             Show your profile
  update           Update profile fields
  password         Change your password
  reset-password   Request a password reset email
  reset-confirm    Complete a password reset

Examples:
  gatherly account show
  gatherly account update --city Rotterdam --event-reminders=true
  gatherly account password
  gatherly account reset-password --email user@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireAuth(cmd.Context()); err != nil {
			return err
		}

		u := app.session.CurrentUser()
		row := func(label, value string) {
			if value != "" {
				fmt.Printf("%-22s %s\n", label, value)
			}
		}
		row("email:", u.Email)
		row("name:", strings.TrimSpace(u.FirstName+" "+u.LastName))
		row("phone:", u.PhoneNumber)
		row("address:", u.StreetAddress)
		row("city:", u.City)
		row("state:", u.State)
		row("country:", u.Country)
		row("categories:", strings.Join(u.PreferredCategories, ", "))
		row("languages:", strings.Join(u.PreferredLanguages, ", "))
		row("age groups:", strings.Join(u.PreferredAgeGroups, ", "))
		if u.MaxDistanceKM != nil {
			row("max distance:", fmt.Sprintf("%d km", *u.MaxDistanceKM))
		}
		row("email notifications:", fmt.Sprintf("%t", u.EmailNotifications))
		row("event reminders:", fmt.Sprintf("%t", u.EventReminders))
		return nil
	},
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long: `Update profile fields. Only the flags you pass are sent; the rest of
the profile is left as-is. The server response replaces the local copy, so
any normalization it applies is what you see afterwards.

Examples:
  gatherly account update --first-name Ada --city Rotterdam
  gatherly account update --categories music,sports --max-distance 25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		update := api.NewProfileUpdate()
		flags := cmd.Flags()

		if flags.Changed("first-name") {
			v, _ := flags.GetString("first-name")
			update.SetFirstName(v)
		}
		if flags.Changed("last-name") {
			v, _ := flags.GetString("last-name")
			update.SetLastName(v)
		}
		if flags.Changed("phone") {
			v, _ := flags.GetString("phone")
			update.SetPhoneNumber(v)
		}
		if flags.Changed("street") {
			v, _ := flags.GetString("street")
			update.SetStreetAddress(v)
		}
		if flags.Changed("city") {
			v, _ := flags.GetString("city")
			update.SetCity(v)
		}
		if flags.Changed("state") {
			v, _ := flags.GetString("state")
			update.SetState(v)
		}
		if flags.Changed("country") {
			v, _ := flags.GetString("country")
			update.SetCountry(v)
		}
		if flags.Changed("categories") {
			v, _ := flags.GetStringSlice("categories")
			update.SetPreferredCategories(v)
		}
		if flags.Changed("languages") {
			v, _ := flags.GetStringSlice("languages")
			update.SetPreferredLanguages(v)
		}
		if flags.Changed("age-groups") {
			v, _ := flags.GetStringSlice("age-groups")
			update.SetPreferredAgeGroups(v)
		}
		if flags.Changed("max-distance") {
			v, _ := flags.GetInt("max-distance")
			update.SetMaxDistanceKM(v)
		}
		if flags.Changed("email-notifications") {
			v, _ := flags.GetBool("email-notifications")
			update.SetEmailNotifications(v)
		}
		if flags.Changed("event-reminders") {
			v, _ := flags.GetBool("event-reminders")
			update.SetEventReminders(v)
		}

		if update.IsEmpty() {
			return fmt.Errorf("nothing to update; pass at least one profile flag")
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireAuth(cmd.Context()); err != nil {
			return err
		}

		if !app.session.UpdateProfile(cmd.Context(), update) {
			return app.sessionError("profile update failed")
		}
		fmt.Println("Profile updated.")
		return nil
	},
}

var accountPasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsInteractive() {
			return fmt.Errorf("password change needs an interactive terminal")
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireAuth(cmd.Context()); err != nil {
			return err
		}

		oldPass, err := tui.PromptForPassword("Current password")
		if err != nil {
			return err
		}
		newPass, err := tui.PromptForPassword("New password")
		if err != nil {
			return err
		}
		confirm, err := tui.PromptForPassword("Repeat new password")
		if err != nil {
			return err
		}
		if newPass != confirm {
			return fmt.Errorf("passwords do not match")
		}

		if err := app.client.ChangePassword(cmd.Context(), api.PasswordChangeData{
			OldPassword:  oldPass,
			NewPassword1: newPass,
			NewPassword2: confirm,
		}); err != nil {
			return fmt.Errorf("password change failed: %w", err)
		}
		fmt.Println("Password changed.")
		return nil
	},
}

var accountResetCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Request a password reset email",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			var err error
			if !tui.IsInteractive() {
				return fmt.Errorf("--email is required")
			}
			email, err = tui.PromptForString(tui.Prompt{Message: "Email", Required: true})
			if err != nil {
				return err
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.client.ResetPassword(cmd.Context(), email); err != nil {
			return fmt.Errorf("reset request failed: %w", err)
		}
		fmt.Printf("Reset instructions sent to %s (if an account exists).\n", email)
		return nil
	},
}

var accountResetConfirmCmd = &cobra.Command{
	Use:   "reset-confirm <uid> <token>",
	Short: "Complete a password reset",
	Long: `Complete a password reset using the uid and token from the reset email.

Examples:
  gatherly account reset-confirm MQ 5f1-a2b3c4d5e6`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsInteractive() {
			return fmt.Errorf("password reset needs an interactive terminal")
		}

		newPass, err := tui.PromptForPassword("New password")
		if err != nil {
			return err
		}
		confirm, err := tui.PromptForPassword("Repeat new password")
		if err != nil {
			return err
		}
		if newPass != confirm {
			return fmt.Errorf("passwords do not match")
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.client.ConfirmPasswordReset(cmd.Context(), api.PasswordResetConfirmData{
			UID:          args[0],
			Token:        args[1],
			NewPassword1: newPass,
			NewPassword2: confirm,
		}); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Println("Password reset. You can log in with the new password.")
		return nil
	},
}

func init() {
	accountUpdateCmd.Flags().String("first-name", "", "First name")
	accountUpdateCmd.Flags().String("last-name", "", "Last name")
	accountUpdateCmd.Flags().String("phone", "", "Phone number")
	accountUpdateCmd.Flags().String("street", "", "Street address")
	accountUpdateCmd.Flags().String("city", "", "City")
	accountUpdateCmd.Flags().String("state", "", "State or province")
	accountUpdateCmd.Flags().String("country", "", "Country")
	accountUpdateCmd.Flags().StringSlice("categories", nil, "Preferred categories")
	accountUpdateCmd.Flags().StringSlice("languages", nil, "Preferred languages")
	accountUpdateCmd.Flags().StringSlice("age-groups", nil, "Preferred age groups")
	accountUpdateCmd.Flags().Int("max-distance", 0, "Maximum distance in km")
	accountUpdateCmd.Flags().Bool("email-notifications", false, "Enable email notifications")
	accountUpdateCmd.Flags().Bool("event-reminders", false, "Enable event reminders")

	accountResetCmd.Flags().String("email", "", "Email address")

	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountUpdateCmd)
	accountCmd.AddCommand(accountPasswordCmd)
	accountCmd.AddCommand(accountResetCmd)
	accountCmd.AddCommand(accountResetConfirmCmd)

	rootCmd.AddCommand(accountCmd)
}
