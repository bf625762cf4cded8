package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/hireboard/internal/marketplace"
	"github.com/khrees2412/hireboard/pkg/models"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

func printField(cmd *cobra.Command, label string, value any) {
	cmd.Printf("%s %s\n", labelStyle.Render(label), valueStyle.Render(fmt.Sprint(value)))
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account",
	Long:  "Register, inspect, update and delete marketplace accounts",
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an employer or job seeker account",
	Example: `  hireboard account register --email hr@acme.com --password secret1 --name "Acme HR" \
    --phone 5550100 --role Employer --company Acme --industry Tech --location Cairo
  hireboard account register --email bo@example.com --password secret1 --name Bo \
    --phone 5550101 --role JobSeeker --resume https://cv.example.com/bo --industry Tech --location Cairo`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		in := marketplace.RegisterInput{}
		in.Email, _ = cmd.Flags().GetString("email")
		in.Password, _ = cmd.Flags().GetString("password")
		in.Name, _ = cmd.Flags().GetString("name")
		in.Phone, _ = cmd.Flags().GetString("phone")
		in.Role, _ = cmd.Flags().GetString("role")
		in.CompanyName, _ = cmd.Flags().GetString("company")
		in.ResumeLink, _ = cmd.Flags().GetString("resume")
		in.Industry, _ = cmd.Flags().GetString("industry")
		in.Location, _ = cmd.Flags().GetString("location")

		user, err := a.Market.Register(cmd.Context(), in)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("✓ Account created"))
		printField(cmd, "ID:", user.ID)
		printField(cmd, "Role:", user.Role)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Log in and show the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}

		id, _ := sess.Current()
		cmd.Println(titleStyle.Render("Logged In"))
		printField(cmd, "ID:", id.UserID)
		printField(cmd, "Name:", id.Name)
		printField(cmd, "Email:", id.Email)
		printField(cmd, "Role:", id.Role)
		if id.Role == models.RoleEmployer {
			printField(cmd, "Company:", id.CompanyName)
		}
		return nil
	},
}

var updateAccountCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your name, email, phone or password",
	Example: `  hireboard account update --email bo@example.com --password secret1 --set-phone 5550199
  hireboard account update --set-email bo@newmail.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}

		patch := marketplace.UserPatch{}
		patch.Name, _ = cmd.Flags().GetString("set-name")
		patch.Email, _ = cmd.Flags().GetString("set-email")
		patch.Phone, _ = cmd.Flags().GetString("set-phone")
		patch.Password, _ = cmd.Flags().GetString("set-password")

		if err := a.Market.UpdateUser(cmd.Context(), sess, patch); err != nil {
			return err
		}
		cmd.Println("✓ Account updated")
		return nil
	},
}

var deleteAccountCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account and everything it owns",
	Long: `Delete the logged in account. Employers lose their jobs together with the
applications and saved entries on them; job seekers lose their applications,
saved jobs and skills.`,
	Example: `  hireboard account delete --email bo@example.com --password secret1 --confirm bo@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}

		confirm, _ := cmd.Flags().GetString("confirm")
		if err := a.Market.DeleteUser(cmd.Context(), sess, confirm); err != nil {
			return err
		}
		cmd.Println("✓ Account deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(registerCmd)
	accountCmd.AddCommand(whoamiCmd)
	accountCmd.AddCommand(updateAccountCmd)
	accountCmd.AddCommand(deleteAccountCmd)

	// Flags for register
	registerCmd.Flags().String("name", "", "Full name (required)")
	registerCmd.Flags().String("phone", "", "Phone number, digits only (required)")
	registerCmd.Flags().String("role", "", "Employer or JobSeeker (required)")
	registerCmd.Flags().String("company", "", "Company name (employers)")
	registerCmd.Flags().String("resume", "", "Resume link (job seekers)")
	registerCmd.Flags().String("industry", "", "Company industry or preferred industry")
	registerCmd.Flags().String("location", "", "Company location or preferred location")

	// Flags for update
	updateAccountCmd.Flags().String("set-name", "", "New name")
	updateAccountCmd.Flags().String("set-email", "", "New email")
	updateAccountCmd.Flags().String("set-phone", "", "New phone number")
	updateAccountCmd.Flags().String("set-password", "", "New password")

	deleteAccountCmd.Flags().String("confirm", "", "Your email, to confirm deletion (required)")
}
