package cmd

import (
	"fmt"

	"github.com/khrees2412/hireboard/internal/validate"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply for an open job (job seekers)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := validate.ID("job_id", args[0])
		if err != nil {
			return err
		}
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}

		application, err := a.Market.ApplyForJob(cmd.Context(), sess, jobID)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Applied for job %d (application ID: %d, status: %s)\n", jobID, application.ID, application.Status)
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <job-id>",
	Short: "Save an open job for later (job seekers)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := validate.ID("job_id", args[0])
		if err != nil {
			return err
		}
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}

		if err := a.Market.SaveJob(cmd.Context(), sess, jobID); err != nil {
			return err
		}
		cmd.Printf("✓ Job %d saved\n", jobID)
		return nil
	},
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List your saved jobs (job seekers)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}

		jobs, err := a.Market.ListSavedJobs(cmd.Context(), sess)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			cmd.Println("No saved jobs. Save one with 'hireboard save <job-id>'")
			return nil
		}
		cmd.Println(titleStyle.Render("Saved Jobs"))
		for _, job := range jobs {
			cmd.Printf("%s %s at %s [%s]\n", labelStyle.Render(fmt.Sprintf("#%d", job.ID)), job.Title, job.CompanyName, job.Status)
		}
		return nil
	},
}

var applicationCmd = &cobra.Command{
	Use:   "application",
	Short: "Review applications on your jobs (employers)",
}

var listApplicationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications on your jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}

		apps, err := a.Market.ListApplications(cmd.Context(), sess)
		if err != nil {
			return err
		}
		if len(apps) == 0 {
			cmd.Println("No applications yet.")
			return nil
		}

		cmd.Println(titleStyle.Render("Applications"))
		for _, app := range apps {
			cmd.Printf("%s %s applied for %s (job %d) %s\n", labelStyle.Render(fmt.Sprintf("#%d", app.ApplicationID)),
				app.SeekerName, app.JobTitle, app.JobID, valueStyle.Render(string(app.Status)))
		}
		return nil
	},
}

// reviewCommand builds the accept and reject subcommands
func reviewCommand(use, status string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <application-id>",
		Short: "Mark an application as " + status,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := validate.ID("application_id", args[0])
			if err != nil {
				return err
			}
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			sess, err := loginSession(cmd, a)
			if err != nil {
				return err
			}

			if err := a.Market.UpdateApplicationStatus(cmd.Context(), sess, appID, status); err != nil {
				return err
			}
			cmd.Printf("✓ Application %d marked as %s\n", appID, status)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(applicationCmd)

	applicationCmd.AddCommand(listApplicationsCmd)
	applicationCmd.AddCommand(reviewCommand("accept", "Accepted"))
	applicationCmd.AddCommand(reviewCommand("reject", "Rejected"))
}
