package cmd

import (
	"fmt"

	"github.com/khrees2412/hireboard/internal/marketplace"
	"github.com/khrees2412/hireboard/internal/validate"
	"github.com/khrees2412/hireboard/pkg/models"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage job vacancies",
	Long:  "Post, list, view, update, hide and remove job vacancies",
}

var createJobCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a job (employers)",
	Example: `  hireboard job create --title "Backend Engineer" --description "Build APIs" \
    --industry Tech --location Cairo --skills "go, sql" --min-exp 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}

		in := marketplace.CreateJobInput{}
		in.Title, _ = cmd.Flags().GetString("title")
		in.Description, _ = cmd.Flags().GetString("description")
		in.Industry, _ = cmd.Flags().GetString("industry")
		in.Location, _ = cmd.Flags().GetString("location")
		in.RequiredSkills, _ = cmd.Flags().GetString("skills")
		in.MinExperience, _ = cmd.Flags().GetString("min-exp")

		job, err := a.Market.CreateJob(cmd.Context(), sess, in)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Job posted: %s (ID: %d)\n", job.Title, job.ID)
		return nil
	},
}

var updateJobCmd = &cobra.Command{
	Use:   "update <job-id>",
	Short: "Change some fields of one of your jobs (employers)",
	Args:  cobra.ExactArgs(1),
	Example: `  hireboard job update 3 --title "Senior Backend Engineer" --min-exp 5`,
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

		patch := marketplace.JobPatch{}
		patch.Title, _ = cmd.Flags().GetString("title")
		patch.Description, _ = cmd.Flags().GetString("description")
		patch.Industry, _ = cmd.Flags().GetString("industry")
		patch.Location, _ = cmd.Flags().GetString("location")
		patch.RequiredSkills, _ = cmd.Flags().GetString("skills")
		patch.MinExperience, _ = cmd.Flags().GetString("min-exp")

		if err := a.Market.UpdateJob(cmd.Context(), sess, jobID, patch); err != nil {
			return err
		}
		cmd.Printf("✓ Job %d updated\n", jobID)
		return nil
	},
}

var hideJobCmd = &cobra.Command{
	Use:   "hide <job-id>",
	Short: "Close one of your jobs to new applications (employers)",
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

		if err := a.Market.HideJob(cmd.Context(), sess, jobID); err != nil {
			return err
		}
		cmd.Printf("✓ Job %d closed\n", jobID)
		return nil
	},
}

var removeJobCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Delete one of your jobs with its applications (employers)",
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

		if err := a.Market.DeleteJob(cmd.Context(), sess, jobID); err != nil {
			return err
		}
		cmd.Printf("✓ Job %d removed\n", jobID)
		return nil
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List open jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		jobs, err := a.Market.ListOpenJobs(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		if len(jobs) == 0 {
			cmd.Println("No open jobs.")
			return nil
		}

		cmd.Println(titleStyle.Render("Open Jobs"))
		for _, job := range jobs {
			cmd.Printf("\n%s %s\n", labelStyle.Render(fmt.Sprintf("#%d", job.JobID)), job.Title)
			cmd.Printf("   %s %s (%s)\n", labelStyle.Render("Company:"), job.CompanyName, job.CompanyIndustry)
			cmd.Printf("   %s %s\n", labelStyle.Render("Location:"), job.Location)
		}
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show job details",
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

		job, err := a.Market.GetJobDetails(cmd.Context(), jobID)
		if err != nil {
			return err
		}
		printJob(cmd, job)
		return nil
	},
}

var filterJobsCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter open jobs by industry, location and experience",
	Example: `  hireboard job filter --industry Tech --max-exp 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		c := marketplace.VacancyCriteria{}
		c.Industry, _ = cmd.Flags().GetString("industry")
		c.Location, _ = cmd.Flags().GetString("location")
		c.MaxExperience, _ = cmd.Flags().GetString("max-exp")

		jobs, err := a.Market.FilterVacancies(cmd.Context(), c)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			cmd.Println("No matching jobs.")
			return nil
		}
		cmd.Println(titleStyle.Render(fmt.Sprintf("Matching Jobs (%d)", len(jobs))))
		for _, job := range jobs {
			cmd.Printf("%s %s at %s, %s (min %d yrs)\n", labelStyle.Render(fmt.Sprintf("#%d", job.ID)),
				job.Title, job.CompanyName, job.Location, job.MinExperience)
		}
		return nil
	},
}

var recommendJobsCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank open jobs against your profile and skills (job seekers)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		matches, err := a.Market.RecommendJobs(cmd.Context(), sess, limit)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			cmd.Println("No open jobs to recommend.")
			return nil
		}
		cmd.Println(titleStyle.Render("Recommended Jobs"))
		for _, m := range matches {
			cmd.Printf("%s %s at %s %s\n", labelStyle.Render(fmt.Sprintf("#%d", m.Job.ID)), m.Job.Title,
				m.Job.CompanyName, valueStyle.Render(fmt.Sprintf("(%.0f%% match)", m.Score*100)))
		}
		return nil
	},
}

func printJob(cmd *cobra.Command, job *models.Vacancy) {
	cmd.Println(titleStyle.Render(job.Title))
	printField(cmd, "ID:", job.ID)
	printField(cmd, "Company:", job.CompanyName)
	printField(cmd, "Industry:", job.Industry)
	printField(cmd, "Location:", job.Location)
	printField(cmd, "Skills:", job.RequiredSkills)
	printField(cmd, "Min Experience:", fmt.Sprintf("%d years", job.MinExperience))
	printField(cmd, "Applicants:", job.AppCount)
	printField(cmd, "Status:", job.Status)
	if job.Description != "" {
		cmd.Printf("\n%s\n%s\n", labelStyle.Render("Description:"), job.Description)
	}
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(createJobCmd)
	jobCmd.AddCommand(updateJobCmd)
	jobCmd.AddCommand(hideJobCmd)
	jobCmd.AddCommand(removeJobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(filterJobsCmd)
	jobCmd.AddCommand(recommendJobsCmd)

	// Flags shared by create and update
	for _, c := range []*cobra.Command{createJobCmd, updateJobCmd} {
		c.Flags().String("title", "", "Job title")
		c.Flags().String("description", "", "Job description")
		c.Flags().String("industry", "", "Industry")
		c.Flags().String("location", "", "Job location")
		c.Flags().String("skills", "", "Required skills")
		c.Flags().String("min-exp", "", "Minimum years of experience")
	}

	filterJobsCmd.Flags().String("industry", "", "Industry")
	filterJobsCmd.Flags().String("location", "", "Location")
	filterJobsCmd.Flags().String("max-exp", "", "Only jobs requiring at most this many years")

	recommendJobsCmd.Flags().Int("limit", 10, "Maximum number of jobs to show (0 for all)")
}
