package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/hireboard/internal/scheduler"
	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Marketplace reports",
	Long:  "Reports over jobs, employers and job seekers. Monthly reports cover the previous calendar month.",
}

var mostInterestingCmd = &cobra.Command{
	Use:   "most-interesting",
	Short: "Show the job with the most applicants",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		job, err := a.Analytics.MostInterestingJob(cmd.Context())
		if err != nil {
			return err
		}
		if job == nil {
			cmd.Println("No jobs yet.")
			return nil
		}
		printJob(cmd, job)
		return nil
	},
}

var idleJobsCmd = &cobra.Command{
	Use:   "idle-jobs",
	Short: "Open jobs with no applications last month",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		jobs, err := a.Analytics.JobsWithNoApplicantsLastMonth(cmd.Context())
		if err != nil {
			return err
		}
		w := a.Analytics.Window()
		cmd.Println(titleStyle.Render(fmt.Sprintf("Jobs without applicants (%s to %s)",
			w.From.Format("2006-01-02"), w.To.Format("2006-01-02"))))
		if len(jobs) == 0 {
			cmd.Println("None.")
			return nil
		}
		for _, job := range jobs {
			cmd.Printf("%s %s at %s\n", labelStyle.Render(fmt.Sprintf("#%d", job.ID)), job.Title, job.CompanyName)
		}
		return nil
	},
}

var topEmployersCmd = &cobra.Command{
	Use:   "top-employers",
	Short: "Employers with the most jobs that received applications last month",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		employers, err := a.Analytics.EmployerWithMaxAnnouncements(cmd.Context())
		if err != nil {
			return err
		}
		if len(employers) == 0 {
			cmd.Println("No applications last month.")
			return nil
		}
		cmd.Println(titleStyle.Render("Most Active Employers"))
		for _, e := range employers {
			printField(cmd, e.CompanyName+":", fmt.Sprintf("%d jobs", e.JobCount))
		}
		return nil
	},
}

var quietEmployersCmd = &cobra.Command{
	Use:   "quiet-employers",
	Short: "Employers whose jobs received no applications last month",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		employers, err := a.Analytics.EmployersWithNoAnnouncements(cmd.Context())
		if err != nil {
			return err
		}
		if len(employers) == 0 {
			cmd.Println("Every employer received applications last month.")
			return nil
		}
		cmd.Println(titleStyle.Render("Quiet Employers"))
		for _, e := range employers {
			cmd.Printf("  %s\n", e.CompanyName)
		}
		return nil
	},
}

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Open positions grouped by employer",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		groups, err := a.Analytics.AvailablePositionsByEmployer(cmd.Context())
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			cmd.Println("No open positions.")
			return nil
		}
		cmd.Println(titleStyle.Render("Open Positions"))
		for _, g := range groups {
			printField(cmd, g.CompanyName+":", strings.Join(g.Titles, ", "))
		}
		return nil
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List every job seeker",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		seekers, err := a.Analytics.JobSeekerRoster(cmd.Context())
		if err != nil {
			return err
		}
		if len(seekers) == 0 {
			cmd.Println("No job seekers yet.")
			return nil
		}
		cmd.Println(titleStyle.Render(fmt.Sprintf("Job Seekers (%d)", len(seekers))))
		for _, p := range seekers {
			cmd.Printf("%s %s <%s> %s, %d applications\n", labelStyle.Render(fmt.Sprintf("#%d", p.UserID)),
				p.Name, p.Email, p.Phone, p.AppliedJobCount)
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the full monthly report",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		report, err := scheduler.BuildReport(cmd.Context(), a.Analytics)
		if err != nil {
			return err
		}
		cmd.Print(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(mostInterestingCmd)
	analyticsCmd.AddCommand(idleJobsCmd)
	analyticsCmd.AddCommand(topEmployersCmd)
	analyticsCmd.AddCommand(quietEmployersCmd)
	analyticsCmd.AddCommand(positionsCmd)
	analyticsCmd.AddCommand(rosterCmd)
	analyticsCmd.AddCommand(reportCmd)
}
