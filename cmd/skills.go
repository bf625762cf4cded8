package cmd

import (
	"fmt"

	"github.com/khrees2412/hireboard/internal/marketplace"
	"github.com/spf13/cobra"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage your skills (job seekers)",
}

var addSkillCmd = &cobra.Command{
	Use:   "add <skill-name>",
	Short: "Add a skill or change its years of experience",
	Args:  cobra.ExactArgs(1),
	Example: `  hireboard skill add Go --years 3
  hireboard skill add "SQL" --years 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		sess, err := loginSession(cmd, a)
		if err != nil {
			return err
		}
		years, _ := cmd.Flags().GetString("years")

		if err := a.Market.AddSkill(cmd.Context(), sess, args[0], years); err != nil {
			return err
		}
		cmd.Printf("✓ Skill added: %s (%s years)\n", args[0], years)
		return nil
	},
}

var seekerCmd = &cobra.Command{
	Use:   "seeker",
	Short: "Browse job seekers",
}

var filterSeekersCmd = &cobra.Command{
	Use:     "filter",
	Short:   "Filter job seekers by industry, location and experience",
	Example: `  hireboard seeker filter --industry Tech --min-exp 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		c := marketplace.SeekerCriteria{}
		c.Industry, _ = cmd.Flags().GetString("industry")
		c.Location, _ = cmd.Flags().GetString("location")
		c.MinExperience, _ = cmd.Flags().GetString("min-exp")

		seekers, err := a.Market.FilterJobSeekers(cmd.Context(), c)
		if err != nil {
			return err
		}
		if len(seekers) == 0 {
			cmd.Println("No matching job seekers.")
			return nil
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("Job Seekers (%d)", len(seekers))))
		for _, p := range seekers {
			cmd.Printf("%s %s <%s> %s, %s\n", labelStyle.Render(fmt.Sprintf("#%d", p.UserID)),
				p.Name, p.Email, p.Industry, p.PreferredLocation)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(seekerCmd)

	skillCmd.AddCommand(addSkillCmd)
	seekerCmd.AddCommand(filterSeekersCmd)

	addSkillCmd.Flags().String("years", "0", "Years of experience with the skill")

	filterSeekersCmd.Flags().String("industry", "", "Preferred industry")
	filterSeekersCmd.Flags().String("location", "", "Preferred location")
	filterSeekersCmd.Flags().String("min-exp", "", "At least one skill with this many years")
}
