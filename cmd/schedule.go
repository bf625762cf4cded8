package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/khrees2412/hireboard/internal/scheduler"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Write the monthly report on the configured cron schedule",
	Long: `Runs in the foreground and writes the monthly report to stdout on
report_schedule (default "0 6 1 * *"). When metrics_textfile is set the
operation metrics are exported there after each report.`,
	Example: `  hireboard schedule
  hireboard schedule --once`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		s, err := scheduler.New(a.Analytics, a.Log, scheduler.Options{
			Spec:     a.Config.ReportSchedule,
			Out:      cmd.OutOrStdout(),
			Metrics:  a.Metrics,
			Textfile: a.Config.MetricsTextfile,
		})
		if err != nil {
			return err
		}

		if once, _ := cmd.Flags().GetBool("once"); once {
			return s.RunOnce(cmd.Context())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := s.Start(ctx); err != nil {
			return err
		}
		cmd.Printf("Next report at %s. Press Ctrl+C to stop.\n", s.Next(time.Now()).Format(time.RFC1123))

		<-ctx.Done()
		s.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().Bool("once", false, "Write one report now and exit")
}
