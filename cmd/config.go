package cmd

import (
	"github.com/khrees2412/hireboard/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(titleStyle.Render("Configuration"))
		printField(cmd, "Config File:", config.GetConfigPath())
		for _, kv := range config.Values() {
			value := kv[1]
			if value == "" {
				value = "✗ Not configured"
			}
			printField(cmd, kv[0]+":", value)
		}
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  hireboard config set --key email --value hr@acme.com
  hireboard config set --key password --value secret1
  hireboard config set --key redis_url --value redis://localhost:6379/0
  hireboard config set --key report_schedule --value "0 6 1 * *"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			cmd.Println("Both --key and --value are required")
			return nil
		}

		if err := config.Set(key, value); err != nil {
			return err
		}
		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
