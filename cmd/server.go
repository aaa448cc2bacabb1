package cmd

import (
	"github.com/Daskott/sosrelay/server"
	"github.com/spf13/cobra"
)

func createServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the sosrelay server",
		Long: `The sosrelay server exposes /sendSOS, /addContacts, /getContacts & /check.
In dev mode SMS messages are logged instead of being sent through twilio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadServerConfig(cfgFile, isDevEnv)
			if err != nil {
				return err
			}

			server.Start(config, isDevEnv)
			return nil
		},
	}
}
