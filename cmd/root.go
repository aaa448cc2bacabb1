/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	devConfig "github.com/Daskott/sosrelay/dev/config"
	"github.com/Daskott/sosrelay/shared"
	"github.com/fatih/color"
	"github.com/go-playground/validator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	isDevEnv bool

	red = color.New(color.FgRed).SprintFunc()
)

// env vars that don't follow the config key names
var envBindings = map[string]string{
	"listener.port":                 "PORT",
	"twilio.accountSid":             "TWILIO_ACCOUNT_SID",
	"twilio.authToken":              "TWILIO_AUTH_TOKEN",
	"twilio.phoneNumber":            "TWILIO_PHONE_NUMBER",
	"store.driver":                  "STORE_DRIVER",
	"contacts.static":               "EMERGENCY_CONTACTS",
	"sqlite.passPhrase":             "SQLITE_PASSPHRASE",
	"sqlite.dir":                    "SQLITE_DIR",
	"google.applicationCredentials": "GOOGLE_APPLICATION_CREDENTIALS",
	"google.projectId":              "FIRESTORE_PROJECT_ID",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd = createRootCmd()
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sosrelay",
		Short: "sosrelay relays SOS alerts to your emergency contacts via SMS",
		Long: `sosrelay is a small backend that takes an SOS alert (a latitude & longitude)
and texts a google maps link of that location to each of your emergency contacts.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (settings can also be set via env vars)")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")

	cmd.AddCommand(createServerCmd())
	cmd.AddCommand(createContactsCmd())

	return cmd
}

// loadServerConfig reads the config file(or the dev config in dev mode) & env vars
// into a validated ServerConfig. Env vars override values in the file.
func loadServerConfig(cfgFile string, devMode bool) (*shared.ServerConfig, error) {
	config := viper.New()

	config.SetDefault("listener.port", 3000)
	config.SetDefault("store.driver", shared.MEMORY_STORE)
	config.SetDefault("cron.timeZone", "UTC")

	for key, env := range envBindings {
		config.BindEnv(key, env)
	}

	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	switch {
	case devMode:
		config.SetConfigType("yaml")
		if err := config.ReadConfig(strings.NewReader(devConfig.SERVER_YML)); err != nil {
			return nil, fmt.Errorf("error reading dev config: %v", err)
		}
	case cfgFile != "":
		config.SetConfigFile(cfgFile)
		if err := config.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
		fmt.Fprintln(os.Stderr, "Using config file:", config.ConfigFileUsed())
	}

	serverConfig := shared.ServerConfig{}
	if err := config.Unmarshal(&serverConfig); err != nil {
		return nil, fmt.Errorf("unable to decode config: %v", err)
	}

	if err := validator.New().Struct(serverConfig); err != nil {
		return nil, formattedError("invalid config:\n%v", err)
	}

	if errMsg := serverConfig.StoreOptionsError(); errMsg != "" {
		return nil, formattedError("invalid config: %v", errMsg)
	}

	return &serverConfig, nil
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(red(format), a...)
}
