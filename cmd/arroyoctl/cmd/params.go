package cmd

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacksonrnewhouse/arroyo/internal/arroyoctl"
	"github.com/jacksonrnewhouse/arroyo/internal/console"
	"github.com/jacksonrnewhouse/arroyo/internal/draft"
	"github.com/jacksonrnewhouse/arroyo/pkg/client"
)

// fileConfig is the part of the config file that is not about the connection, e.g.
//
//	defaultSink: web
//	console:
//	  pollInterval: 500ms
//	drafts:
//	  backend: redis
//	  redis:
//	    addr: localhost:6379
type fileConfig struct {
	DefaultSink console.SinkSelection
	Console     console.Configuration
	Drafts      draft.Configuration
}

func initParams(cmd *cobra.Command, params *arroyoctl.Params) error {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := client.LoadCommandlineArgsFromConfigFile(configFile); err != nil {
		return err
	}

	params.ApiConnectionDetails, err = client.ExtractCommandlineApiConnectionDetails()
	if err != nil {
		return err
	}

	config := fileConfig{Console: console.Defaults()}
	err = viper.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		console.SinkDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return err
	}
	if err := config.Console.Validate(); err != nil {
		return err
	}

	params.DefaultSink = config.DefaultSink
	params.Console = config.Console
	params.Drafts = config.Drafts
	return nil
}
