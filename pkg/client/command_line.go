package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

func AddApiConnectionCommandlineArgs(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("apiUrl", "localhost:8001", "specify arroyo api url")
	viper.BindPFlag("apiUrl", rootCmd.PersistentFlags().Lookup("apiUrl"))
	rootCmd.PersistentFlags().String("codec", api.CodecCBOR, "wire codec used to talk to the api, cbor or json")
	viper.BindPFlag("codec", rootCmd.PersistentFlags().Lookup("codec"))
}

func LoadCommandlineArgsFromConfigFile(cfgFile string) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error finding executable path: %s", err)
	} else {
		exeDir := filepath.Dir(exePath)
		viper.SetConfigFile(filepath.Join(exeDir, "arroyoctl-defaults.yaml"))
		err := viper.ReadInConfig()
		if err != nil {
			switch err.(type) {
			case viper.ConfigFileNotFoundError:
			case *os.PathError:
				// No default config is fine
			default:
				return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
			}
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error getting user home directory: %s", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".arroyoctl")
	}

	viper.SetEnvPrefix("ARROYO")
	viper.AutomaticEnv()

	err = viper.MergeInConfig()
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Only returned when looking for the optional ~/.arroyoctl file
		default:
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
		}
	}
	return nil
}

func ExtractCommandlineApiConnectionDetails() (*ApiConnectionDetails, error) {
	apiConnectionDetails := &ApiConnectionDetails{}
	if err := viper.Unmarshal(apiConnectionDetails); err != nil {
		return nil, err
	}
	if apiConnectionDetails.Codec != "" && !api.IsKnownCodec(apiConnectionDetails.Codec) {
		return nil, fmt.Errorf("unknown codec %q, expected %q or %q", apiConnectionDetails.Codec, api.CodecCBOR, api.CodecJSON)
	}
	return apiConnectionDetails, nil
}
