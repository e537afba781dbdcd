package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// APIKey and Server are the configuration file keys. The same
	// settings are read from DNSDB_API_KEY and DNSDB_SERVER in the
	// environment.
	APIKey = "api_key"
	Server = "server"

	configName = ".dnsdb"
	envPrefix  = "DNSDB"
)

// InitConfig loads ~/.dnsdb.yaml and the DNSDB_* environment. A
// missing config file is not an error; the environment still applies.
func InitConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	viper.AddConfigPath(home)
	viper.SetConfigType("yaml")
	viper.SetConfigName(configName)

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func writeConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(home, configName+".yaml"))
}

// SetAPIKey stores the API key in the configuration file.
func SetAPIKey(key string) error {
	viper.Set(APIKey, key)
	return writeConfig()
}

// GetAPIKey returns the configured API key, or "" when unset.
func GetAPIKey() string {
	return viper.GetString(APIKey)
}

// SetServer stores a non-default API endpoint in the configuration
// file.
func SetServer(server string) error {
	viper.Set(Server, server)
	return writeConfig()
}

// GetServer returns the configured API endpoint, or "" to use the
// default.
func GetServer() string {
	return viper.GetString(Server)
}
