// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

const (
	HTTPHostKey        = "http-host"
	HTTPPortKey        = "http-port"
	GenesisFileKey     = "genesis-file"
	ConfigFileKey      = "config-file"
	DBDirKey           = "db-dir"
	AllowedOriginsKey  = "allowed-origins"
	AllowedHostsKey    = "allowed-hosts"
	JWTSecretKey       = "jwt-secret"
	ShutdownTimeoutKey = "shutdown-timeout"
	AdminAPIEnabledKey = "admin-api-enabled"
	ProfileDirKey      = "profile-dir"
)

var (
	errMissingGenesis      = errors.New("--" + GenesisFileKey + " is required")
	errAdminRequiresSecret = errors.New("--" + AdminAPIEnabledKey + " requires --" + JWTSecretKey)
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server")
	flags.Uint16(HTTPPortKey, 9650, "Port of the HTTP server")
	flags.String(GenesisFileKey, "", "Genesis JSON file (required)")
	flags.String(ConfigFileKey, "", "VM config JSON file. Defaults are used when empty")
	flags.String(DBDirKey, "", "Database directory. State is kept in memory when empty")
	flags.StringSlice(AllowedOriginsKey, []string{"*"}, "Origins to allow on the HTTP port")
	flags.StringSlice(AllowedHostsKey, []string{"localhost"}, "Hostnames to allow on the HTTP port. \"*\" allows all")
	flags.String(JWTSecretKey, "", "Secret used to verify caller tokens. Execute is rejected when empty")
	flags.Duration(ShutdownTimeoutKey, 10*time.Second, "Maximum duration to wait for in-flight requests on shutdown")
	flags.Bool(AdminAPIEnabledKey, false, "Serve the admin API to the owner and admins")
	flags.String(ProfileDirKey, "profiles", "Directory the admin API writes profiles to")
}

type Config struct {
	HTTPHost        string
	HTTPPort        uint16
	GenesisFile     string
	ConfigFile      string
	DBDir           string
	AllowedOrigins  []string
	AllowedHosts    []string
	JWTSecret       string
	ShutdownTimeout time.Duration
	AdminAPIEnabled bool
	ProfileDir      string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	httpHost, err := flags.GetString(HTTPHostKey)
	if err != nil {
		return nil, err
	}

	httpPort, err := flags.GetUint16(HTTPPortKey)
	if err != nil {
		return nil, err
	}

	genesisFile, err := flags.GetString(GenesisFileKey)
	if err != nil {
		return nil, err
	}
	if genesisFile == "" {
		return nil, errMissingGenesis
	}

	configFile, err := flags.GetString(ConfigFileKey)
	if err != nil {
		return nil, err
	}

	dbDir, err := flags.GetString(DBDirKey)
	if err != nil {
		return nil, err
	}

	allowedOrigins, err := flags.GetStringSlice(AllowedOriginsKey)
	if err != nil {
		return nil, err
	}

	allowedHosts, err := flags.GetStringSlice(AllowedHostsKey)
	if err != nil {
		return nil, err
	}

	jwtSecret, err := flags.GetString(JWTSecretKey)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := flags.GetDuration(ShutdownTimeoutKey)
	if err != nil {
		return nil, err
	}

	adminAPIEnabled, err := flags.GetBool(AdminAPIEnabledKey)
	if err != nil {
		return nil, err
	}
	if adminAPIEnabled && jwtSecret == "" {
		return nil, errAdminRequiresSecret
	}

	profileDir, err := flags.GetString(ProfileDirKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPHost:        httpHost,
		HTTPPort:        httpPort,
		GenesisFile:     genesisFile,
		ConfigFile:      configFile,
		DBDir:           dbDir,
		AllowedOrigins:  allowedOrigins,
		AllowedHosts:    allowedHosts,
		JWTSecret:       jwtSecret,
		ShutdownTimeout: shutdownTimeout,
		AdminAPIEnabled: adminAPIEnabled,
		ProfileDir:      profileDir,
	}, nil
}
