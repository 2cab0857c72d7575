package config

import (
	"os"

	"github.com/spf13/viper"
)

const (
	defaultEnv            = "local"
	defaultHTTPPort       = 81
	defaultMonitoringPort = 8080
	defaultDBPort         = "3306"
	defaultRegion         = "us-east-1"
	defaultEndpoint       = "s3.amazonaws.com"
	defaultCacheDir       = "static"
	defaultGroupName      = "Shruti and Maria"
	defaultSlogan         = "Automating the Cloud, One Pod at a Time!"
)

// Config is the read-only application configuration. It is built once at startup
// and handed to the components that need it.
type Config struct {
	Env            string         // Env is the current environment: local, development, production.
	HTTPPort       int            // HTTPPort is the port the employee UI listens on.
	MonitoringPort int            // MonitoringPort serves /metrics and /healthz.
	Database       DatabaseConfig // Database holds the relational store settings.
	Storage        StorageConfig  // Storage holds the object storage settings for the background image.
	Display        DisplayConfig  // Display holds the strings shown on every page.
}

// DatabaseConfig struct holds the configuration details for connecting to the employee database.
type DatabaseConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// StorageConfig describes where the background image lives.
type StorageConfig struct {
	Bucket          string
	Key             string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string // SessionToken is set only for temporary credentials.
	Endpoint        string // Endpoint is the S3-compatible host, with or without scheme.
	CacheDir        string // CacheDir is where downloaded objects are written.
}

// DisplayConfig holds the group name and slogan shown in every page header.
type DisplayConfig struct {
	GroupName string
	Slogan    string
}

// MustLoad reads the configuration from the environment. When CONFIG_PATH is set the file
// it names is read first and environment variables override its values.
// Missing settings are never an error; only an unreadable CONFIG_PATH panics.
func MustLoad() *Config {
	vpr := viper.New()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}
		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	vpr.AutomaticEnv()

	vpr.SetDefault("APP_ENV", defaultEnv)
	vpr.SetDefault("APP_PORT", defaultHTTPPort)
	vpr.SetDefault("MONITORING_PORT", defaultMonitoringPort)
	vpr.SetDefault("DBPORT", defaultDBPort)
	vpr.SetDefault("AWS_REGION", defaultRegion)
	vpr.SetDefault("S3_ENDPOINT", defaultEndpoint)
	vpr.SetDefault("STATIC_DIR", defaultCacheDir)
	vpr.SetDefault("GROUP_NAME", defaultGroupName)
	vpr.SetDefault("SLOGAN", defaultSlogan)

	return &Config{
		Env:            vpr.GetString("APP_ENV"),
		HTTPPort:       vpr.GetInt("APP_PORT"),
		MonitoringPort: vpr.GetInt("MONITORING_PORT"),
		Database: DatabaseConfig{
			Host:     vpr.GetString("DBHOST"),
			Port:     vpr.GetString("DBPORT"),
			User:     vpr.GetString("DBUSER"),
			Password: vpr.GetString("DBPWD"),
			Name:     vpr.GetString("DATABASE"),
		},
		Storage: StorageConfig{
			Bucket:          vpr.GetString("S3_BUCKET"),
			Key:             vpr.GetString("S3_KEY"),
			Region:          vpr.GetString("AWS_REGION"),
			AccessKeyID:     vpr.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: vpr.GetString("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    vpr.GetString("AWS_SESSION_TOKEN"),
			Endpoint:        vpr.GetString("S3_ENDPOINT"),
			CacheDir:        vpr.GetString("STATIC_DIR"),
		},
		Display: DisplayConfig{
			GroupName: vpr.GetString("GROUP_NAME"),
			Slogan:    vpr.GetString("SLOGAN"),
		},
	}
}

// Configured reports whether every setting needed to download the background image is present.
func (s StorageConfig) Configured() bool {
	return s.Bucket != "" && s.Key != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}
