package config_test

import (
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/hestia/internal/config"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("MONITORING_PORT", "9090")
	t.Setenv("DBHOST", "db.internal")
	t.Setenv("DBPORT", "5432")
	t.Setenv("DBUSER", "admin")
	t.Setenv("DBPWD", "adminpass")
	t.Setenv("DATABASE", "employees")
	t.Setenv("S3_BUCKET", "backgrounds")
	t.Setenv("S3_KEY", "office.jpg")
	t.Setenv("AWS_REGION", "eu-central-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIA")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_SESSION_TOKEN", "token")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("STATIC_DIR", "/var/cache/static")
	t.Setenv("GROUP_NAME", "Team Blue")
	t.Setenv("SLOGAN", "Ship it")

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8081, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.MonitoringPort)
	assert.Equal(t, config.DatabaseConfig{
		Host:     "db.internal",
		Port:     "5432",
		User:     "admin",
		Password: "adminpass",
		Name:     "employees",
	}, cfg.Database)
	assert.Equal(t, config.StorageConfig{
		Bucket:          "backgrounds",
		Key:             "office.jpg",
		Region:          "eu-central-1",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		Endpoint:        "http://localhost:9000",
		CacheDir:        "/var/cache/static",
	}, cfg.Storage)
	assert.Equal(t, config.DisplayConfig{GroupName: "Team Blue", Slogan: "Ship it"}, cfg.Display)
}

// clearEnv blanks every setting; viper ignores empty variables, so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"CONFIG_PATH", "APP_ENV", "APP_PORT", "MONITORING_PORT", "DBHOST", "DBPORT", "DBUSER", "DBPWD",
		"DATABASE", "S3_BUCKET", "S3_KEY", "AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"AWS_SESSION_TOKEN", "S3_ENDPOINT", "STATIC_DIR", "GROUP_NAME", "SLOGAN",
	} {
		t.Setenv(key, "")
	}
}

func TestMustLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 81, cfg.HTTPPort)
	assert.Equal(t, 8080, cfg.MonitoringPort)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.Equal(t, "s3.amazonaws.com", cfg.Storage.Endpoint)
	assert.Equal(t, "static", cfg.Storage.CacheDir)
	assert.Equal(t, "Shruti and Maria", cfg.Display.GroupName)
	assert.Equal(t, "Automating the Cloud, One Pod at a Time!", cfg.Display.Slogan)
	assert.Empty(t, cfg.Database.Host)
	assert.Empty(t, cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.Configured())
}

func TestMustLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	defer filet.CleanUp(t)

	path := filepath.Join(filet.TmpDir(t, ""), "hestia.yaml")
	filet.File(t, path, "DBHOST: file-host\nDATABASE: from-file\nGROUP_NAME: File Group\n")

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATABASE", "from-env")

	cfg := config.MustLoad()

	assert.Equal(t, "file-host", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Name, "environment overrides the file")
	assert.Equal(t, "File Group", cfg.Display.GroupName)
	assert.Equal(t, "3306", cfg.Database.Port)
}

func TestMustLoad_MissingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	t.Setenv("CONFIG_PATH", path)

	assert.PanicsWithValue(t, "config file does not exist: "+path, func() {
		config.MustLoad()
	})
}

func TestStorageConfig_Configured(t *testing.T) {
	t.Parallel()

	full := config.StorageConfig{
		Bucket:          "backgrounds",
		Key:             "office.jpg",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "secret",
	}
	require.True(t, full.Configured())

	tests := []struct {
		name   string
		mutate func(*config.StorageConfig)
	}{
		{"no bucket", func(c *config.StorageConfig) { c.Bucket = "" }},
		{"no key", func(c *config.StorageConfig) { c.Key = "" }},
		{"no access key", func(c *config.StorageConfig) { c.AccessKeyID = "" }},
		{"no secret", func(c *config.StorageConfig) { c.SecretAccessKey = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := full
			tt.mutate(&cfg)
			assert.False(t, cfg.Configured())
		})
	}
}
