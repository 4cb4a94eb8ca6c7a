package dwight

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[log]
level = "debug"
format = "json"

[web]
port = 3001
frontend_url = "http://localhost:3000"
allowed_origins = ["http://localhost:3000"]
session_key = "0123456789abcdef0123456789abcdef"

[web.oauth]
client_id = "1234"
redirect_url = "http://localhost:3001/auth/callback"

[db]
host = "localhost"
user = "dwight"
database = "dwight"

[discord]
token = "from-file"
bot_user_id = 987654321
request_timeout = "5s"

[sounds]
folder = "/var/lib/dwight/sounds"
transcode_timeout = "1m30s"

[rebuild]
callback_url = "http://bot:8081/rebuild"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 3001, cfg.Web.Port)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, []string{"identify", "guilds"}, cfg.Web.OAuth.Scopes)
	assert.Equal(t, snowflake.ID(987654321), cfg.Discord.BotUserID)
	assert.Equal(t, 5*time.Second, cfg.Discord.RequestTimeout.Duration)
	assert.Equal(t, 90*time.Second, cfg.Sounds.TranscodeTimeout.Duration)
	assert.Equal(t, 5432, cfg.DB.Port)

	// defaults
	assert.Equal(t, 20, cfg.Sounds.DefaultLimit)
	assert.Equal(t, 100*1024, cfg.Sounds.MaxUploadBytes)
	assert.Equal(t, int64(2), cfg.Sounds.MaxConcurrentTranscodes)
	assert.Equal(t, 10*time.Second, cfg.Rebuild.Timeout.Duration)
	assert.Equal(t, 60*time.Second, cfg.Permissions.TTL.Duration)
	assert.Equal(t, 10000, cfg.Permissions.MembershipCacheSize)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Spaces.Enabled())
	assert.Empty(t, cfg.Web.ProxyHeader)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DWIGHT_DISCORD_TOKEN", "from-env")
	t.Setenv("DWIGHT_DB_PASSWORD", "s3cret")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, "s3cret", cfg.DB.Password)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to open config")

	_, err = LoadConfig(writeConfig(t, "[discord\ntoken ="))
	assert.ErrorContains(t, err, "failed to decode config")

	_, err = LoadConfig(writeConfig(t, "[discord]\nrequest_timeout = \"soon\"\n"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Discord.Token = "token"
		cfg.Discord.BotUserID = 1
		cfg.Rebuild.CallbackURL = "http://bot/rebuild"
		cfg.Sounds.Folder = "/tmp/sounds"
		cfg.Web.SessionKey = "0123456789abcdef0123456789abcdef"
		cfg.DB.Host = "localhost"
		cfg.DB.Database = "dwight"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Discord.Token = "" }, wantErr: "discord.token"},
		{name: "missing callback", mutate: func(c *Config) { c.Rebuild.CallbackURL = "" }, wantErr: "rebuild.callback_url"},
		{name: "short session key", mutate: func(c *Config) { c.Web.SessionKey = "short" }, wantErr: "web.session_key"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "partial spaces", mutate: func(c *Config) { c.Spaces.Bucket = "sounds" }, wantErr: "spaces.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_applyEnv_IgnoresEmpty(t *testing.T) {
	cfg := &Config{}
	cfg.Discord.Token = "keep"
	cfg.applyEnv(func(name string) (string, bool) {
		return "", name == "DWIGHT_DISCORD_TOKEN"
	})
	assert.Equal(t, "keep", cfg.Discord.Token)
}

func TestConfig_applyDefaults_ProxyHeader(t *testing.T) {
	cfg := &Config{}
	cfg.Web.TrustedProxies = []string{"10.0.0.1"}
	cfg.applyDefaults()
	assert.Equal(t, "X-Forwarded-For", cfg.Web.ProxyHeader)

	cfg = &Config{}
	cfg.Web.TrustedProxies = []string{"10.0.0.1"}
	cfg.Web.ProxyHeader = "X-Real-IP"
	cfg.applyDefaults()
	assert.Equal(t, "X-Real-IP", cfg.Web.ProxyHeader)
}
