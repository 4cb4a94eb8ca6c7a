package dwight

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/dwightbot/dwight-web/dwight/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log         LogConfig         `toml:"log"`
	Web         WebConfig         `toml:"web"`
	DB          database.DBConfig `toml:"db"`
	Discord     DiscordConfig     `toml:"discord"`
	Sounds      SoundsConfig      `toml:"sounds"`
	Rebuild     RebuildConfig     `toml:"rebuild"`
	Permissions PermissionsConfig `toml:"permissions"`
	Spaces      SpacesConfig      `toml:"spaces"`
	Metrics     MetricsConfig     `toml:"metrics"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Host           string      `toml:"host"`
	Port           int         `toml:"port"`
	FrontendURL    string      `toml:"frontend_url"`
	AllowedOrigins []string    `toml:"allowed_origins"`
	SessionKey     string      `toml:"session_key"`
	SecureCookies  bool        `toml:"secure_cookies"`
	RateLimit      int         `toml:"rate_limit"`
	// TrustedProxies are the addresses whose ProxyHeader names the client. Without them
	// the connection address is the client.
	TrustedProxies []string    `toml:"trusted_proxies"`
	ProxyHeader    string      `toml:"proxy_header"`
	OAuth          OAuthConfig `toml:"oauth"`
}

type OAuthConfig struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURL  string   `toml:"redirect_url"`
	Scopes       []string `toml:"scopes"`
}

type DiscordConfig struct {
	Token          string       `toml:"token"`
	BotUserID      snowflake.ID `toml:"bot_user_id"`
	RequestTimeout Duration     `toml:"request_timeout"`
}

type SoundsConfig struct {
	Folder                  string   `toml:"folder"`
	FFmpegPath              string   `toml:"ffmpeg_path"`
	Bitrate                 string   `toml:"bitrate"`
	DefaultLimit            int      `toml:"default_limit"`
	MaxNameLength           int      `toml:"max_name_length"`
	MaxUploadBytes          int      `toml:"max_upload_bytes"`
	TranscodeTimeout        Duration `toml:"transcode_timeout"`
	MaxConcurrentTranscodes int64    `toml:"max_concurrent_transcodes"`
}

type RebuildConfig struct {
	CallbackURL string   `toml:"callback_url"`
	Timeout     Duration `toml:"timeout"`
}

type PermissionsConfig struct {
	TTL                 Duration `toml:"ttl"`
	MembershipCacheSize int      `toml:"membership_cache_size"`
}

// SpacesConfig is optional; the artifact mirror is disabled while Bucket is empty.
type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	Endpoint string `toml:"endpoint"`
	Root     string `toml:"root"`
}

func (c SpacesConfig) Enabled() bool {
	return c.Bucket != ""
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Duration decodes TOML strings such as "45s" or "1m30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Secrets may come from the environment instead of the file.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"DWIGHT_DISCORD_TOKEN":       &c.Discord.Token,
		"DWIGHT_SESSION_KEY":         &c.Web.SessionKey,
		"DWIGHT_DB_PASSWORD":         &c.DB.Password,
		"DWIGHT_OAUTH_CLIENT_SECRET": &c.Web.OAuth.ClientSecret,
		"DWIGHT_SPACES_SECRET":       &c.Spaces.Secret,
	}
	for name, field := range overrides {
		if v, ok := lookup(name); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Web.Host == "" {
		c.Web.Host = "0.0.0.0"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8080
	}
	if c.Web.RateLimit == 0 {
		c.Web.RateLimit = 120
	}
	if len(c.Web.TrustedProxies) > 0 && c.Web.ProxyHeader == "" {
		c.Web.ProxyHeader = "X-Forwarded-For"
	}
	if len(c.Web.OAuth.Scopes) == 0 {
		c.Web.OAuth.Scopes = []string{"identify", "guilds"}
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.PoolSize == 0 {
		c.DB.PoolSize = 10
	}
	if c.Discord.RequestTimeout.Duration == 0 {
		c.Discord.RequestTimeout.Duration = 10 * time.Second
	}
	if c.Sounds.FFmpegPath == "" {
		c.Sounds.FFmpegPath = "ffmpeg"
	}
	if c.Sounds.Bitrate == "" {
		c.Sounds.Bitrate = "64k"
	}
	if c.Sounds.DefaultLimit == 0 {
		c.Sounds.DefaultLimit = 20
	}
	if c.Sounds.MaxNameLength == 0 {
		c.Sounds.MaxNameLength = 32
	}
	if c.Sounds.MaxUploadBytes == 0 {
		c.Sounds.MaxUploadBytes = 100 * 1024
	}
	if c.Sounds.TranscodeTimeout.Duration == 0 {
		c.Sounds.TranscodeTimeout.Duration = 45 * time.Second
	}
	if c.Sounds.MaxConcurrentTranscodes == 0 {
		c.Sounds.MaxConcurrentTranscodes = 2
	}
	if c.Rebuild.Timeout.Duration == 0 {
		c.Rebuild.Timeout.Duration = 10 * time.Second
	}
	if c.Permissions.TTL.Duration == 0 {
		c.Permissions.TTL.Duration = 60 * time.Second
	}
	if c.Permissions.MembershipCacheSize == 0 {
		c.Permissions.MembershipCacheSize = 10000
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("discord.token is required"))
	}
	if c.Discord.BotUserID == 0 {
		errs = append(errs, errors.New("discord.bot_user_id is required"))
	}
	if c.Rebuild.CallbackURL == "" {
		errs = append(errs, errors.New("rebuild.callback_url is required"))
	}
	if c.Sounds.Folder == "" {
		errs = append(errs, errors.New("sounds.folder is required"))
	}
	if len(c.Web.SessionKey) < 32 {
		errs = append(errs, errors.New("web.session_key must be at least 32 characters"))
	}
	if c.DB.Host == "" || c.DB.Database == "" {
		errs = append(errs, errors.New("db.host and db.database are required"))
	}
	if c.Sounds.DefaultLimit < 0 {
		errs = append(errs, errors.New("sounds.default_limit must not be negative"))
	}
	if c.Sounds.MaxConcurrentTranscodes < 0 {
		errs = append(errs, errors.New("sounds.max_concurrent_transcodes must not be negative"))
	}
	if format := strings.ToLower(c.Log.Format); format != "text" && format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Spaces.Enabled() && (c.Spaces.Key == "" || c.Spaces.Secret == "" || c.Spaces.Region == "") {
		errs = append(errs, errors.New("spaces.key, spaces.secret and spaces.region are required when spaces.bucket is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
