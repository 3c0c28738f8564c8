package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	timex "github.com/ferdiebergado/lmskit/internal/pkg/time"
)

type AppOptions struct {
	Env      string `json:"env,omitempty" env:"ENV"`
	LogLevel string `json:"log_level,omitempty" env:"LOG_LEVEL"`
}

type ServerOptions struct {
	URL             string         `json:"url,omitempty" env:"URL"`
	Port            int            `json:"port,omitempty" env:"PORT"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
	AllowedOrigins  []string       `json:"allowed_origins,omitempty" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type DBOptions struct {
	Driver          string         `json:"driver,omitempty"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`
}

// RedisOptions configures the session backend. An empty Addr selects the in-memory store.
type RedisOptions struct {
	Addr     string `json:"addr,omitempty" env:"REDIS_ADDR"`
	Password string `json:"-" env:"REDIS_PASSWORD"`
	DB       int    `json:"db,omitempty" env:"REDIS_DB"`
}

type JWTOptions struct {
	Issuer string `json:"issuer,omitempty"`
}

type SessionOptions struct {
	CookieName string         `json:"cookie_name,omitempty"`
	IDLength   uint32         `json:"id_length,omitempty"`
	MaxAge     timex.Duration `json:"max_age,omitempty"`
}

type CSRFOptions struct {
	CookieName  string         `json:"cookie_name,omitempty"`
	FieldName   string         `json:"field_name,omitempty"`
	TokenLength uint32         `json:"token_length,omitempty"`
	MaxAge      timex.Duration `json:"max_age,omitempty"`
}

// LMSOptions holds the public addresses of the learning site.
type LMSOptions struct {
	RootURL      string `json:"root_url,omitempty" env:"LMS_ROOT_URL"`
	Base         string `json:"base,omitempty" env:"LMS_BASE"`
	LanguageCode string `json:"language_code,omitempty" env:"LANGUAGE_CODE"`
}

type FeatureOptions struct {
	EnableMarketingSite bool `json:"enable_mktg_site,omitempty" env:"ENABLE_MKTG_SITE"`
}

// MarketingOptions is nil when the marketing URLs are not configured at all.
type MarketingOptions struct {
	URLs map[string]string `json:"urls,omitempty"`
}

type DarkLangOptions struct {
	CacheTTL timex.Duration `json:"cache_ttl,omitempty"`
}

type Neo4jOptions struct {
	URI      string `json:"uri,omitempty" env:"NEO4J_URI"`
	User     string `json:"user,omitempty" env:"NEO4J_USER"`
	Password string `json:"-" env:"NEO4J_PASSWORD"`
}

type Options struct {
	App       *AppOptions       `json:"app,omitempty"`
	Server    *ServerOptions    `json:"server,omitempty"`
	DB        *DBOptions        `json:"db,omitempty"`
	Redis     *RedisOptions     `json:"redis,omitempty"`
	JWT       *JWTOptions       `json:"jwt,omitempty"`
	Session   *SessionOptions   `json:"session,omitempty"`
	CSRF      *CSRFOptions      `json:"csrf,omitempty"`
	LMS       *LMSOptions       `json:"lms,omitempty"`
	Features  *FeatureOptions   `json:"features,omitempty"`
	Marketing *MarketingOptions `json:"marketing,omitempty"`
	DarkLang  *DarkLangOptions  `json:"darklang,omitempty"`
	Neo4j     *Neo4jOptions     `json:"neo4j,omitempty"`
}

func (o *Options) LogValue() slog.Value {
	var neo4jURI string
	if o.Neo4j != nil {
		neo4jURI = o.Neo4j.URI
	}

	return slog.GroupValue(
		slog.Any("app", o.App),
		slog.Any("server", o.Server),
		slog.Any("db", o.DB),
		slog.Any("session", o.Session),
		slog.Any("lms", o.LMS),
		slog.Any("features", o.Features),
		slog.Any("marketing", o.Marketing),
		slog.Any("darklang", o.DarkLang),
		slog.String("neo4j_uri", neo4jURI),
	)
}

// MarketingSiteEnabled reports whether the marketing site feature flag is on.
func (o *Options) MarketingSiteEnabled() bool {
	return o.Features != nil && o.Features.EnableMarketingSite
}

// Load reads the JSON config file and applies environment overrides.
func Load(cfgFile string) (*Options, error) {
	slog.Info("Loading config...")
	opts, err := parseCfgFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := overrideWithEnv(opts); err != nil {
		return nil, err
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", opts))
	return opts, nil
}

func parseCfgFile(cfgFile string) (*Options, error) {
	cfgFile = filepath.Clean(cfgFile)
	configFile, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	opts := defaults()
	if err := json.Unmarshal(configFile, opts); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return opts, nil
}

func overrideWithEnv(opts *Options) error {
	if err := env.Parse(opts); err != nil {
		return fmt.Errorf("override config with env: %w", err)
	}
	return nil
}

// defaults returns the sections every binary expects to be present. Marketing is
// left nil so that an absent section stays distinguishable from an empty one.
func defaults() *Options {
	return &Options{
		App:      &AppOptions{Env: "development", LogLevel: "INFO"},
		Server:   &ServerOptions{Port: 8888, MaxBodyBytes: 1 << 20},
		DB:       &DBOptions{Driver: "pgx"},
		Redis:    &RedisOptions{},
		JWT:      &JWTOptions{},
		Session:  &SessionOptions{CookieName: "sessionid", IDLength: 32},
		CSRF:     &CSRFOptions{CookieName: "csrftoken", FieldName: "csrf_token", TokenLength: 32},
		LMS:      &LMSOptions{LanguageCode: "en"},
		Features: &FeatureOptions{},
		DarkLang: &DarkLangOptions{},
		Neo4j:    &Neo4jOptions{},
	}
}
