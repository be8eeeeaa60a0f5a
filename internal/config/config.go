package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/admindash/internal/errors"
	"github.com/vango-dev/admindash/pkg/loader"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "admindash.json"

	// TOMLFileName is the name of the TOML configuration file. It is only
	// read when ConfigFileName is absent.
	TOMLFileName = "admindash.toml"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultAPIBase is the default data API base URL. The mock worker
	// serves it when enabled.
	DefaultAPIBase = "http://api.admindash.local"

	// DefaultCookieName is the default session cookie name.
	DefaultCookieName = "admindash_session"
)

// CV store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendS3     = "s3"
	BackendRedis  = "redis"
)

// Config represents the complete admindash configuration.
type Config struct {
	// Name is shown in the document title.
	Name string `json:"name,omitempty" toml:"name"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server" toml:"server"`

	// Loader contains deferred view loading timings.
	Loader LoaderConfig `json:"loader" toml:"loader"`

	// API is the backend the data-driven views fetch from.
	API APIConfig `json:"api" toml:"api"`

	// Mocks controls the request-mocking worker.
	Mocks MocksConfig `json:"mocks" toml:"mocks"`

	// CVStore selects and configures the CV persistence backend.
	CVStore CVStoreConfig `json:"cvStore" toml:"cv_store"`

	// Session contains session settings.
	Session SessionConfig `json:"session" toml:"session"`

	// Log contains logging settings.
	Log LogConfig `json:"log" toml:"log"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" toml:"metrics"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" toml:"host"`
	Port int    `json:"port,omitempty" toml:"port"`

	// ShutdownTimeout bounds graceful shutdown (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" toml:"shutdown_timeout"`

	// AssetPath is the URL prefix of static assets.
	AssetPath string `json:"assetPath,omitempty" toml:"asset_path"`
}

// LoaderConfig contains deferred view loading timings.
type LoaderConfig struct {
	// MinDelay is the floor before a view becomes ready.
	MinDelay string `json:"minDelay,omitempty" toml:"min_delay"`

	// PlaceholderDelay is how long a render waits before showing the
	// placeholder.
	PlaceholderDelay string `json:"placeholderDelay,omitempty" toml:"placeholder_delay"`

	// SlowThreshold is when a pending render logs a warning. "0" disables it.
	SlowThreshold string `json:"slowThreshold,omitempty" toml:"slow_threshold"`

	// PerceivedLatency, when set, replaces both MinDelay and
	// PlaceholderDelay.
	PerceivedLatency string `json:"perceivedLatency,omitempty" toml:"perceived_latency"`
}

// APIConfig locates the dashboard's data API.
type APIConfig struct {
	// BaseURL prefixes every API path (e.g., "http://api.admindash.local").
	BaseURL string `json:"baseUrl,omitempty" toml:"base_url"`

	// Timeout bounds a single API request.
	Timeout string `json:"timeout,omitempty" toml:"timeout"`
}

// MocksConfig controls the request-mocking worker.
type MocksConfig struct {
	// Enabled starts the worker and makes rendering wait for it.
	Enabled bool `json:"enabled,omitempty" toml:"enabled"`

	// ReadyTimeout bounds how long rendering waits for the worker.
	ReadyTimeout string `json:"readyTimeout,omitempty" toml:"ready_timeout"`

	// Latency is added to every mocked response.
	Latency string `json:"latency,omitempty" toml:"latency"`
}

// CVStoreConfig selects and configures the CV persistence backend.
type CVStoreConfig struct {
	// Backend is one of memory, file, s3, redis.
	Backend string `json:"backend,omitempty" toml:"backend"`

	File  FileStoreConfig  `json:"file" toml:"file"`
	S3    S3StoreConfig    `json:"s3" toml:"s3"`
	Redis RedisStoreConfig `json:"redis" toml:"redis"`
}

// FileStoreConfig configures the file backend.
type FileStoreConfig struct {
	Dir string `json:"dir,omitempty" toml:"dir"`
}

// S3StoreConfig configures the S3 backend.
type S3StoreConfig struct {
	Bucket   string `json:"bucket,omitempty" toml:"bucket"`
	Region   string `json:"region,omitempty" toml:"region"`
	Prefix   string `json:"prefix,omitempty" toml:"prefix"`
	Endpoint string `json:"endpoint,omitempty" toml:"endpoint"`
}

// RedisStoreConfig configures the redis backend.
type RedisStoreConfig struct {
	Addr     string `json:"addr,omitempty" toml:"addr"`
	Password string `json:"password,omitempty" toml:"password"`
	DB       int    `json:"db,omitempty" toml:"db"`
	Prefix   string `json:"prefix,omitempty" toml:"prefix"`

	// TTL expires saved CVs. Empty keeps them forever.
	TTL string `json:"ttl,omitempty" toml:"ttl"`
}

// SessionConfig contains session settings.
type SessionConfig struct {
	CookieName string `json:"cookieName,omitempty" toml:"cookie_name"`

	// IdleTimeout discards sessions not seen for this long (e.g., "30m").
	IdleTimeout string `json:"idleTimeout,omitempty" toml:"idle_timeout"`

	// CleanupInterval is how often expired sessions are swept.
	CleanupInterval string `json:"cleanupInterval,omitempty" toml:"cleanup_interval"`

	// Secure marks the cookie Secure.
	Secure bool `json:"secure,omitempty" toml:"secure"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" toml:"level"`

	// Format is text or json.
	Format string `json:"format,omitempty" toml:"format"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" toml:"enabled"`
	Path    string `json:"path,omitempty" toml:"path"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "Admin Dashboard",
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: "10s",
			AssetPath:       "/assets",
		},
		Loader: LoaderConfig{
			MinDelay:         loader.DefaultMinDelay.String(),
			PlaceholderDelay: loader.DefaultPlaceholderDelay.String(),
			SlowThreshold:    loader.DefaultSlowThreshold.String(),
		},
		API: APIConfig{
			BaseURL: DefaultAPIBase,
			Timeout: "10s",
		},
		Mocks: MocksConfig{
			ReadyTimeout: "5s",
		},
		CVStore: CVStoreConfig{
			Backend: BackendMemory,
			File:    FileStoreConfig{Dir: "data/cv"},
			S3:      S3StoreConfig{Region: "us-east-1", Prefix: "cv/"},
			Redis:   RedisStoreConfig{Addr: "localhost:6379", Prefix: "admindash:cv:"},
		},
		Session: SessionConfig{
			CookieName:      DefaultCookieName,
			IdleTimeout:     "30m",
			CleanupInterval: "1m",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// admindash.json, then admindash.toml, and returns defaults when neither
// exists.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from the specified file path. Files ending
// in .toml are decoded as TOML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New("D001").WithDetail("No configuration file at " + path).Wrap(err)
			}
			return nil, errors.New("D001").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid TOML")
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New("D001").
				WithDetail("Unknown keys in " + filepath.Base(path) + ": " + strings.Join(keys, ", "))
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New("D001").WithDetail("No configuration file at " + path).Wrap(err)
			}
			return nil, errors.New("D001").Wrap(err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.New("D001").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as TOML when the
// path ends in .toml.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.New("D001").Wrap(err)
		}
	} else {
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return errors.New("D001").Wrap(err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.New("D001").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Server.AssetPath == "" {
		c.Server.AssetPath = d.Server.AssetPath
	}
	if c.Loader.MinDelay == "" {
		c.Loader.MinDelay = d.Loader.MinDelay
	}
	if c.Loader.PlaceholderDelay == "" {
		c.Loader.PlaceholderDelay = d.Loader.PlaceholderDelay
	}
	if c.Loader.SlowThreshold == "" {
		c.Loader.SlowThreshold = d.Loader.SlowThreshold
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.Timeout == "" {
		c.API.Timeout = d.API.Timeout
	}
	if c.Mocks.ReadyTimeout == "" {
		c.Mocks.ReadyTimeout = d.Mocks.ReadyTimeout
	}
	if c.CVStore.Backend == "" {
		c.CVStore.Backend = d.CVStore.Backend
	}
	if c.CVStore.File.Dir == "" {
		c.CVStore.File.Dir = d.CVStore.File.Dir
	}
	if c.CVStore.S3.Region == "" {
		c.CVStore.S3.Region = d.CVStore.S3.Region
	}
	if c.CVStore.Redis.Prefix == "" {
		c.CVStore.Redis.Prefix = d.CVStore.Redis.Prefix
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = d.Session.CookieName
	}
	if c.Session.IdleTimeout == "" {
		c.Session.IdleTimeout = d.Session.IdleTimeout
	}
	if c.Session.CleanupInterval == "" {
		c.Session.CleanupInterval = d.Session.CleanupInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("D002").
			WithField("server.port").
			WithDetail("Port must be between 0 and 65535")
	}

	durations := []struct {
		field, value string
		optional     bool
	}{
		{"server.shutdownTimeout", c.Server.ShutdownTimeout, false},
		{"loader.minDelay", c.Loader.MinDelay, false},
		{"loader.placeholderDelay", c.Loader.PlaceholderDelay, false},
		{"loader.slowThreshold", c.Loader.SlowThreshold, false},
		{"loader.perceivedLatency", c.Loader.PerceivedLatency, true},
		{"api.timeout", c.API.Timeout, false},
		{"mocks.readyTimeout", c.Mocks.ReadyTimeout, false},
		{"mocks.latency", c.Mocks.Latency, true},
		{"cvStore.redis.ttl", c.CVStore.Redis.TTL, true},
		{"session.idleTimeout", c.Session.IdleTimeout, false},
		{"session.cleanupInterval", c.Session.CleanupInterval, false},
	}
	for _, d := range durations {
		if d.optional && d.value == "" {
			continue
		}
		if _, err := parseDuration(d.field, d.value); err != nil {
			return err
		}
	}

	switch c.CVStore.Backend {
	case BackendMemory, BackendFile:
	case BackendS3:
		if c.CVStore.S3.Bucket == "" {
			return errors.New("D002").WithField("cvStore.s3.bucket").WithDetail("The s3 backend needs a bucket")
		}
	case BackendRedis:
		if c.CVStore.Redis.Addr == "" {
			return errors.New("D002").WithField("cvStore.redis.addr").WithDetail("The redis backend needs an address")
		}
	default:
		return errors.New("D303").WithField("cvStore.backend").WithDetail("Got " + strconv.Quote(c.CVStore.Backend))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("D002").WithField("log.level").WithDetail("Level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("D002").WithField("log.format").WithDetail("Format must be text or json")
	}

	if c.Session.CookieName == "" {
		return errors.New("D002").WithField("session.cookieName").WithDetail("Cookie name is required")
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the server's base URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// LoaderTimings returns the loader configuration. PerceivedLatency, when
// set, overrides both delays.
func (c *Config) LoaderTimings() (loader.Config, error) {
	if c.Loader.PerceivedLatency != "" {
		d, err := parseDuration("loader.perceivedLatency", c.Loader.PerceivedLatency)
		if err != nil {
			return loader.Config{}, err
		}
		lc := loader.PerceivedLatency(d)
		lc.SlowThreshold, err = parseDuration("loader.slowThreshold", c.Loader.SlowThreshold)
		return lc, err
	}

	var (
		lc  loader.Config
		err error
	)
	if lc.MinDelay, err = parseDuration("loader.minDelay", c.Loader.MinDelay); err != nil {
		return loader.Config{}, err
	}
	if lc.PlaceholderDelay, err = parseDuration("loader.placeholderDelay", c.Loader.PlaceholderDelay); err != nil {
		return loader.Config{}, err
	}
	if lc.SlowThreshold, err = parseDuration("loader.slowThreshold", c.Loader.SlowThreshold); err != nil {
		return loader.Config{}, err
	}
	return lc, nil
}

// Duration parses one of the duration fields by its JSON path, returning 0
// for empty optional values. Unknown fields panic.
func (c *Config) Duration(field string) time.Duration {
	var s string
	switch field {
	case "server.shutdownTimeout":
		s = c.Server.ShutdownTimeout
	case "api.timeout":
		s = c.API.Timeout
	case "mocks.readyTimeout":
		s = c.Mocks.ReadyTimeout
	case "mocks.latency":
		s = c.Mocks.Latency
	case "cvStore.redis.ttl":
		s = c.CVStore.Redis.TTL
	case "session.idleTimeout":
		s = c.Session.IdleTimeout
	case "session.cleanupInterval":
		s = c.Session.CleanupInterval
	default:
		panic("config: unknown duration field " + field)
	}
	if s == "" {
		return 0
	}
	d, err := parseDuration(field, s)
	if err != nil {
		return 0
	}
	return d
}

func parseDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.New("D002").
			WithField(field).
			WithDetail(err.Error()).
			WithSuggestion(`Use a Go duration such as "300ms" or "5s"`)
	}
	if d < 0 {
		return 0, errors.New("D002").WithField(field).WithDetail("Duration must not be negative")
	}
	return d, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, TOMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the directory containing a
// configuration file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("D001").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest directory at or
// above the working directory that has a configuration file, falling back
// to defaults, then applies environment overrides.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg := New()
	if root, err := FindProjectRoot(wd); err == nil {
		if cfg, err = Load(root); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}
