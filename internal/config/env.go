package config

import (
	"strconv"
	"strings"

	"github.com/vango-dev/admindash/internal/errors"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "ADMINDASH_"

// envVar binds one environment variable to a config field.
type envVar struct {
	name string
	set  func(c *Config, v string) error
}

func stringVar(name string, field func(*Config) *string) envVar {
	return envVar{name: name, set: func(c *Config, v string) error {
		*field(c) = v
		return nil
	}}
}

func intVar(name string, field func(*Config) *int) envVar {
	return envVar{name: name, set: func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}}
}

func boolVar(name string, field func(*Config) *bool) envVar {
	return envVar{name: name, set: func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}}
}

var envVars = []envVar{
	boolVar("ENABLE_MOCKS", func(c *Config) *bool { return &c.Mocks.Enabled }),
	stringVar("API_BASE", func(c *Config) *string { return &c.API.BaseURL }),
	stringVar("MOCKS_LATENCY", func(c *Config) *string { return &c.Mocks.Latency }),
	stringVar("HOST", func(c *Config) *string { return &c.Server.Host }),
	intVar("PORT", func(c *Config) *int { return &c.Server.Port }),
	stringVar("MIN_DELAY", func(c *Config) *string { return &c.Loader.MinDelay }),
	stringVar("PLACEHOLDER_DELAY", func(c *Config) *string { return &c.Loader.PlaceholderDelay }),
	stringVar("PERCEIVED_LATENCY", func(c *Config) *string { return &c.Loader.PerceivedLatency }),
	stringVar("CV_STORE", func(c *Config) *string { return &c.CVStore.Backend }),
	stringVar("CV_DIR", func(c *Config) *string { return &c.CVStore.File.Dir }),
	stringVar("S3_BUCKET", func(c *Config) *string { return &c.CVStore.S3.Bucket }),
	stringVar("S3_REGION", func(c *Config) *string { return &c.CVStore.S3.Region }),
	stringVar("S3_ENDPOINT", func(c *Config) *string { return &c.CVStore.S3.Endpoint }),
	stringVar("REDIS_ADDR", func(c *Config) *string { return &c.CVStore.Redis.Addr }),
	stringVar("REDIS_PASSWORD", func(c *Config) *string { return &c.CVStore.Redis.Password }),
	intVar("REDIS_DB", func(c *Config) *int { return &c.CVStore.Redis.DB }),
	boolVar("SECURE_COOKIES", func(c *Config) *bool { return &c.Session.Secure }),
	stringVar("LOG_LEVEL", func(c *Config) *string { return &c.Log.Level }),
	stringVar("LOG_FORMAT", func(c *Config) *string { return &c.Log.Format }),
	boolVar("METRICS", func(c *Config) *bool { return &c.Metrics.Enabled }),
}

// EnvNames returns every recognized environment variable.
func EnvNames() []string {
	names := make([]string, len(envVars))
	for i, ev := range envVars {
		names[i] = EnvPrefix + ev.name
	}
	return names
}

// ApplyEnv overrides fields from environment variables found by lookup
// (usually os.LookupEnv). Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, ev := range envVars {
		name := EnvPrefix + ev.name
		v, ok := lookup(name)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if err := ev.set(c, v); err != nil {
			return errors.New("D003").WithField(name).Wrap(err)
		}
	}
	return nil
}
