// Package config provides configuration parsing for admindash.
//
// The configuration is stored in admindash.json (or admindash.toml) at the
// project root. Every field has a default, so the file is optional.
// Durations are written as Go duration strings.
//
// # Configuration File Structure
//
//	{
//	  "server": {"host": "0.0.0.0", "port": 3000, "shutdownTimeout": "10s"},
//	  "loader": {"minDelay": "300ms", "placeholderDelay": "300ms", "slowThreshold": "8s"},
//	  "mocks": {"enabled": true, "readyTimeout": "5s"},
//	  "cvStore": {"backend": "redis", "redis": {"addr": "localhost:6379"}},
//	  "session": {"cookieName": "admindash_session", "idleTimeout": "30m"},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// The same settings in TOML use snake_case keys:
//
//	[loader]
//	min_delay = "300ms"
//
// # Environment
//
// ADMINDASH_* variables override file values; see ApplyEnv. The one most
// deployments set is ADMINDASH_ENABLE_MOCKS.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
