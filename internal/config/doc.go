// Package config handles loading studyhall's configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/studyhall/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. A .env file in the working directory, then process environment
//     variables, override file values
//
// # TOML Format
//
// Example config.toml:
//
//	server_url = "127.0.0.1:8080"
//	poll_seconds = 3
//
// Both fields are optional. poll_seconds is the chat poll cadence.
//
// # Environment Overrides
//
//   - STUDYHALL_SERVER_URL: server base URL (host:port or full URL)
//   - STUDYHALL_POLL_SECONDS: chat poll cadence in seconds
//
// Missing config files are NOT an error - defaults are used instead,
// so studyhall works out of the box against a local server.
package config
