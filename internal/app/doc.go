// Package app provides the orchestration layer for the studyhall
// application.
//
// # Overview
//
// This package is the composition root: it loads configuration and
// preferences, restores the saved session, builds the API client and
// hands everything to the UI. Business logic lives in the domain
// packages (api, chat, session, ui); app only connects them.
//
// # Startup Sequence
//
//  1. Load server configuration from ~/.config/studyhall/config.toml
//     (environment variables override the file)
//  2. Load user preferences (theme) from ~/.config/studyhall/prefs.toml
//  3. Build the HTTP API client for the studyhall server
//  4. Restore the persisted session, if any; a missing or broken
//     prefs file starts the app signed out
//  5. Start the TUI and block until the user exits or the context
//     is cancelled
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration file
//   - API client initialization failure (malformed server URL)
//
// Recoverable conditions (logged, startup continues):
//   - Missing or unreadable preferences file
//   - No persisted session
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: path to config.toml (default: ~/.config/studyhall/config.toml)
//   - PrefsPath: path to prefs.toml (default: ~/.config/studyhall/prefs.toml)
//   - PollEvery: chat polling interval in seconds (default: from config, 3s)
package app
