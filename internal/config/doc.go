// Package config loads marquee's application settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/marquee/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/marquee/config.toml
//   - Deck: ~/.config/marquee/deck.toml
//   - Log file: ~/.local/state/marquee/marquee.log
//   - Log level: info
//   - Cell width: 8 pixels per terminal column
//   - Watch: off
//
// # TOML Format
//
//	deck = "~/slides/front.yaml"
//	log_file = "~/.local/state/marquee/marquee.log"
//	log_level = "debug"
//	cell_width_px = 9
//	watch = true
//
// Every field is optional. Paths get tilde expansion and are made absolute.
// cell_width_px converts mouse drags measured in columns into the pixel
// distances the swipe threshold is defined in.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error, so marquee runs without any setup.
// Command-line flags override the loaded values in the app package.
package config
