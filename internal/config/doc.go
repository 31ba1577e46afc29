// Package config provides layered configuration for imepad.
//
// Settings are resolved from, in increasing priority:
//
//   - built-in defaults (Default)
//   - a TOML file, with optional "@include" files beneath it
//   - IMEPAD_* environment variables
//
// Command-line flags are applied by the caller after Load returns.
//
// Example file:
//
//	[textarea]
//	hint = "Type something..."
//	unfocusedHint = "Focus the window"
//	caret = "│"
//	preeditColor = "#ff8800"
//
//	[console]
//	echo = true
//	plain = false
//
//	[logging]
//	level = "info"
//	file = "/tmp/imepad.log"
package config
