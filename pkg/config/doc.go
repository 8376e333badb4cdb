// Package config loads ist's optional TOML configuration file, used to set
// defaults for flags the CLI would otherwise require on every invocation
// (worker count, transport, output directory, optional service addresses).
//
// Configuration is entirely optional: every field the file can set also has
// a CLI flag, and a missing file is not an error.
package config
