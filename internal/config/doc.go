// Package config loads runtime settings for the composer and the CLI.
//
// Settings come from, in increasing priority: DefaultConfig, an optional YAML
// file, a .env file and MIXIN_* environment variables. The result is checked
// with struct tags before use.
package config
