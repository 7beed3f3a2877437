// Package config loads the process-wide configuration from environment
// variables. The configuration is read once at startup and passed explicitly
// into each component; nothing in this package is mutable after Load returns.
package config
