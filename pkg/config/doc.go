// Package config loads the immutable service configuration from defaults, an
// optional YAML file, an optional .env file and the process environment.
package config
