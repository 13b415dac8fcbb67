// Package config manages user-level settings stored at ~/.setupassist/config.yaml,
// environment overrides under the SETUPASSIST_ prefix, and the .env file that
// carries the LLM credential. Load is called once at startup; Current turns the
// merged view into a Settings value that is passed explicitly to the components
// that need it.
package config
