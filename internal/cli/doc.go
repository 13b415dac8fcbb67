// Package cli defines the Cobra command tree for the setupassist CLI. Each
// file registers one top-level command (chat, ask, tool, serve, doctor,
// config, version) with the root command. Commands only parse flags, wire
// components from config.Settings, and format output; the work happens in
// the internal packages.
package cli
