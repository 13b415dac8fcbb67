// Package installer runs a host package manager against a dependency
// manifest in the project directory. It is the install_dependencies tool.
//
// Unlike a fire-and-forget shell-out, Install reports a missing manifest
// before spawning anything and surfaces a non-zero exit as *ExitError with
// the captured stderr.
package installer
