// Package mcpserver exposes the tool set over the Model Context Protocol so
// editors and other agents can create directories, write files and install
// dependencies through this binary.
package mcpserver
