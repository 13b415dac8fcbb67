// Package tools defines the fixed capability set the agent can call:
// create_directory, create_file and install_dependencies.
//
// Each tool has an embedded JSON Schema that is both advertised to the
// language model and used to validate the model's arguments before
// dispatch. Set.Execute is the single entry point used by the agent loop
// and the MCP server.
package tools
