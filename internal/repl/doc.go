// Package repl is the interactive front end: it prompts for a line, runs it
// through the workflow graph, and prints the result until the user types
// exit, input ends, or the context is cancelled.
package repl
