// Package agent runs the tool-calling loop that turns a project request
// into filesystem actions.
//
// Run sends the system prompt and the user's query to an llm.Client,
// executes every tool call in the reply through the tool set, feeds the
// results back, and stops at the first reply without tool calls. The loop is
// bounded by a maximum number of model calls and a prompt token budget.
package agent
