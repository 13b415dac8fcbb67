// Package intent decides whether a query is small talk that can be answered
// from a fixed table, or a project request that needs the agent.
package intent
