// Package workflow sequences one conversational turn through two nodes:
// process_query classifies the query and, for project requests, runs the
// agent; execute_action turns the resulting action into the displayed
// result. Each Invoke starts from a fresh State.
package workflow
