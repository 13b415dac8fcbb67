// Package llm is the narrow request/response boundary between the agent and
// a chat-completion provider.
//
// Client.Chat takes the conversation so far plus the advertised tool
// definitions and returns one assistant message, which either carries text
// or a list of tool calls. Three providers are available: "openai" and
// "azure" through the Azure OpenAI SDK, and "langchain" through langchaingo's
// OpenAI-compatible client. Each client accumulates token usage across calls.
package llm
