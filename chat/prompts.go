package chat

import "strings"

// SystemPrompt is the first message of every new conversation. It pins the
// model to the structured tool-call channel; smaller local models otherwise
// drift into inline pseudo-tags that no parser ever sees.
func SystemPrompt() string {
	return strings.Join([]string{
		"You are a helpful assistant embedded in a tile-based workspace.",
		"You can call tools to act on the user's behalf.",
		"",
		"Tool-call rules:",
		"- When you invoke a tool, always use the structured tool_calls field of your response.",
		"- Never write tool calls inline in your message text, and never use pseudo-tags such as <tool_call> or [TOOL].",
		"- Leave the message content empty when you are calling a tool.",
		"- After calling a tool, wait for its result before continuing your answer.",
	}, "\n")
}

// ReinforcementPrompt is appended periodically to long conversations to
// keep tool-call formatting on the structured channel.
func ReinforcementPrompt() string {
	return strings.Join([]string{
		"Reminder of the tool-call rules:",
		"use the structured tool_calls field for every tool invocation,",
		"never inline pseudo-tags, leave content empty when calling a tool,",
		"and wait for the tool result before continuing.",
	}, " ")
}

// ToolFollowUpPrompt is appended after a tool result so the continuation
// call answers from the result instead of re-invoking the tool.
func ToolFollowUpPrompt() string {
	return "Summarize the tool result above for the user in one or two short sentences. " +
		"Do not call any tool again. The user cannot see tool results, so your reply must stand on its own."
}
