package provider

import (
	"encoding/json"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"

	"tilechat/chat"
)

// ParseToolArguments parses a string-encoded JSON arguments blob into a
// map. Malformed JSON yields an empty map, never an error; a model that
// garbles its arguments still produces a well-formed tool call.
func ParseToolArguments(argsJSON string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return make(map[string]any)
	}
	if args == nil {
		args = make(map[string]any)
	}
	return args
}

// --- Ollama conversions ---

func toOllamaMessages(messages []chat.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{
			Role:      msg.Role,
			Content:   msg.Content,
			ToolCalls: toOllamaToolCalls(msg.ToolCalls),
		}
	}
	return result
}

func toOllamaToolCalls(calls []chat.ToolCall) []api.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	result := make([]api.ToolCall, len(calls))
	for i, call := range calls {
		result[i] = api.ToolCall{
			Function: api.ToolCallFunction{
				Name:      call.Name,
				Arguments: api.ToolCallFunctionArguments(call.Arguments),
			},
		}
	}
	return result
}

// fromOllamaToolCalls converts response tool calls. A response without a
// tool_calls field simply yields nil, not an error.
func fromOllamaToolCalls(calls []api.ToolCall) []chat.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	result := make([]chat.ToolCall, len(calls))
	for i, call := range calls {
		args := map[string]any(call.Function.Arguments)
		if args == nil {
			args = make(map[string]any)
		}
		result[i] = chat.ToolCall{
			Name:      call.Function.Name,
			Arguments: args,
		}
	}
	return result
}

func toOllamaTools(tools []mcptypes.Tool) []api.Tool {
	if len(tools) == 0 {
		return nil
	}
	result := make([]api.Tool, len(tools))
	for i, tool := range tools {
		result[i] = api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  toOllamaParameters(tool.InputSchema),
			},
		}
	}
	return result
}

func toOllamaParameters(schema mcptypes.ToolInputSchema) api.ToolFunctionParameters {
	params := api.ToolFunctionParameters{
		Type:       schema.Type,
		Required:   schema.Required,
		Properties: make(map[string]api.ToolProperty, len(schema.Properties)),
	}
	for name, prop := range schema.Properties {
		params.Properties[name] = toOllamaProperty(prop)
	}
	return params
}

// toOllamaProperty round-trips one JSON-schema property into Ollama's
// typed form. api.PropertyType accepts both "string" and ["string"], so
// a plain json round trip covers every shape we emit.
func toOllamaProperty(prop any) api.ToolProperty {
	raw, err := json.Marshal(prop)
	if err != nil {
		return api.ToolProperty{}
	}
	var out api.ToolProperty
	if err := json.Unmarshal(raw, &out); err != nil {
		return api.ToolProperty{}
	}
	return out
}

// --- OpenAI conversions ---

// toOpenAIMessages re-shapes internal messages into the hosted provider's
// schema. The notable divergence: an assistant turn that carried tool
// calls must string-encode each call's arguments.
func toOpenAIMessages(messages []chat.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			result[i] = openai.SystemMessage(msg.Content)
		case chat.RoleUser:
			result[i] = openai.UserMessage(msg.Content)
		case chat.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				result[i] = openai.ChatCompletionMessageParamUnion{
					OfAssistant: &openai.ChatCompletionAssistantMessageParam{
						ToolCalls: toOpenAIToolCalls(msg.ToolCalls),
					},
				}
				continue
			}
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			result[i] = openai.UserMessage(msg.Content)
		}
	}
	return result
}

func toOpenAIToolCalls(calls []chat.ToolCall) []openai.ChatCompletionMessageToolCallUnionParam {
	result := make([]openai.ChatCompletionMessageToolCallUnionParam, len(calls))
	for i, call := range calls {
		result[i] = openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID: call.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      call.Name,
					Arguments: encodeToolArguments(call.Arguments),
				},
			},
		}
	}
	return result
}

// encodeToolArguments string-encodes an arguments object for the hosted
// wire format.
func encodeToolArguments(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func toOpenAITools(tools []mcptypes.Tool) []openai.ChatCompletionToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	result := make([]openai.ChatCompletionToolUnionParam, len(tools))
	for i, tool := range tools {
		params := openai.FunctionParameters{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}

		result[i] = openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  params,
			},
		)
	}
	return result
}
