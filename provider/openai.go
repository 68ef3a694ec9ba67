package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"tilechat/chat"
	"tilechat/config"
)

// OpenAIProvider is the hosted-provider adapter. Its wire format differs
// from the internal model in property naming and argument encoding: tool
// call arguments travel as a string-encoded JSON blob, and a tool_choice
// hint of "auto" is required whenever tools are present. Only the first
// choice of a response is taken.
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider creates the hosted adapter. baseURL defaults to the
// public OpenAI endpoint; the API key is required.
func NewOpenAIProvider(baseURL, apiKey string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{client: client}, nil
}

// Send implements chat.Provider. The call is non-streaming by
// construction; the SDK's blocking completion endpoint posts stream=false.
func (p *OpenAIProvider) Send(ctx context.Context, req *chat.Request) (*chat.Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: toOpenAIMessages(req.Messages),
	}
	if len(req.Tools) > 0 {
		params.Tools = toOpenAITools(req.Tools)
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("auto"),
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[OpenAI] status %d: %s", apierr.StatusCode, apierr.Message)
			}
			return nil, &TransportError{Status: apierr.StatusCode, Body: apierr.Message}
		}
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, &DecodeError{Reason: "openai response has no choices"}
	}
	choice := completion.Choices[0]

	return &chat.Response{
		Message: chat.Message{
			Role:      chat.RoleAssistant,
			Content:   choice.Message.Content,
			ToolCalls: fromOpenAIToolCalls(choice.Message.ToolCalls),
		},
		Done:       true,
		DoneReason: choice.FinishReason,
		Model:      completion.Model,
		CreatedAt:  time.Unix(completion.Created, 0),
		Usage: chat.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}

// fromOpenAIToolCalls decodes response tool calls, parsing each
// string-encoded arguments blob. An absent tool_calls field yields nil.
func fromOpenAIToolCalls(calls []openai.ChatCompletionMessageToolCallUnion) []chat.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	result := make([]chat.ToolCall, len(calls))
	for i, call := range calls {
		result[i] = chat.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: ParseToolArguments(call.Function.Arguments),
		}
	}
	return result
}
