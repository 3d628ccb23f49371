package generator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are an expert exam question setter. " +
	"Generate high-quality, unambiguous exam questions that exactly match the requested structure."

// ProviderClient is the narrow interface to the generative-AI provider.
// GenerateStructured returns the raw JSON document conforming to the given
// schema; GenerateText returns free-form prose.
type ProviderClient interface {
	GenerateStructured(ctx context.Context, prompt string, schema Schema) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implements ProviderClient against the OpenAI chat API.
// Structured output is obtained by forcing a submit_questions tool call
// whose parameters are the batch schema.
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIClient creates a provider client for the given model.
func NewOpenAIClient(apiKey, model string, log zerolog.Logger) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log.With().Str("component", "openai_client").Logger(),
	}
}

// GenerateStructured sends the prompt with a forced tool call and returns
// the tool call arguments as the structured JSON document.
func (c *OpenAIClient) GenerateStructured(ctx context.Context, prompt string, schema Schema) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "submit_questions",
					Description: "Submit the generated exam questions",
					Parameters:  schema,
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "submit_questions"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from provider")
	}
	toolCalls := resp.Choices[0].Message.ToolCalls
	if len(toolCalls) == 0 {
		return "", fmt.Errorf("no tool call in provider response")
	}
	if toolCalls[0].Function.Name != "submit_questions" {
		return "", fmt.Errorf("unexpected tool call %q", toolCalls[0].Function.Name)
	}

	c.log.Debug().
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("Structured generation complete")

	return toolCalls[0].Function.Arguments, nil
}

// GenerateText sends the prompt as a plain chat completion and returns the
// assistant text.
func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from provider")
	}
	return resp.Choices[0].Message.Content, nil
}
