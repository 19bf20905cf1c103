package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const summaryToolName = "get_summary_by_title"

// OpenAIClient implements CompletionClient with the two-stage chat
// completion flow: the model first picks a title and calls the
// get_summary_by_title tool, then composes the final answer from the
// tool result.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	summaries   *SummaryStore
}

func NewOpenAIClient(apiKey, model string, temperature float64, maxTokens int, summaries *SummaryStore, extraOpts ...option.RequestOption) *OpenAIClient {
	opts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, extraOpts...)
	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		summaries:   summaries,
	}
}

func (c *OpenAIClient) RecommendBook(ctx context.Context, query, ragContext string, titles []string) (string, error) {
	stageOneSystem := systemPrompt + "\n\n" +
		"Process:\n" +
		"1) Choose ONE exact title (prefer one present in the RAG context).\n" +
		"2) Call get_summary_by_title(title) to fetch the FULL summary.\n" +
		"3) Finally answer with:\n" +
		"- **Title**\n" +
		"- One-sentence rationale for why it matches the user's request\n" +
		"- The FULL summary from the tool\n" +
		"If the exact title isn't in local summaries, present your rationale and state the tool couldn't find it."

	userMessage := openai.UserMessage(stageOneUserMessage(ragContext, query))

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(stageOneSystem),
			userMessage,
		},
		Tools: []openai.ChatCompletionToolUnionParam{c.summaryTool()},
	}
	c.applyTuning(&params)

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai stage-one completion failed: %w", err)
	}

	var assistant *openai.ChatCompletionMessage
	if len(resp.Choices) > 0 {
		assistant = &resp.Choices[0].Message
	}

	// Execute tool calls locally.
	var toolMessages []openai.ChatCompletionMessageParamUnion
	chosenTitle := ""
	toolResult := ""

	if assistant != nil {
		for _, tc := range assistant.ToolCalls {
			if tc.Type != "function" || tc.Function.Name != summaryToolName {
				continue
			}
			var args struct {
				Title string `json:"title"`
			}
			json.Unmarshal([]byte(tc.Function.Arguments), &args)

			chosenTitle = strings.TrimSpace(args.Title)
			toolResult = c.summaries.GetSummaryByTitle(chosenTitle)
			toolMessages = append(toolMessages, openai.ToolMessage(toolResult, tc.ID))
		}
	}

	// The model may answer without calling the tool; resolve the lookup
	// for the top-ranked title so stage two always has a full summary.
	if len(toolMessages) == 0 {
		if chosenTitle == "" && len(titles) > 0 {
			chosenTitle = strings.TrimSpace(titles[0])
		}
		toolResult = titleNotFound
		if chosenTitle != "" {
			toolResult = c.summaries.GetSummaryByTitle(chosenTitle)
		}
	}

	// Stage two: compose the final answer from the tool result.
	composeSystem := fmt.Sprintf("%s\n\n"+
		"You have received the tool result containing the FULL summary. "+
		"Write the final answer in this exact format:\n"+
		"- **Title:** %s\n"+
		"- One-sentence rationale (why it matches the user request)\n"+
		"- The FULL summary (exactly as provided by the tool)",
		systemPrompt, orUnknown(chosenTitle))

	composeMessages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(composeSystem),
		userMessage,
	}
	if len(toolMessages) > 0 && assistant != nil {
		composeMessages = append(composeMessages, assistant.ToParam())
		composeMessages = append(composeMessages, toolMessages...)
	} else {
		// No tool round-trip happened; carry the resolved summary as
		// plain context instead of an orphaned tool message.
		composeMessages = append(composeMessages, openai.UserMessage("TOOL RESULT:\n"+toolResult))
	}

	composeParams := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: composeMessages,
	}
	c.applyTuning(&composeParams)

	final, err := c.client.Chat.Completions.New(ctx, composeParams)
	if err != nil {
		return "", fmt.Errorf("openai compose completion failed: %w", err)
	}

	finalText := ""
	if len(final.Choices) > 0 {
		finalText = final.Choices[0].Message.Content
	}
	if strings.TrimSpace(finalText) == "" {
		return fallbackAnswer(chosenTitle, toolResult), nil
	}
	return finalText, nil
}

func (c *OpenAIClient) summaryTool() openai.ChatCompletionToolUnionParam {
	return openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        summaryToolName,
		Description: openai.String("Return the full summary for an exact book title from the local dataset."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Exact title to look up.",
				},
			},
			"required": []string{"title"},
		},
	})
}

func (c *OpenAIClient) applyTuning(params *openai.ChatCompletionNewParams) {
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}
}

func orUnknown(title string) string {
	if title == "" {
		return "Unknown"
	}
	return title
}
