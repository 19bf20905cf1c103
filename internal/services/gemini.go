package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements CompletionClient on the Gemini API. The tool
// round-trip of the OpenAI flow is OpenAI wire behavior, so this client
// resolves the full-summary lookup locally for the top-ranked title and
// issues a single completion.
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	summaries *SummaryStore
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, temperature float64, maxTokens int, summaries *SummaryStore) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(float32(temperature))
	model.SetTopP(0.95)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}

	return &GeminiClient{
		client:    client,
		model:     model,
		summaries: summaries,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

func (c *GeminiClient) RecommendBook(ctx context.Context, query, ragContext string, titles []string) (string, error) {
	chosenTitle := ""
	if len(titles) > 0 {
		chosenTitle = strings.TrimSpace(titles[0])
	}
	fullSummary := titleNotFound
	if chosenTitle != "" {
		fullSummary = c.summaries.GetSummaryByTitle(chosenTitle)
	}

	prompt := fmt.Sprintf("%s\n\n"+
		"Write the final answer in this exact format:\n"+
		"- **Title:** %s\n"+
		"- One-sentence rationale (why it matches the user request)\n"+
		"- The FULL summary (exactly as provided below)\n\n"+
		"%s\n\n"+
		"FULL SUMMARY OF %s:\n%s",
		systemPrompt, orUnknown(chosenTitle), stageOneUserMessage(ragContext, query), orUnknown(chosenTitle), fullSummary)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return fallbackAnswer(chosenTitle, fullSummary), nil
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
