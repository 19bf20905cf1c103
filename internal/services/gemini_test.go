package services

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestExtractText_JoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("world")}}},
		},
	}

	if got := extractText(resp); got != "Hello world" {
		t.Errorf("expected joined text, got %q", got)
	}
}

func TestExtractText_EmptyCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{}

	if got := extractText(resp); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
