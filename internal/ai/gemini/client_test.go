package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModelCall struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	queue   []fakeModelCall
	prompts []string
	models  []string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.models = append(f.models, model)
	for _, content := range contents {
		for _, part := range content.Parts {
			f.prompts = append(f.prompts, part.Text)
		}
	}

	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}

	call := f.queue[0]
	f.queue = f.queue[1:]

	return call.resp, call.err
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: parts},
		}},
	}
}

func shortBackoff(t *testing.T) {
	t.Helper()

	original := retryBackoff
	retryBackoff = time.Millisecond
	t.Cleanup(func() { retryBackoff = original })
}

func TestGenerateContentConcatenatesParts(t *testing.T) {
	models := &fakeModels{queue: []fakeModelCall{
		{resp: textResponse("first", " second ")},
	}}
	g := &Generator{models: models, modelName: "gemini-pro", logger: zap.NewNop()}

	output, err := g.GenerateContent(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != "first\nsecond" {
		t.Fatalf("unexpected output: %q", output)
	}
	if len(models.prompts) != 1 || models.prompts[0] != "prompt text" {
		t.Fatalf("unexpected prompts sent: %v", models.prompts)
	}
	if models.models[0] != "gemini-pro" {
		t.Fatalf("unexpected model: %q", models.models[0])
	}
}

func TestGenerateContentRetriesOnFailure(t *testing.T) {
	shortBackoff(t)

	models := &fakeModels{queue: []fakeModelCall{
		{err: errors.New("temporary failure")},
		{resp: textResponse("retry ok")},
	}}
	g := &Generator{models: models, modelName: "gemini-pro", maxRetries: 2, logger: zap.NewNop()}

	output, err := g.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}
	if len(models.models) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.models))
	}
}

func TestGenerateContentStopsAfterRetriesExhausted(t *testing.T) {
	shortBackoff(t)

	wantErr := errors.New("still down")
	models := &fakeModels{queue: []fakeModelCall{
		{err: wantErr},
		{err: wantErr},
		{err: wantErr},
	}}
	g := &Generator{models: models, modelName: "gemini-pro", maxRetries: 2, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "prompt"); !errors.Is(err, wantErr) {
		t.Fatalf("expected last error surfaced, got %v", err)
	}
	if len(models.models) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(models.models))
	}
}

func TestGenerateContentEmptyResponse(t *testing.T) {
	models := &fakeModels{queue: []fakeModelCall{
		{resp: &genai.GenerateContentResponse{}},
	}}
	g := &Generator{models: models, modelName: "gemini-pro", logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty response")
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	g := &Generator{models: &fakeModels{}, modelName: "gemini-pro", logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}
