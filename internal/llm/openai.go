package llm

import (
	"context"
	"net/http"
	"strings"
)

type openAIProtocol struct{}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the JSON body sent to POST /v1/chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (openAIProtocol) headers(cfg LLMConfig) map[string]string {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + cfg.APIKey}
}

func (p openAIProtocol) do(ctx context.Context, hc *http.Client, cfg LLMConfig, c call) (string, string, error) {
	body := chatRequest{
		Model: cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.system},
			{Role: "user", Content: c.user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var resp chatResponse
	if err := postJSON(ctx, hc, cfg.Endpoint+"/v1/chat/completions", p.headers(cfg), body, &resp); err != nil {
		return "", "", err
	}
	// An empty choice list is a reply with no usable text; callers treat it
	// like any other unparseable reply.
	if len(resp.Choices) == 0 {
		return "", resp.Model, nil
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

func (p openAIProtocol) probe(ctx context.Context, hc *http.Client, cfg LLMConfig) bool {
	return probeGET(ctx, hc, cfg.Endpoint+"/v1/models", p.headers(cfg))
}
