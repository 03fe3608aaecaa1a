package llm

import (
	"context"
	"net/http"
)

type ollamaProtocol struct{}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (ollamaProtocol) do(ctx context.Context, hc *http.Client, cfg LLMConfig, c call) (string, string, error) {
	body := ollamaRequest{
		Model:  cfg.Model,
		System: c.system,
		Prompt: c.user,
		Stream: false,
		Options: ollamaOptions{
			Temperature: c.temperature,
			NumPredict:  c.maxTokens,
		},
	}
	var resp ollamaResponse
	if err := postJSON(ctx, hc, cfg.Endpoint+"/api/generate", nil, body, &resp); err != nil {
		return "", "", err
	}
	return resp.Response, resp.Model, nil
}

func (ollamaProtocol) probe(ctx context.Context, hc *http.Client, cfg LLMConfig) bool {
	return probeGET(ctx, hc, cfg.Endpoint+"/api/tags", nil)
}
