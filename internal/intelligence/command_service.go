package intelligence

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/vitals/internal/llm"
	"github.com/alexanderramin/vitals/internal/query"
)

// Extraction is the model's reading of a question. Candidate is nil when the
// reply held no parseable command; Raw always carries the reply text.
type Extraction struct {
	Candidate *query.Candidate
	Raw       string
	Model     string
}

// CommandExtractor asks a model to turn a question into a query command.
// The candidate is untrusted and must go through query.Validate.
type CommandExtractor interface {
	Extract(ctx context.Context, question string) (*Extraction, error)
}

type commandExtractor struct {
	client llm.LLMClient
	now    func() time.Time
}

// NewCommandExtractor creates a CommandExtractor backed by an LLM client.
// now supplies the date used to resolve relative ranges; nil means time.Now.
func NewCommandExtractor(client llm.LLMClient, now func() time.Time) CommandExtractor {
	if now == nil {
		now = time.Now
	}
	return &commandExtractor{client: client, now: now}
}

func (s *commandExtractor) Extract(ctx context.Context, question string) (*Extraction, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCommand,
		SystemPrompt: commandSystemPrompt,
		UserPrompt:   buildCommandUserPrompt(question, s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("llm command extraction failed: %w", err)
	}

	out := &Extraction{Raw: resp.Text, Model: resp.Model}
	candidate, err := llm.ExtractJSON[query.Candidate](resp.Text, nil)
	if err != nil {
		// Unparseable replies are an answer, not a failure.
		return out, nil
	}
	out.Candidate = &candidate
	return out, nil
}
