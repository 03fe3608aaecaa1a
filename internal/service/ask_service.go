package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/intelligence"
	"github.com/alexanderramin/vitals/internal/llm"
	"github.com/alexanderramin/vitals/internal/query"
	"github.com/alexanderramin/vitals/internal/repository"
	"github.com/google/uuid"
)

// apologyText answers a model reply that held no usable command.
const apologyText = "Sorry, I couldn't turn that question into a query. Try rephrasing it, or ask without --llm."

// AskService answers free-text questions about stored metrics.
type AskService interface {
	// Answer uses the deterministic keyword classifier.
	Answer(ctx context.Context, question string) (*query.Answer, error)
	// AnswerLLM asks the model for a command, validates it, and runs it.
	AnswerLLM(ctx context.Context, question string) (*query.Answer, error)
}

// AskConfig is fixed at construction.
type AskConfig struct {
	LLMEnabled bool
	// Now supplies "today" for relative ranges; nil means time.Now.
	Now func() time.Time
}

type askService struct {
	executor  *query.Executor
	extractor intelligence.CommandExtractor
	cfg       AskConfig
	observer  UseCaseObserver
}

// NewAskService wires the two answer paths over one store. extractor may be
// nil when cfg.LLMEnabled is false.
func NewAskService(
	store repository.MetricStore,
	extractor intelligence.CommandExtractor,
	cfg AskConfig,
	observers ...UseCaseObserver,
) AskService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &askService{
		executor:  query.NewExecutor(store),
		extractor: extractor,
		cfg:       cfg,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *askService) Answer(ctx context.Context, question string) (answer *query.Answer, err error) {
	defer s.observe(ctx, "ask", time.Now().UTC(), &answer, &err)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	window := query.ExtractDateRange(question, s.cfg.Now())
	c := query.Classify(question, window)
	answer, err = s.executor.ExecuteHeuristic(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("answering %q: %w", c.Intent, err)
	}
	return answer, nil
}

func (s *askService) AnswerLLM(ctx context.Context, question string) (answer *query.Answer, err error) {
	defer s.observe(ctx, "ask-llm", time.Now().UTC(), &answer, &err)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if !s.cfg.LLMEnabled || s.extractor == nil {
		return nil, ErrFeatureDisabled
	}

	ex, err := s.extractor.Extract(ctx, question)
	if err != nil {
		if isUpstreamFailure(err) {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		}
		return nil, err
	}
	if ex.Candidate == nil {
		return &query.Answer{Text: apologyText, Intent: query.IntentLLMUnparseable, Raw: ex.Raw}, nil
	}

	v := query.Validate(*ex.Candidate)
	if !v.Valid() {
		return &query.Answer{Text: query.RenderRejection(*v.Rejection), Intent: query.IntentLLMRejected}, nil
	}

	answer, err = s.executor.Execute(ctx, *v.Command, query.IntentLLMQueryPrefix+ex.Candidate.JSON())
	if err != nil {
		return nil, fmt.Errorf("running model command: %w", err)
	}
	return answer, nil
}

func (s *askService) observe(ctx context.Context, name string, startedAt time.Time, answer **query.Answer, err *error) {
	fields := map[string]any{}
	if *answer != nil {
		fields["intent"] = (*answer).Intent
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		RequestID: uuid.NewString(),
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	})
}

func isUpstreamFailure(err error) bool {
	return errors.Is(err, llm.ErrTimeout) ||
		errors.Is(err, llm.ErrUnavailable) ||
		errors.Is(err, llm.ErrRetryExhausted)
}
