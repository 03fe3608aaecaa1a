package intelligence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/alexanderramin/vitals/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLLMClient returns a fixed response and records the last request.
type mockLLMClient struct {
	response string
	err      error
	last     llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "gpt-4o-mini"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

var fixedNow = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }

func TestCommandExtractor_CleanReply(t *testing.T) {
	client := &mockLLMClient{response: `{"operation":"avg","table":"daily_sleep","field":"score","start_date":"2024-02-14","end_date":"2024-03-15"}`}

	ex, err := NewCommandExtractor(client, fixedNow).Extract(context.Background(), "average sleep last 30 days")

	require.NoError(t, err)
	require.NotNil(t, ex.Candidate)
	assert.Equal(t, "avg", ex.Candidate.Operation)
	assert.Equal(t, "daily_sleep", ex.Candidate.Table)
	assert.Equal(t, "score", ex.Candidate.Field)
	require.NotNil(t, ex.Candidate.StartDate)
	assert.Equal(t, "2024-02-14", *ex.Candidate.StartDate)
	assert.Equal(t, "gpt-4o-mini", ex.Model)
	assert.Equal(t, client.response, ex.Raw)
}

func TestCommandExtractor_EmbeddedObject(t *testing.T) {
	client := &mockLLMClient{response: `Sure! {"operation":"avg","table":"daily_sleep","field":"score"}`}

	ex, err := NewCommandExtractor(client, fixedNow).Extract(context.Background(), "average sleep")

	require.NoError(t, err)
	require.NotNil(t, ex.Candidate)
	assert.Equal(t, "avg", ex.Candidate.Operation)
	assert.Nil(t, ex.Candidate.StartDate)
	assert.Nil(t, ex.Candidate.EndDate)
}

func TestCommandExtractor_NullDates(t *testing.T) {
	client := &mockLLMClient{response: "```json\n{\"operation\":\"max\",\"table\":\"daily_readiness\",\"field\":\"score\",\"start_date\":null,\"end_date\":null}\n```"}

	ex, err := NewCommandExtractor(client, fixedNow).Extract(context.Background(), "best readiness")

	require.NoError(t, err)
	require.NotNil(t, ex.Candidate)
	assert.Nil(t, ex.Candidate.StartDate)
}

func TestCommandExtractor_NonJSONReplyHasNoCandidate(t *testing.T) {
	client := &mockLLMClient{response: "I'm sorry, I can only help with health data."}

	ex, err := NewCommandExtractor(client, fixedNow).Extract(context.Background(), "write me a poem")

	require.NoError(t, err)
	assert.Nil(t, ex.Candidate)
	assert.Equal(t, client.response, ex.Raw)
}

func TestCommandExtractor_WrongTypesHaveNoCandidate(t *testing.T) {
	client := &mockLLMClient{response: `{"operation":["avg"],"table":"daily_sleep","field":"score"}`}

	ex, err := NewCommandExtractor(client, fixedNow).Extract(context.Background(), "average sleep")

	require.NoError(t, err)
	assert.Nil(t, ex.Candidate)
}

func TestCommandExtractor_PassesThroughUnknownNames(t *testing.T) {
	client := &mockLLMClient{response: `{"operation":"avg","table":"daily_sleep","field":"nonexistent"}`}

	ex, err := NewCommandExtractor(client, fixedNow).Extract(context.Background(), "average rem")

	require.NoError(t, err)
	require.NotNil(t, ex.Candidate, "validation is the caller's job")
	assert.Equal(t, "nonexistent", ex.Candidate.Field)
}

func TestCommandExtractor_ClientErrorIsWrapped(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrTimeout}

	_, err := NewCommandExtractor(client, fixedNow).Extract(context.Background(), "average sleep")

	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrTimeout))
}

func TestCommandExtractor_RequestShape(t *testing.T) {
	client := &mockLLMClient{response: "{}"}

	_, err := NewCommandExtractor(client, fixedNow).Extract(context.Background(), "  best sleep  ")

	require.NoError(t, err)
	assert.Equal(t, llm.TaskCommand, client.last.Task)
	assert.Equal(t, "Today: 2024-03-15\nQuestion: best sleep", client.last.UserPrompt)
	assert.Equal(t, commandSystemPrompt, client.last.SystemPrompt)
}

func TestCommandSystemPrompt_ListsWhitelist(t *testing.T) {
	for _, table := range domain.Tables() {
		assert.Contains(t, commandSystemPrompt, string(table))
		for _, f := range domain.Fields(table) {
			assert.Contains(t, commandSystemPrompt, string(f))
		}
	}
	assert.Contains(t, commandSystemPrompt, "avg, sum, max, min")
	assert.Equal(t, 4, strings.Count(commandSystemPrompt, "\nQ: "))
}
