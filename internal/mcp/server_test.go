package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/vitals/internal/intelligence"
	"github.com/alexanderramin/vitals/internal/query"
	"github.com/alexanderramin/vitals/internal/repository"
	"github.com/alexanderramin/vitals/internal/service"
	"github.com/alexanderramin/vitals/internal/testutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticExtractor struct {
	candidate *query.Candidate
}

func (e staticExtractor) Extract(context.Context, string) (*intelligence.Extraction, error) {
	return &intelligence.Extraction{Candidate: e.candidate, Raw: "{}"}, nil
}

var mcpToday = testutil.FixedClock(time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC))

func testServer(t *testing.T, llmEnabled bool) *Server {
	t.Helper()
	store := repository.NewSQLiteMetricStore(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, testutil.NewSleepRow("2024-01-01", testutil.WithScore(70))))
	require.NoError(t, store.Upsert(ctx, testutil.NewSleepRow("2024-01-02", testutil.WithScore(80), testutil.WithEfficiency(0.9))))

	ext := staticExtractor{candidate: &query.Candidate{Operation: "max", Table: "daily_sleep", Field: "score"}}
	ask := service.NewAskService(store, ext, service.AskConfig{LLMEnabled: llmEnabled, Now: mcpToday})
	return NewServer(ask, service.NewDaysService(store, mcpToday), "test")
}

func TestNewServer(t *testing.T) {
	s := testServer(t, false)
	assert.NotNil(t, s.mcpServer)
	assert.NotNil(t, s.ask)
}

func TestHandleAsk(t *testing.T) {
	s := testServer(t, false)

	_, out, err := s.handleAsk(context.Background(), &mcp.CallToolRequest{}, askInput{Question: "average sleep score"})
	require.NoError(t, err)
	assert.Equal(t, "Average sleep score is 75.00.", out.Text)
	assert.Equal(t, "average_sleep", out.Intent)

	_, _, err = s.handleAsk(context.Background(), &mcp.CallToolRequest{}, askInput{Question: "  "})
	assert.ErrorIs(t, err, service.ErrEmptyQuestion)
}

func TestHandleAskLLM(t *testing.T) {
	s := testServer(t, true)
	_, out, err := s.handleAskLLM(context.Background(), &mcp.CallToolRequest{}, askInput{Question: "best night?"})
	require.NoError(t, err)
	assert.Equal(t, "max of daily_sleep.score: 80 on 2024-01-02", out.Text)
	assert.Contains(t, out.Intent, "llm_query:")

	disabled := testServer(t, false)
	_, _, err = disabled.handleAskLLM(context.Background(), &mcp.CallToolRequest{}, askInput{Question: "best night?"})
	assert.ErrorIs(t, err, service.ErrFeatureDisabled)
}

func TestHandleListDays(t *testing.T) {
	s := testServer(t, false)

	_, out, err := s.handleListDays(context.Background(), &mcp.CallToolRequest{}, listDaysInput{Table: "sleep", Days: 7})
	require.NoError(t, err)
	assert.Equal(t, "daily_sleep", out.Table)
	require.Len(t, out.Days, 2)
	assert.Equal(t, "2024-01-02", out.Days[1].Day)
	assert.Equal(t, 0.9, out.Days[1].Values["efficiency"])
	_, hasDuration := out.Days[1].Values["total_sleep_duration_minutes"]
	assert.False(t, hasDuration)

	_, _, err = s.handleListDays(context.Background(), &mcp.CallToolRequest{}, listDaysInput{Table: "users"})
	assert.Error(t, err)
}

func TestSchemaResource(t *testing.T) {
	s := testServer(t, false)
	res, err := s.handleSchemaResource(context.Background(), &mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var doc schemaDoc
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &doc))
	assert.Equal(t, []string{"score", "steps", "calories_total"}, doc.Tables["daily_activity"])
	assert.Equal(t, []string{"avg", "sum", "max", "min"}, doc.Operations)
	assert.Contains(t, doc.Intents, "total_steps")
}
