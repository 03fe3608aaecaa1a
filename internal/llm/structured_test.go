package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommand struct {
	Operation string  `json:"operation"`
	Table     string  `json:"table"`
	Field     string  `json:"field"`
	StartDate *string `json:"start_date"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"operation":"avg","table":"daily_sleep","field":"score"}`
	result, err := ExtractJSON[testCommand](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "avg", result.Operation)
	assert.Equal(t, "daily_sleep", result.Table)
	assert.Nil(t, result.StartDate)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"operation\":\"max\",\"table\":\"daily_readiness\",\"field\":\"score\"}\n```"
	result, err := ExtractJSON[testCommand](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "max", result.Operation)
}

func TestExtractJSON_InlineFence(t *testing.T) {
	raw := "```json {\"operation\":\"min\",\"table\":\"sleep\",\"field\":\"score\"} ```"
	result, err := ExtractJSON[testCommand](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "min", result.Operation)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := `Sure! {"operation":"avg","table":"daily_sleep","field":"score"}`
	result, err := ExtractJSON[testCommand](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "avg", result.Operation)
	assert.Equal(t, "score", result.Field)
}

func TestExtractJSON_TrailingText(t *testing.T) {
	raw := "{\"operation\":\"sum\",\"table\":\"daily_activity\",\"field\":\"steps\"}\nHope that helps!"
	result, err := ExtractJSON[testCommand](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "steps", result.Field)
}

func TestExtractJSON_FirstBlockWins(t *testing.T) {
	raw := `{"operation":"avg","table":"sleep","field":"score"} or maybe {"operation":"max","table":"sleep","field":"score"}`
	result, err := ExtractJSON[testCommand](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "avg", result.Operation)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `note: {"operation":"avg","table":"sleep","field":"sc}ore"}`
	result, err := ExtractJSON[testCommand](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "sc}ore", result.Field)
}

func TestExtractJSON_LineComments(t *testing.T) {
	raw := "{\n  \"operation\": \"avg\", // average\n  \"table\": \"sleep\",\n  \"field\": \"score\"\n}"
	result, err := ExtractJSON[testCommand](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "avg", result.Operation)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	raw := "I can't help with that."
	_, err := ExtractJSON[testCommand](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	raw := `{"operation":"avg", broken}`
	_, err := ExtractJSON[testCommand](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_WrongFieldType(t *testing.T) {
	raw := `{"operation":"avg","table":"sleep","field":42}`
	_, err := ExtractJSON[testCommand](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	raw := `{"operation":"","table":"sleep","field":"score"}`
	validator := func(c testCommand) error {
		if c.Operation == "" {
			return fmt.Errorf("operation is required")
		}
		return nil
	}
	_, err := ExtractJSON(raw, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}
