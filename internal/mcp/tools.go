package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/alexanderramin/vitals/internal/query"
	"github.com/alexanderramin/vitals/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about stored sleep, readiness or activity metrics using keyword rules",
	}, s.handleAsk)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "ask_llm",
		Description: "Answer a question about stored metrics by having a language model build a validated query",
	}, s.handleAskLLM)

	if s.days != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "list_days",
			Description: "List the stored daily rows of one metric table for the most recent days",
		}, s.handleListDays)
	}
}

type askInput struct {
	Question string `json:"question" jsonschema:"the question, e.g. average sleep score last 30 days"`
}

type answerOutput struct {
	Text      string  `json:"text"`
	Intent    string  `json:"intent"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Raw       string  `json:"raw,omitempty"`
}

type listDaysInput struct {
	Table string `json:"table" jsonschema:"sleep, activity or readiness (daily_ prefix optional)"`
	Days  int    `json:"days,omitempty" jsonschema:"how many days back from today, default 14"`
}

type dayOutput struct {
	Day    string             `json:"day"`
	Values map[string]float64 `json:"values"`
}

type listDaysOutput struct {
	Table string      `json:"table"`
	Days  []dayOutput `json:"days"`
}

func toAnswerOutput(a *query.Answer) answerOutput {
	return answerOutput{
		Text:      a.Text,
		Intent:    a.Intent,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		Raw:       a.Raw,
	}
}

func (s *Server) handleAsk(ctx context.Context, req *mcp.CallToolRequest, input askInput) (*mcp.CallToolResult, answerOutput, error) {
	a, err := s.ask.Answer(ctx, input.Question)
	if err != nil {
		return nil, answerOutput{}, err
	}
	return nil, toAnswerOutput(a), nil
}

func (s *Server) handleAskLLM(ctx context.Context, req *mcp.CallToolRequest, input askInput) (*mcp.CallToolResult, answerOutput, error) {
	a, err := s.ask.AnswerLLM(ctx, input.Question)
	if errors.Is(err, service.ErrFeatureDisabled) {
		return nil, answerOutput{}, fmt.Errorf("%w; use the ask tool instead", err)
	}
	if err != nil {
		return nil, answerOutput{}, err
	}
	return nil, toAnswerOutput(a), nil
}

func (s *Server) handleListDays(ctx context.Context, req *mcp.CallToolRequest, input listDaysInput) (*mcp.CallToolResult, listDaysOutput, error) {
	table, ok := domain.LookupTable(input.Table)
	if !ok {
		return nil, listDaysOutput{}, fmt.Errorf("unknown table: %s", input.Table)
	}
	days := input.Days
	if days <= 0 {
		days = 14
	}

	rows, err := s.days.List(ctx, table, days)
	if err != nil {
		return nil, listDaysOutput{}, err
	}

	out := listDaysOutput{Table: string(table), Days: make([]dayOutput, 0, len(rows))}
	for _, row := range rows {
		d := dayOutput{Day: row.Day.Format(domain.DayLayout), Values: map[string]float64{}}
		for _, f := range domain.Fields(table) {
			if v, ok := row.Value(f); ok {
				d.Values[string(f)] = v
			}
		}
		out.Days = append(out.Days, d)
	}
	return nil, out, nil
}
