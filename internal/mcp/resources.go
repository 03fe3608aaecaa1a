package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/alexanderramin/vitals/internal/query"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const schemaURI = "vitals://schema"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         schemaURI,
		Name:        "Metric Schema",
		Description: "Queryable tables, fields and operations, plus the keyword intents the ask tool understands",
		MIMEType:    "application/json",
	}, s.handleSchemaResource)
}

type schemaDoc struct {
	Tables     map[string][]string `json:"tables"`
	Operations []string            `json:"operations"`
	Intents    []string            `json:"intents"`
}

func buildSchemaDoc() schemaDoc {
	doc := schemaDoc{Tables: map[string][]string{}, Intents: query.RuleIntents()}
	for _, t := range domain.Tables() {
		for _, f := range domain.Fields(t) {
			doc.Tables[string(t)] = append(doc.Tables[string(t)], string(f))
		}
	}
	for _, op := range domain.Operations() {
		doc.Operations = append(doc.Operations, string(op))
	}
	return doc
}

func (s *Server) handleSchemaResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(buildSchemaDoc(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      schemaURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
