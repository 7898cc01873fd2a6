package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/zenday/pkg/entry"
)

func registerResources(srv *server.MCPServer, svc *Service, now func() time.Time) {
	registerProfileResource(srv, svc)
	registerJournalTemplate(srv, svc, now)
	registerAlmanacTemplate(srv, svc, now)
	registerAnalysisTemplate(srv, svc, now)
}

func registerProfileResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"zenday://profile",
		"Profile",
		mcp.WithResourceDescription("The user's name and birth data."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p, err := svc.Profile(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"profile": p})
	})
}

func registerJournalTemplate(srv *server.MCPServer, svc *Service, now func() time.Time) {
	template := mcp.NewResourceTemplate(
		"zenday://journal/{date}",
		"Journal Entry",
		mcp.WithTemplateDescription("The journal entry for a day (YYYY-MM-DD or today)."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day, err := dayArgument(request, now)
		if err != nil {
			return nil, err
		}
		e, err := svc.Journal(ctx, day)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"entry":          e,
			"hasJournalData": e.HasJournalData(),
		})
	})
}

func registerAlmanacTemplate(srv *server.MCPServer, svc *Service, now func() time.Time) {
	template := mcp.NewResourceTemplate(
		"zenday://almanac/{date}",
		"Cached Almanac",
		mcp.WithTemplateDescription("The stored almanac for a day. Use the get_almanac tool to generate one."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day, err := dayArgument(request, now)
		if err != nil {
			return nil, err
		}
		dto, err := svc.CachedAlmanac(ctx, day)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"almanac": dto})
	})
}

func registerAnalysisTemplate(srv *server.MCPServer, svc *Service, now func() time.Time) {
	template := mcp.NewResourceTemplate(
		"zenday://analysis/{date}",
		"Stored Analysis",
		mcp.WithTemplateDescription("The last analysis generated for a day."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day, err := dayArgument(request, now)
		if err != nil {
			return nil, err
		}
		dto, err := svc.StoredAnalysis(ctx, day)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"analysis": dto})
	})
}

// dayArgument reads the {date} template variable, which the server passes as
// either a string or a single-element list.
func dayArgument(request mcp.ReadResourceRequest, now func() time.Time) (entry.Day, error) {
	var raw string
	switch v := request.Params.Arguments["date"].(type) {
	case string:
		raw = v
	case []string:
		if len(v) > 0 {
			raw = v[0]
		}
	}
	if raw == "" {
		return "", fmt.Errorf("date is required")
	}
	return ParseDay(raw, entry.Today(now()))
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
