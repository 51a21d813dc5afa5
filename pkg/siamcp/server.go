// Package siamcp exposes the scraping engine as an MCP stdio server. Each
// tool handler validates its input, runs one scrape operation, and renders
// either the result or a structured error payload; a failing request never
// takes the process down.
package siamcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/unal-mcp/sia-mcp/pkg/logging"
	"github.com/unal-mcp/sia-mcp/pkg/scrape"
	"github.com/unal-mcp/sia-mcp/pkg/session"
)

// Version is the server version reported during the MCP handshake.
const Version = "0.3.0"

// Server owns the tool registrations and the stdio transport loop.
type Server struct {
	svc      *scrape.Service
	sessions *session.Manager
	validate *validator.Validate
	log      *logging.Logger
}

// New creates the tool server over a scrape service and session manager.
func New(svc *scrape.Service, sessions *session.Manager) *Server {
	log, _ := logging.NewLogger("siamcp")
	return &Server{
		svc:      svc,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Run registers every tool and serves on stdio until ctx is cancelled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "sia-mcp",
		Version: Version,
	}, nil)

	s.register(server)

	s.log.Infof("serving on stdio, version %s", Version)
	return server.Run(ctx, &mcp.StdioTransport{})
}

// Close releases the server's logger.
func (s *Server) Close() {
	_ = s.log.Close()
}

// handler adapts one operation into an MCP tool handler: validate, run,
// render. Operation errors become structured error payloads on the result,
// not protocol errors, so the caller always gets a well-formed response.
func handler[In any](s *Server, name string, op func(ctx context.Context, in In) (any, error)) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		if err := s.validate.Struct(in); err != nil {
			s.log.Warnf("%s: invalid input: %v", name, err)
			return errorResult(fmt.Errorf("invalid input: %w", err)), nil, nil
		}

		out, err := op(ctx, in)
		if err != nil {
			s.log.Errorf("%s: %v", name, err)
			return errorResult(err), nil, nil
		}
		return jsonResult(out)
	}
}

// jsonResult renders a value as an indented JSON text block.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("failed to render result: %w", err)), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// errorResult renders an error as a structured payload with IsError set.
func errorResult(err error) *mcp.CallToolResult {
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}
}
