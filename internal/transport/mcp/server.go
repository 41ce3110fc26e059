package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/service/command"
	"github.com/sandevgo/bowen/pkg/log"
)

const (
	toolAsk    = "ask_legislation"
	toolActs   = "list_acts"
	toolSearch = "search_legislation"

	defaultSearchLimit = 5
	maxSearchLimit     = 20
)

// Server exposes the client to MCP hosts over stdio.
type Server struct {
	mcp       *server.MCPServer
	conv      core.Conversation
	api       core.LegislationAPI
	formatter *command.ResponseFormatter
	in        io.Reader
	out       io.Writer
}

func NewServer(conv core.Conversation, api core.LegislationAPI, in io.Reader, out io.Writer) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			core.BowenName,
			core.BowenVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		conv:      conv,
		api:       api,
		formatter: command.NewResponseFormatter(),
		in:        in,
		out:       out,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcpproto.NewTool(toolAsk,
		mcpproto.WithDescription("Ask a question about New Zealand legislation. Answers cite the acts and sections they rely on. Follow-up questions share context."),
		mcpproto.WithString("question",
			mcpproto.Required(),
			mcpproto.Description("The question in plain English"),
		),
		mcpproto.WithBoolean("new_conversation",
			mcpproto.Description("Forget earlier questions before asking"),
		),
	), s.handleAsk)

	s.mcp.AddTool(mcpproto.NewTool(toolActs,
		mcpproto.WithDescription("List the New Zealand acts the service can answer about"),
		mcpproto.WithString("filter",
			mcpproto.Description("Only acts whose title, short name or topics contain this text"),
		),
	), s.handleActs)

	s.mcp.AddTool(mcpproto.NewTool(toolSearch,
		mcpproto.WithDescription("Find sections of New Zealand legislation matching a query, without generating an answer"),
		mcpproto.WithString("query",
			mcpproto.Required(),
			mcpproto.Description("Search text"),
		),
		mcpproto.WithNumber("limit",
			mcpproto.Description(fmt.Sprintf("Maximum results, 1 to %d", maxSearchLimit)),
		),
	), s.handleSearch)
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("serving MCP over stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, s.in, s.out)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) handleAsk(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(question) == "" {
		return mcpproto.NewToolResultError("question must not be empty"), nil
	}

	if req.GetBool("new_conversation", false) {
		s.conv.ClearMessages(ctx)
	}

	res := s.conv.Send(ctx, question)
	switch {
	case !res.Accepted:
		return mcpproto.NewToolResultError("another question is still being answered, try again shortly"), nil
	case res.Failed():
		msg := res.Error
		if res.RetryAfter > 0 {
			msg = fmt.Sprintf("%s (retry after %s)", msg, res.RetryAfter)
		}
		return mcpproto.NewToolResultError(msg), nil
	case res.Discarded:
		return mcpproto.NewToolResultError("conversation was cleared before the answer arrived"), nil
	case res.Answer == nil:
		return mcpproto.NewToolResultError("no answer received"), nil
	}
	last := *res.Answer

	text := last.Content
	if len(last.Sources) > 0 {
		text = s.formatter.Combine(
			strings.TrimRight(text, "\n")+"\n",
			s.formatter.Info("Sources"),
			s.formatter.Sources(last.Sources),
		)
	}
	return mcpproto.NewToolResultText(text), nil
}

func (s *Server) handleActs(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	var args []string
	if filter := req.GetString("filter", ""); filter != "" {
		args = strings.Fields(filter)
	}

	out, err := command.NewActsCommand(s.api).Execute(ctx, s.conv, args)
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return mcpproto.NewToolResultText(out), nil
}

func (s *Server) handleSearch(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	limit := req.GetInt("limit", defaultSearchLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	resp, err := s.api.Search(ctx, query, limit)
	if err != nil {
		return mcpproto.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(resp.Results) == 0 {
		return mcpproto.NewToolResultText(fmt.Sprintf("Nothing found for %q.", query)), nil
	}
	return mcpproto.NewToolResultText(s.formatter.SearchResults(resp.Results)), nil
}
