package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/frasig"
	"github.com/aretw0/frasig/pkg/bracket"
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/aretw0/frasig/pkg/labels"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const labelsURI = "frasig://labels"

// AnalyzeArgs are the arguments of the analyze_sentence tool.
type AnalyzeArgs struct {
	Sentence   string `json:"sentence"`
	IncludeSVG bool   `json:"include_svg"`
}

// AnalyzeResult aligns with the JSON API response and provides a unified structure across adapters.
type AnalyzeResult struct {
	Span      string `json:"span" jsonschema_description:"The sentence span that was analyzed"`
	Tree      string `json:"tree" jsonschema_description:"Normalized tree in bracket notation"`
	Skeleton  string `json:"skeleton" jsonschema_description:"Normalized tree without the words"`
	RawTree   string `json:"raw_tree" jsonschema_description:"Parser output in bracket notation"`
	Discarded int    `json:"discarded" jsonschema_description:"Number of further sentences that were ignored"`
	SVG       string `json:"svg,omitempty" jsonschema_description:"SVG drawing of the tree, when requested"`
}

// Analyzer defines the interface required by the MCP server to analyse sentences.
type Analyzer interface {
	Analyze(ctx context.Context, sentence string) (*domain.Analysis, error)
}

// Server wraps the FRASIG Engine and exposes it as an MCP Server.
type Server struct {
	analyzer  Analyzer
	labels    labels.Table
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// table is the label inventory reported by list_labels.
func NewServer(analyzer Analyzer, table labels.Table) *Server {
	s := &Server{
		analyzer:  analyzer,
		labels:    table,
		mcpServer: server.NewMCPServer("frasig-mcp", strings.TrimSpace(frasig.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: analyze_sentence
	analyzeTool := mcp.NewTool("analyze_sentence",
		mcp.WithDescription("Analyze a Swedish sentence into a simplified phrase-structure tree. Only the first sentence of the text is analyzed."),
		mcp.WithString("sentence", mcp.Required(), mcp.Description("The Swedish sentence to analyze")),
		mcp.WithBoolean("include_svg", mcp.Description("Also return the SVG drawing of the tree")),
		mcp.WithOutputSchema[AnalyzeResult](),
	)
	s.mcpServer.AddTool(analyzeTool, mcp.NewStructuredToolHandler(s.handleAnalyze))

	// TOOL: list_labels
	s.mcpServer.AddTool(mcp.NewTool("list_labels",
		mcp.WithDescription("List the grammar tags and the Swedish display labels they are shown as."),
	), s.handleListLabels)
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest, args AnalyzeArgs) (AnalyzeResult, error) {
	a, err := s.analyzer.Analyze(ctx, args.Sentence)
	if err != nil {
		slog.Warn("MCP Analyze: Analysis failed", "error", err)
		return AnalyzeResult{}, fmt.Errorf("analysis failed: %w", err)
	}

	res := AnalyzeResult{
		Span:      a.Span,
		Tree:      a.Bracketed,
		Skeleton:  bracket.Skeleton(a.Tree),
		RawTree:   bracket.Format(a.Raw),
		Discarded: a.Discarded,
	}
	if args.IncludeSVG {
		res.SVG = a.SVG
	}
	return res, nil
}

func (s *Server) handleListLabels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.labels)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode labels: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: frasig://labels
	s.mcpServer.AddResource(mcp.NewResource(labelsURI, "Label Table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.labels)
		if err != nil {
			return nil, fmt.Errorf("failed to encode labels: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      labelsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
