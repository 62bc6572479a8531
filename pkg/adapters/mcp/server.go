package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/vitrine/internal/presentation/graph"
	"github.com/aretw0/vitrine/pkg/catalog"
	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/aretw0/vitrine/pkg/site"
)

// ProductsResponse lists catalog entries.
type ProductsResponse struct {
	Products []domain.Product `json:"products" jsonschema_description:"Normalized catalog entries in display order"`
}

// StepResponse describes a node of the scripted conversation, or the outcome of choosing one of its options.
type StepResponse struct {
	Node     domain.NodeView `json:"node" jsonschema_description:"The node the visitor is on after the step"`
	Selected string          `json:"selected,omitempty" jsonschema_description:"Label of the chosen option"`
	Effect   *domain.Effect  `json:"effect,omitempty" jsonschema_description:"Side effect requested by the option, if any"`
	Href     string          `json:"href,omitempty" jsonschema_description:"Link form of the effect"`
	Fallback bool            `json:"fallback" jsonschema_description:"True when the option pointed at a missing node and the root was used"`
}

// LocatorResponse is a service-center lookup.
type LocatorResponse struct {
	Centers  []domain.ServiceCenter `json:"centers"`
	View     domain.MapView         `json:"view"`
	Selected *domain.ServiceCenter  `json:"selected,omitempty"`
}

// Server exposes the catalog, dialogue graph and locator as an MCP Server.
type Server struct {
	site      *site.Site
	catalog   ports.CatalogSource
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(st *site.Site, catalog ports.CatalogSource, version string) *Server {
	s := &Server{
		site:      st,
		catalog:   catalog,
		mcpServer: server.NewMCPServer("vitrine-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_products",
		mcp.WithDescription("List the machinery catalog. Pass model to fetch a single product by its 1-based position."),
		mcp.WithNumber("model", mcp.Description("1-based model number as used in /products?model=N (optional)")),
		mcp.WithOutputSchema[ProductsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListProducts))

	s.mcpServer.AddTool(mcp.NewTool("dialogue_step",
		mcp.WithDescription("Show a chatbot node, or resolve choosing one of its options. Unknown nodes resolve to the root."),
		mcp.WithString("node_id", mcp.Description("Node to start from (defaults to the root)")),
		mcp.WithNumber("option", mcp.Description("0-based option index to choose (optional)")),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleDialogueStep))

	s.mcpServer.AddTool(mcp.NewTool("find_service_center",
		mcp.WithDescription("List service centers, focusing the map on a city when one matches."),
		mcp.WithString("city", mcp.Description("City name, case-insensitive (optional)")),
		mcp.WithOutputSchema[LocatorResponse](),
	), mcp.NewStructuredToolHandler(s.handleFindServiceCenter))

	s.mcpServer.AddTool(mcp.NewTool("get_dialogue_graph",
		mcp.WithDescription("Render the chatbot graph as a Mermaid flowchart."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(graph.GenerateMermaid(s.site.Graph(), nil)), nil
	})
}

func (s *Server) handleListProducts(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ProductsResponse, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return ProductsResponse{}, fmt.Errorf("list products: %w", err)
	}
	if model, ok := args["model"].(float64); ok {
		p, found := catalog.Find(products, int(model))
		if !found {
			return ProductsResponse{}, fmt.Errorf("no product model %d", int(model))
		}
		products = []domain.Product{p}
	}
	if products == nil {
		products = []domain.Product{}
	}
	return ProductsResponse{Products: products}, nil
}

func (s *Server) handleDialogueStep(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepResponse, error) {
	g := s.site.Graph()
	nodeID, _ := args["node_id"].(string)
	node, ok := g.Node(nodeID)
	if !ok {
		node = g.Root()
	}

	option, ok := args["option"].(float64)
	if !ok {
		return StepResponse{Node: node.View()}, nil
	}

	outcome, err := dialogue.Resolve(g, node.ID, int(option))
	if err != nil {
		return StepResponse{}, err
	}
	resp := StepResponse{Selected: outcome.Option.Label, Fallback: outcome.Fallback}
	if outcome.IsEffect() {
		resp.Node = node.View()
		resp.Effect = outcome.Effect
		resp.Href = outcome.Effect.Href()
		return resp, nil
	}
	resp.Node = outcome.Target.View()
	return resp, nil
}

func (s *Server) handleFindServiceCenter(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LocatorResponse, error) {
	loc := s.site.Locator()
	resp := LocatorResponse{Centers: loc.Centers(), View: loc.DefaultView()}
	city, _ := args["city"].(string)
	if city == "" {
		return resp, nil
	}
	if center, view, ok := loc.Select(city); ok {
		resp.Selected = &center
		resp.View = view
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("vitrine://dialogue", "Chatbot Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource("vitrine://dialogue", s.site.Graph().Nodes())
	})

	s.mcpServer.AddResource(mcp.NewResource("vitrine://faqs", "Frequently Asked Questions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource("vitrine://faqs", s.site.FAQs())
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
