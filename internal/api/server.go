// Package api provides the HTTP surface of the refpin server: the REST API,
// the streamable HTTP MCP endpoint and health/metrics endpoints.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/refpin/refpin/internal/registry"
	"github.com/refpin/refpin/internal/service/session"
	"github.com/refpin/refpin/internal/telemetry"
	"github.com/refpin/refpin/pkg/types"
	"github.com/refpin/refpin/pkg/version"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	V0PathPrefix    = "/v0"
	V0ApiPathPrefix = "/api" + V0PathPrefix
)

// ServerOptions holds the dependencies for the HTTP server.
type ServerOptions struct {
	// Port is the TCP port to bind the server to.
	Port string

	// MCPServer is the MCP server instance served at /mcp over
	// streamable HTTP, alongside the REST API.
	MCPServer *server.MCPServer

	Registry       *registry.Registry
	SessionService *session.Service

	OtelProviders *telemetry.Providers

	Logger *zap.Logger
}

// Server is the refpin HTTP server.
type Server struct {
	port   string
	router *gin.Engine

	mcpServer *server.MCPServer

	registry       *registry.Registry
	sessionService *session.Service

	otelProviders *telemetry.Providers

	log *zap.Logger
}

// NewServer initializes a new gin server for the refpin REST API and the
// streamable HTTP MCP endpoint.
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("registry must not be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		port:           opts.Port,
		mcpServer:      opts.MCPServer,
		registry:       opts.Registry,
		sessionService: opts.SessionService,
		otelProviders:  opts.OtelProviders,
		log:            logger,
	}
	s.router = s.setupRouter()
	return s, nil
}

// Start runs the gin server (blocking call).
func (s *Server) Start() error {
	if err := s.router.Run(":" + s.port); err != nil {
		return fmt.Errorf("failed to run the server: %w", err)
	}
	return nil
}

// setupRouter sets up the gin router with the MCP endpoint and API endpoints.
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// if otel is enabled, instrument gin and expose the prometheus endpoint
	if s.otelProviders != nil && s.otelProviders.IsEnabled() {
		r.Use(otelgin.Middleware(s.otelProviders.ServiceName()))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET(
		"/health",
		func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		},
	)

	r.GET(
		"/metadata",
		func(c *gin.Context) {
			m := &types.ServerMetadata{
				Version: version.GetVersion(),
			}
			c.JSON(http.StatusOK, m)
		},
	)

	// Serve the MCP server on /mcp over streamable HTTP
	if s.mcpServer != nil {
		streamableHTTPServer := server.NewStreamableHTTPServer(s.mcpServer)
		r.Any("/mcp", gin.WrapH(streamableHTTPServer))
	}

	apiV0 := r.Group(V0ApiPathPrefix)
	{
		apiV0.GET("/tools", s.listToolsHandler())
		apiV0.GET("/tool", s.getToolHandler())
		apiV0.POST("/tools/invoke", s.invokeToolHandler())

		if s.sessionService != nil {
			apiV0.POST("/sessions", s.createSessionHandler())
			apiV0.GET("/sessions", s.listSessionsHandler())
			apiV0.GET("/sessions/:id", s.getSessionHandler())
			apiV0.POST("/sessions/:id/images", s.addSessionImageHandler())
			apiV0.POST("/sessions/:id/complete", s.completeSessionHandler())
		}
	}

	return r
}
