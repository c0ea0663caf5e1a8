package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/refpin/refpin/internal/registry"
	"github.com/refpin/refpin/pkg/types"
	"go.uber.org/zap"
)

func (s *Server) listToolsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.registry.APITools())
	}
}

func (s *Server) getToolHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
			return
		}

		spec, err := s.registry.Get(name)
		if err != nil {
			s.writeCallError(c, err)
			return
		}

		tools := s.registry.APITools()
		for _, t := range tools {
			if t.Name == spec.Name {
				c.JSON(http.StatusOK, t)
				return
			}
		}
	}
}

func (s *Server) invokeToolHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input types.ToolInvokeRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		payload, err := s.registry.Invoke(c.Request.Context(), input.Name, input.Arguments)
		if err != nil {
			s.writeCallError(c, err)
			return
		}

		c.JSON(http.StatusOK, payload)
	}
}

// writeCallError maps registry rejections to HTTP responses carrying the
// structured {code, message} error object.
func (s *Server) writeCallError(c *gin.Context, err error) {
	var callErr *registry.CallError
	if !errors.As(err, &callErr) {
		s.log.Error("tool invocation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusBadRequest
	if callErr.Code == registry.CodeUnknownTool {
		status = http.StatusNotFound
	}
	c.JSON(status, types.ToolError{Code: callErr.Code, Message: callErr.Message})
}
