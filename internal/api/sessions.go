package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/refpin/refpin/internal/model"
	"github.com/refpin/refpin/internal/service/session"
	"github.com/refpin/refpin/pkg/types"
	"go.uber.org/zap"
)

func (s *Server) createSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input types.CreateSessionRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sess, err := s.sessionService.CreateSession(input.Theme, input.DurationPerImage, input.TotalImages)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		s.writeSession(c, http.StatusCreated, sess)
	}
}

func (s *Server) listSessionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
				return
			}
			limit = n
		}

		sessions, err := s.sessionService.ListRecentSessions(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]*types.PracticeSession, 0, len(sessions))
		for i := range sessions {
			converted, err := s.sessionService.ToAPISession(&sessions[i])
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, converted)
		}
		c.JSON(http.StatusOK, out)
	}
}

func (s *Server) getSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.sessionService.GetSession(c.Param("id"))
		if err != nil {
			s.writeSessionError(c, err)
			return
		}
		s.writeSession(c, http.StatusOK, sess)
	}
}

func (s *Server) addSessionImageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input types.AddSessionImageRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := s.sessionService.AddSessionImage(c.Param("id"), input.Image); err != nil {
			s.writeSessionError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) completeSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.sessionService.CompleteSession(c.Param("id"))
		if err != nil {
			s.writeSessionError(c, err)
			return
		}
		s.writeSession(c, http.StatusOK, sess)
	}
}

func (s *Server) writeSession(c *gin.Context, status int, sess *model.PracticeSession) {
	converted, err := s.sessionService.ToAPISession(sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, converted)
}

func (s *Server) writeSessionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.log.Error("session operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
