package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
)

// Error is the wire shape a failed command reply carries. Replies either wrap
// it in an envelope {"error": {...}} or send it bare; the client accepts both.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

type envelope struct {
	Error *Error `json:"error"`
}

type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Server dispatches named commands to handlers. Every reply is an HTTP 200;
// failures travel inside the reply payload, which keeps request/reply pairing
// independent of transport status codes.
type Server struct {
	name     string
	handlers map[string]HandlerFunc
}

func NewServer(name string) *Server {
	return &Server{
		name:     name,
		handlers: map[string]HandlerFunc{},
	}
}

func (s *Server) Handle(cmd string, fn HandlerFunc) {
	s.handlers[cmd] = fn
}

func (s *Server) Register(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": s.name})
	})
	router.POST("/rpc/:cmd", s.dispatch)
}

func (s *Server) dispatch(c *gin.Context) {
	cmd := c.Param("cmd")
	fn, ok := s.handlers[cmd]
	if !ok {
		c.JSON(http.StatusOK, envelope{Error: &Error{
			StatusCode: http.StatusNotFound,
			Message:    "unknown command: " + cmd,
		}})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusOK, envelope{Error: &Error{
			StatusCode: http.StatusBadRequest,
			Message:    "unreadable payload",
		}})
		return
	}
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	result, err := fn(c.Request.Context(), payload)
	if err != nil {
		status := apperror.StatusCode(err)
		message := err.Error()
		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			// Unexpected failure: keep the cause in the service log, not
			// in the reply.
			log.Printf("[%s] command %s failed: %v", s.name, cmd, err)
			message = "Internal server error"
		}
		c.JSON(http.StatusOK, envelope{Error: &Error{
			StatusCode: status,
			Message:    message,
		}})
		return
	}

	c.JSON(http.StatusOK, result)
}
