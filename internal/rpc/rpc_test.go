package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
)

func newTestServer(t *testing.T, register func(*Server)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := NewServer("test")
	register(server)

	router := gin.New()
	server.Register(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func TestCallRoundTrip(t *testing.T) {
	ts := newTestServer(t, func(s *Server) {
		s.Handle("echo", func(ctx context.Context, payload json.RawMessage) (any, error) {
			var input map[string]string
			if err := json.Unmarshal(payload, &input); err != nil {
				return nil, err
			}
			return map[string]string{"echo": input["value"]}, nil
		})
	})

	client := NewClient(ts.URL)
	var out map[string]string
	if err := client.Call(context.Background(), "echo", map[string]string{"value": "hello"}, &out); err != nil {
		t.Fatalf("call: %v", err)
	}
	if out["echo"] != "hello" {
		t.Fatalf("expected echo hello, got %v", out)
	}
}

func TestCallBusinessError(t *testing.T) {
	ts := newTestServer(t, func(s *Server) {
		s.Handle("fail", func(ctx context.Context, payload json.RawMessage) (any, error) {
			return nil, apperror.New(apperror.CodeConflict, "Email already exists")
		})
	})

	client := NewClient(ts.URL)
	err := client.Call(context.Background(), "fail", nil, nil)

	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *rpc.Error, got %v", err)
	}
	if rpcErr.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", rpcErr.StatusCode)
	}
	if rpcErr.Message != "Email already exists" {
		t.Errorf("unexpected message %q", rpcErr.Message)
	}
}

func TestCallUnexpectedErrorIsRedacted(t *testing.T) {
	ts := newTestServer(t, func(s *Server) {
		s.Handle("boom", func(ctx context.Context, payload json.RawMessage) (any, error) {
			return nil, errors.New("dsn=postgres://secret")
		})
	})

	client := NewClient(ts.URL)
	err := client.Call(context.Background(), "boom", nil, nil)

	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *rpc.Error, got %v", err)
	}
	if rpcErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rpcErr.StatusCode)
	}
	if rpcErr.Message != "Internal server error" {
		t.Errorf("cause leaked into reply: %q", rpcErr.Message)
	}
}

func TestCallUnknownCommand(t *testing.T) {
	ts := newTestServer(t, func(s *Server) {})

	client := NewClient(ts.URL)
	err := client.Call(context.Background(), "nope", nil, nil)

	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *rpc.Error, got %v", err)
	}
	if rpcErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rpcErr.StatusCode)
	}
}

func TestCallBareErrorShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"statusCode":404,"message":"Employee not found"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	err := client.Call(context.Background(), "get_employee", nil, nil)

	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *rpc.Error, got %v", err)
	}
	if rpcErr.StatusCode != http.StatusNotFound || rpcErr.Message != "Employee not found" {
		t.Fatalf("unexpected error %+v", rpcErr)
	}
}

func TestCallUnrecognizedReplyShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	err := client.Call(context.Background(), "anything", nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		t.Fatalf("unrecognized shape must not decode as *rpc.Error, got %+v", rpcErr)
	}
}

func TestCallTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewClient(ts.URL)
	err := client.Call(context.Background(), "echo", nil, nil)
	if err == nil {
		t.Fatal("expected transport error")
	}

	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		t.Fatal("transport failure must not decode as *rpc.Error")
	}
}

func TestCallNullReply(t *testing.T) {
	ts := newTestServer(t, func(s *Server) {
		s.Handle("validate_user", func(ctx context.Context, payload json.RawMessage) (any, error) {
			return nil, nil
		})
	})

	client := NewClient(ts.URL)
	var out json.RawMessage
	if err := client.Call(context.Background(), "validate_user", map[string]string{"id": "x"}, &out); err != nil {
		t.Fatalf("call: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("expected null reply, got %q", out)
	}
}
