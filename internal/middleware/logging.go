package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var redactedFields = []string{"password", "access_token", "accessToken", "token"}

// RequestLogger emits one log line per request, success or failure. The
// request body is reproduced for JSON requests with credential fields
// redacted, so passwords and tokens never reach the logs.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		body := sanitizedBody(c)

		c.Next()

		userID, _ := c.Get(ContextUserID)
		status := c.Writer.Status()
		line := map[string]any{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": time.Since(start).String(),
		}
		if userID != nil {
			line["userId"] = userID
		}
		if body != "" {
			line["body"] = body
		}
		if len(c.Errors) > 0 {
			line["error"] = c.Errors.String()
		}

		encoded, _ := json.Marshal(line)
		if status >= 500 {
			log.Printf("request failed: %s", encoded)
		} else {
			log.Printf("request: %s", encoded)
		}
	}
}

func sanitizedBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.Contains(c.ContentType(), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) == 0 {
		return ""
	}
	return string(SanitizeBody(raw))
}

// SanitizeBody replaces credential-carrying fields in a JSON object with a
// placeholder. Non-object payloads are dropped rather than logged raw.
func SanitizeBody(raw []byte) []byte {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	for _, key := range redactedFields {
		if _, ok := fields[key]; ok {
			fields[key] = "[REDACTED]"
		}
	}
	sanitized, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return sanitized
}
