package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client issues request/reply commands against one downstream service. It is
// built once at startup and reused; the underlying http.Client keeps
// connections alive between calls.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Call sends one command and decodes the reply into out (which may be nil).
// A downstream business failure is returned as *Error; transport failures and
// unrecognized replies are returned as plain errors.
func (c *Client) Call(ctx context.Context, cmd string, payload any, out any) error {
	body := []byte("{}")
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("rpc %s: encode payload: %w", cmd, err)
		}
		body = encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc/"+cmd, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("rpc %s: %w", cmd, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rpc %s: %w", cmd, err)
	}
	defer res.Body.Close()

	reply, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("rpc %s: read reply: %w", cmd, err)
	}

	if rpcErr := decodeError(reply); rpcErr != nil {
		return rpcErr
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc %s: unexpected status %d", cmd, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(reply, out); err != nil {
		return fmt.Errorf("rpc %s: decode reply: %w", cmd, err)
	}
	return nil
}

// decodeError recognizes the two failure shapes a downstream may reply with:
// the envelope {"error": {"statusCode", "message"}} and the bare
// {"statusCode", "message"}. Anything else is not a command failure.
func decodeError(reply []byte) *Error {
	var wrapped envelope
	if err := json.Unmarshal(reply, &wrapped); err == nil &&
		wrapped.Error != nil && wrapped.Error.StatusCode != 0 {
		return wrapped.Error
	}

	var bare Error
	if err := json.Unmarshal(reply, &bare); err == nil &&
		bare.StatusCode != 0 && bare.Message != "" {
		return &bare
	}

	return nil
}
