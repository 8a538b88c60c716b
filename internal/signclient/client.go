// Package signclient wraps the network call to the remote signing service
// and turns transport and HTTP outcomes into a uniform result type.
package signclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Cause classifies a failed signing attempt.
type Cause string

const (
	CauseNetwork        Cause = "network-error"
	CauseServerRejected Cause = "server-rejected"
	CauseServerError    Cause = "server-error"
)

// Result is the outcome of one signing attempt: either Signed with the
// signed bytes, or a Cause with a human-readable message.
type Result struct {
	Signed  bool
	Bytes   []byte
	Cause   Cause
	Message string
}

// Failed builds a failure result.
func Failed(cause Cause, message string) Result {
	return Result{Cause: cause, Message: message}
}

// Config configures the client. Injected at construction so tests can point
// it at a local server.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// Client posts documents to the signing endpoint. It never retries: each
// call yields exactly one network attempt.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a Client with the configured overall timeout.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Sign uploads the document as a single-part multipart POST and returns the
// signed bytes or a classified failure. Transport errors, including the
// overall timeout, map to network-error; 4xx statuses to server-rejected;
// any other non-200 to server-error.
func (c *Client) Sign(ctx context.Context, name string, data []byte) Result {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return Failed(CauseNetwork, err.Error())
	}
	if _, err := part.Write(data); err != nil {
		return Failed(CauseNetwork, err.Error())
	}
	if err := mw.Close(); err != nil {
		return Failed(CauseNetwork, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, &body)
	if err != nil {
		return Failed(CauseNetwork, err.Error())
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Failed(CauseNetwork, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		cause := CauseServerError
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			cause = CauseServerRejected
		}
		return Failed(cause, errorMessage(resp))
	}

	signed, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(CauseNetwork, err.Error())
	}
	return Result{Signed: true, Bytes: signed}
}

// errorMessage surfaces the server's {"error": ...} body when it parses,
// falling back to the HTTP status.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("signing service returned %s", resp.Status)
}
