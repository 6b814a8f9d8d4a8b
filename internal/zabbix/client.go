// Package zabbix is a minimal JSON-RPC 2.0 client for the Zabbix
// management API, covering the listing and export calls the exporter needs.
package zabbix

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/evgkrsk/zabbix-review-export/internal/models"
)

const rpcPath = "/api_jsonrpc.php"

// Client talks to one Zabbix server endpoint. TLS certificate validation
// is disabled: review exports routinely run against internal frontends
// with self-signed certificates.
type Client struct {
	url        string
	httpClient *http.Client
	auth       string // session token, set by Connect
}

// NewClient creates an unauthenticated client for the given frontend URL.
// The JSON-RPC path is appended if not already present.
func NewClient(rawURL string) *Client {
	u := strings.TrimRight(rawURL, "/")
	if !strings.HasSuffix(u, rpcPath) {
		u += rpcPath
	}
	return &Client{
		url: u,
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      string      `json:"id"`
	Auth    string      `json:"auth,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *APIError       `json:"error"`
	ID      string          `json:"id"`
}

// APIError is the Zabbix JSON-RPC error envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zabbix api error %d: %s %s", e.Code, e.Message, strings.TrimSpace(e.Data))
}

// Call performs one JSON-RPC call and returns the raw result. The session
// token is attached except for the methods Zabbix requires to be
// unauthenticated.
func (c *Client) Call(method string, params interface{}) (json.RawMessage, error) {
	if params == nil {
		params = struct{}{}
	}
	body, err := json.Marshal(&request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      uuid.New().String(),
		Auth:    c.authFor(method),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling %s request: %w", method, err)
	}

	req, err := http.NewRequest("POST", c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json-rpc")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: HTTP %d: %s", method, resp.StatusCode, truncate(string(respBody), 200))
	}

	var r response
	if err := json.Unmarshal(respBody, &r); err != nil {
		return nil, fmt.Errorf("%s: parsing response: %w", method, err)
	}
	if r.Error != nil {
		return nil, fmt.Errorf("%s: %w", method, r.Error)
	}
	return r.Result, nil
}

// authFor returns the token to send for method, or "" where the API
// rejects an auth field (login and version probes).
func (c *Client) authFor(method string) string {
	switch method {
	case "user.login", "apiinfo.version":
		return ""
	}
	return c.auth
}

// Get fetches the full listing for one object class ("host.get" etc.).
func (c *Client) Get(method string, params map[string]interface{}) ([]models.Resource, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	raw, err := c.Call(method, params)
	if err != nil {
		return nil, err
	}
	var items []models.Resource
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s: parsing listing: %w", method, err)
	}
	return items, nil
}

// ConfigurationExport asks the server to render the objects in options
// (class name → IDs) as a markup document in the given format.
func (c *Client) ConfigurationExport(format string, options map[string][]string) (string, error) {
	raw, err := c.Call("configuration.export", map[string]interface{}{
		"format":  format,
		"options": options,
	})
	if err != nil {
		return "", err
	}
	var doc string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("configuration.export: parsing result: %w", err)
	}
	return doc, nil
}

// Version returns the server's API version string.
func (c *Client) Version() (string, error) {
	raw, err := c.Call("apiinfo.version", nil)
	if err != nil {
		return "", err
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("apiinfo.version: parsing result: %w", err)
	}
	return v, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
