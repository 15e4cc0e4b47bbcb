package randomorg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
	"github.com/ThalesGSN/SecretSanta/internal/ports"
)

// DefaultURL is the random.org JSON-RPC v4 endpoint.
const DefaultURL = "https://api.random.org/json-rpc/4/invoke"

// Client fetches true-random permutations from random.org. One outbound call
// per Permutation invocation; retries belong to the caller.
type Client struct {
	apiKey string
	url    string
	httpc  *http.Client
}

type Option func(*Client)

// WithURL overrides the endpoint (tests point this at a local server).
func WithURL(u string) Option {
	return func(c *Client) { c.url = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTimeout rebuilds the default client with the given total timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc = newHTTPClient(d) }
}

var _ ports.RandomSource = (*Client)(nil)

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		url:    DefaultURL,
		httpc:  newHTTPClient(15 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		IdleConnTimeout:       90 * time.Second,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

// generateIntegers with replacement=false asks the provider for a whole
// permutation in a single draw, avoiding modulo bias from independent draws.
type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int       `json:"id"`
}

type rpcParams struct {
	APIKey      string `json:"apiKey"`
	N           int    `json:"n"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Replacement bool   `json:"replacement"`
	Base        int    `json:"base"`
}

type rpcResponse struct {
	Result *rpcResult `json:"result"`
	Error  *rpcError  `json:"error"`
}

type rpcResult struct {
	Random struct {
		Data []int `json:"data"`
	} `json:"random"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Permutation requests n distinct integers covering [0,n). Transport
// failures, timeouts, non-2xx statuses, and provider-side refusals (quota,
// bad key) surface as randomness_unavailable; a body that parses but does
// not hold a permutation of [0,n) surfaces as invalid_response.
func (c *Client) Permutation(ctx context.Context, n int) (domain.Permutation, error) {
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "generateIntegers",
		Params: rpcParams{
			APIKey:      c.apiKey,
			N:           n,
			Min:         0,
			Max:         n - 1,
			Replacement: false,
			Base:        10,
		},
		ID: 1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, unavailable(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, unavailable(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, unavailable(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var rpc rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpc); err != nil {
		return nil, invalidResponse(fmt.Errorf("decode body: %w", err))
	}

	if rpc.Error != nil {
		return nil, unavailable(fmt.Errorf("provider error %d: %s", rpc.Error.Code, rpc.Error.Message))
	}
	if rpc.Result == nil {
		return nil, invalidResponse(fmt.Errorf("response carries neither result nor error"))
	}

	perm := domain.Permutation(rpc.Result.Random.Data)
	if err := perm.Check(n); err != nil {
		return nil, invalidResponse(err)
	}
	return perm, nil
}

func unavailable(err error) error {
	return &domain.OpError{
		Op:   "randomorg.permutation",
		Kind: domain.KindRandomnessUnavailable,
		Err:  fmt.Errorf("%w: %v", domain.ErrRandomnessUnavailable, err),
	}
}

func invalidResponse(err error) error {
	return &domain.OpError{
		Op:   "randomorg.permutation",
		Kind: domain.KindInvalidResponse,
		Err:  fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err),
	}
}
