// Package endpoint executes endpoint specs against the backend with bounded
// body capture and coarse error classification.
package endpoint

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/infra/httpclient"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

const defaultMaxBodyBytes = 256 * 1024 // 256KB

type Caller struct {
	client       *http.Client
	maxBodyBytes int64
	resolver     *domain.VarResolver
}

type Option func(*Caller)

func WithMaxBodyBytes(n int64) Option {
	return func(c *Caller) { c.maxBodyBytes = n }
}

func WithResolver(vr *domain.VarResolver) Option {
	return func(c *Caller) { c.resolver = vr }
}

func New(client *http.Client, opts ...Option) *Caller {
	c := &Caller{
		client:       client,
		maxBodyBytes: defaultMaxBodyBytes,
		resolver:     domain.NewVarResolver(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.EndpointCaller = (*Caller)(nil)

func (c *Caller) Call(ctx context.Context, spec domain.EndpointSpec, vars domain.Vars) (domain.CallResult, error) {
	resolved, err := c.resolver.ResolveEndpoint(vars, spec)
	if err != nil {
		// Profile-level issue: missing var, invalid placeholder, etc.
		return domain.CallResult{}, err
	}

	result := domain.CallResult{
		Name:   resolved.Name,
		Method: resolved.Method,
		URL:    resolved.URL,
		Response: domain.ResponseSnapshot{
			Headers: map[string][]string{},
		},
	}

	httpReq, err := httpclient.BuildRequest(ctx, resolved)
	if err != nil {
		return domain.CallResult{}, err
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	lat := time.Since(start)
	result.LatencyMS = lat.Milliseconds()

	if err != nil {
		result.Error = domain.NewCheckError(err)
		return result, nil
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Response.Headers = cloneHeaders(resp.Header)

	body, truncated, readErr := readBounded(resp.Body, c.maxBodyBytes)
	if readErr != nil {
		result.Error = domain.NewCheckError(readErr)
		return result, nil
	}

	result.Response.Body = body
	result.Response.Truncated = truncated
	return result, nil
}

func readBounded(r io.Reader, maxBytes int64) ([]byte, bool, error) {
	lim := io.LimitReader(r, maxBytes+1)
	b, err := io.ReadAll(lim)
	if err != nil {
		return nil, false, err
	}
	if int64(len(b)) > maxBytes {
		return b[:maxBytes], true, nil
	}
	return b, false, nil
}

func cloneHeaders(h http.Header) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, v := range h {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
