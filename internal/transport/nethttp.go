package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// NetHTTP sends requests through a net/http Client.
type NetHTTP struct {
	httpc   *http.Client
	maxBody int64
}

// NewNetHTTP returns a NetHTTP transport; a nil client means http.DefaultClient.
func NewNetHTTP(c *http.Client, maxBody int64) *NetHTTP {
	if c == nil {
		c = http.DefaultClient
	}
	return &NetHTTP{httpc: c, maxBody: maxBody}
}

func (t *NetHTTP) Name() string { return "nethttp" }

func (t *NetHTTP) Get(ctx context.Context, rawURL string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	// read one byte past the limit to tell "exactly at limit" from "over limit"
	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > t.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, t.maxBody)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
