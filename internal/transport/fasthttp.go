package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
)

// FastHTTP sends requests through a fasthttp.Client.
//
// fasthttp has no context support, so only the context deadline is honored;
// cancellation without a deadline is checked before the request is sent.
type FastHTTP struct {
	client  *fasthttp.Client
	timeout time.Duration
	maxBody int64
}

// NewFastHTTP returns a FastHTTP transport; a nil client gets fasthttp defaults.
func NewFastHTTP(c *fasthttp.Client, timeout time.Duration, maxBody int64) *FastHTTP {
	if c == nil {
		c = &fasthttp.Client{}
	}
	return &FastHTTP{client: c, timeout: timeout, maxBody: maxBody}
}

func (t *FastHTTP) Name() string { return "fasthttp" }

func (t *FastHTTP) Get(ctx context.Context, rawURL string, header http.Header) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rawURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := t.client.DoDeadline(req, resp, deadline); err != nil {
		if errors.Is(err, fasthttp.ErrBodyTooLarge) {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, t.maxBody)
		}
		if errors.Is(err, fasthttp.ErrTimeout) && ctx.Err() != nil {
			return nil, fmt.Errorf("do request: %w", ctx.Err())
		}
		return nil, fmt.Errorf("do request: %w", err)
	}

	// the client may carry its own, larger MaxResponseBodySize
	if int64(len(resp.Body())) > t.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, t.maxBody)
	}

	h := make(http.Header)
	resp.Header.VisitAll(func(k, v []byte) {
		h.Add(string(k), string(v))
	})

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     h,
		// resp is released on return
		Body: append([]byte(nil), resp.Body()...),
	}, nil
}
