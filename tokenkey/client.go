package tokenkey

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/keksclan/goTokenKey/internal/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Client is the default Service. It sends one GET per call and never retries.
//
// Concurrency: Client is immutable after New and safe for concurrent use.
type Client struct {
	cfg     Config
	httpc   *http.Client
	fastc   *fasthttp.Client
	doer    transport.Doer
	log     *zap.Logger
	reg     prometheus.Registerer
	metrics *metrics
}

var _ Service = (*Client)(nil)

// New creates a Client using cfg and optional Options.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}

	switch cfg.Transport {
	case TransportFastHTTP:
		if c.fastc == nil {
			c.fastc = &fasthttp.Client{
				ReadTimeout:  cfg.Timeout,
				WriteTimeout: cfg.Timeout,
				// wait for a free connection instead of failing with ErrNoFreeConns
				MaxConnWaitTimeout:  cfg.Timeout,
				MaxResponseBodySize: int(cfg.MaxResponseSize),
			}
		}
		c.doer = transport.NewFastHTTP(c.fastc, cfg.Timeout, cfg.MaxResponseSize)
	default:
		if c.httpc == nil {
			tr := http.DefaultTransport.(*http.Transport).Clone()
			tr.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
			c.httpc = &http.Client{Timeout: cfg.Timeout, Transport: tr}
		}
		c.doer = transport.NewNetHTTP(c.httpc, cfg.MaxResponseSize)
	}

	if c.reg != nil {
		m, err := newMetrics(c.reg)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		c.metrics = m
	}

	return c, nil
}

// RetrieveTokenKeys fetches the key set from endpoint.
//
// Only the non-nil entries of params are sent as headers; nothing else is
// added. Any status other than 200 is an error.
func (c *Client) RetrieveTokenKeys(ctx context.Context, endpoint *url.URL, params Params) (string, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return "", &ServiceError{Endpoint: endpointString(endpoint), Err: err}
	}
	target := endpoint.String()
	log := c.log.With(
		zap.String("endpoint", target),
		zap.String("transport", c.doer.Name()),
	)
	log.Debug("retrieving token keys", zap.Strings("headers", params.Names()))

	start := time.Now()
	keys, err := c.retrieve(ctx, target, params)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(c.doer.Name(), resultError, elapsed)
		log.Warn("token keys request failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return "", err
	}

	c.metrics.observe(c.doer.Name(), resultSuccess, elapsed)
	log.Debug("retrieved token keys", zap.Int("bytes", len(keys)), zap.Duration("elapsed", elapsed))
	return keys, nil
}

func (c *Client) retrieve(ctx context.Context, target string, params Params) (string, error) {
	resp, err := c.doer.Get(ctx, target, params.Header())
	if err != nil {
		if errors.Is(err, transport.ErrBodyTooLarge) {
			err = fmt.Errorf("%w: %w", ErrResponseTooLarge, err)
		}
		return "", &ServiceError{Endpoint: target, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{
			Endpoint:   target,
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Body:       truncateBody(resp.Body),
			Err:        ErrUnexpectedStatus,
		}
	}
	return string(resp.Body), nil
}

// ValidateEndpoint reports whether u is an absolute http(s) URI with a host.
func ValidateEndpoint(u *url.URL) error {
	if u == nil {
		return fmt.Errorf("%w: endpoint is nil", ErrInvalidEndpoint)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute URI", ErrInvalidEndpoint, u.String())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	return nil
}

// ParseEndpoint parses and validates a token keys endpoint.
func ParseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if err := ValidateEndpoint(u); err != nil {
		return nil, err
	}
	return u, nil
}

func endpointString(u *url.URL) string {
	if u == nil {
		return "<nil>"
	}
	return u.String()
}
